package economy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/lib/month"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

const (
	DefaultCreditScore = 600
	MinCreditScore     = 0
	MaxCreditScore     = 850

	LoanIssuePenalty = 15
	OverduePenalty   = 150
	OnTimeReward     = 30
	LateReward       = 5

	LoanCooldown     = 24 * time.Hour
	MinHoldForReward = time.Hour
)

// DailyInterestRate ставка, начисляемая на основной долг за каждые полные сутки.
var DailyInterestRate = decimal.RequireFromString("0.05")

// CreditTier кредитный уровень и максимальная сумма займа для него.
type CreditTier struct {
	Label string          `json:"label"`
	Cap   decimal.Decimal `json:"cap"`
}

// TierForScore возвращает кредитный уровень по кредитному рейтингу.
func TierForScore(score int) CreditTier {
	switch {
	case score >= 750:
		return CreditTier{Label: "Elite", Cap: decimal.NewFromInt(1_000_000)}
	case score >= 650:
		return CreditTier{Label: "Good", Cap: decimal.NewFromInt(500_000)}
	case score >= 500:
		return CreditTier{Label: "Fair", Cap: decimal.NewFromInt(100_000)}
	default:
		return CreditTier{Label: "Risky", Cap: decimal.NewFromInt(50_000)}
	}
}

// AdjustScore меняет кредитный рейтинг, удерживая его в диапазоне 0..850.
func AdjustScore(acc *models.Account, delta int) {
	score := acc.CreditScore + delta
	if score < MinCreditScore {
		score = MinCreditScore
	}
	if score > MaxCreditScore {
		score = MaxCreditScore
	}
	acc.CreditScore = score
}

// LoanDeadline последняя секунда текущего календарного месяца.
func LoanDeadline(now time.Time) time.Time {
	return month.End(now)
}

// AccrueInterest начисляет сложный процент за каждые полные сутки с момента
// последнего начисления. Неполные сутки не оплачиваются и переносятся:
// часы начисления сдвигаются ровно на число учтённых суток.
func AccrueInterest(acc *models.Account, now time.Time) (interest decimal.Decimal, days int) {
	if !acc.HasLoan() {
		return decimal.Zero, 0
	}
	from := acc.LastInterestApplied
	if from == nil {
		from = acc.LoanStartDate
	}
	if from == nil {
		return decimal.Zero, 0
	}
	days = int(now.Sub(*from) / (24 * time.Hour))
	if days <= 0 {
		return decimal.Zero, 0
	}

	growth := decimal.NewFromInt(1)
	factor := decimal.NewFromInt(1).Add(DailyInterestRate)
	for range days {
		growth = growth.Mul(factor).Round(12)
	}
	principal := acc.ActiveLoan.Mul(growth).Round(2)
	interest = principal.Sub(acc.ActiveLoan)

	acc.ActiveLoan = principal
	next := from.Add(time.Duration(days) * 24 * time.Hour)
	acc.LastInterestApplied = &next
	return interest, days
}

// MarkOverdue переводит счёт в состояние просрочки: экономика ставится на паузу,
// рейтинг снижается. Повторно штраф не применяется.
func MarkOverdue(acc *models.Account, now time.Time) bool {
	if !acc.HasLoan() || acc.LoanDeadline == nil || acc.IsEconomyPaused {
		return false
	}
	if !now.After(*acc.LoanDeadline) {
		return false
	}
	acc.IsEconomyPaused = true
	AdjustScore(acc, -OverduePenalty)
	return true
}

// ReconcileLoan начисляет проценты и проверяет просрочку.
func ReconcileLoan(acc *models.Account, now time.Time) Result {
	var res Result
	if _, days := AccrueInterest(acc, now); days > 0 {
		res.Changed = true
	}
	if MarkOverdue(acc, now) {
		res.Changed = true
		res.event(models.HistoryAdmin, fmt.Sprintf("Loan overdue. Economy paused, credit score -%d", OverduePenalty))
		res.Notices = append(res.Notices, fmt.Sprintf("⚠️ *Loan Overdue:* %s missed the loan deadline with %s outstanding.",
			acc.Username, Dollars(acc.ActiveLoan)))
	}
	return res
}

// IssueLoan выдаёт займ, если выполнены все условия, и возвращает кредитный уровень.
func IssueLoan(acc *models.Account, amount decimal.Decimal, now time.Time) (CreditTier, error) {
	if err := RequirePositive(amount); err != nil {
		return CreditTier{}, err
	}
	if acc.HasLoan() {
		return CreditTier{}, ErrLoanActive
	}
	if acc.IsEconomyPaused {
		return CreditTier{}, ErrEconomyPaused
	}
	if acc.LastRepaymentDate != nil {
		if wait := LoanCooldown - now.Sub(*acc.LastRepaymentDate); wait > 0 {
			return CreditTier{}, fmt.Errorf("%w: %s remaining", ErrLoanCooldown, formatRemaining(wait))
		}
	}
	tier := TierForScore(acc.CreditScore)
	if amount.GreaterThan(tier.Cap) {
		return CreditTier{}, fmt.Errorf("%w: %s tier allows up to %s", ErrLoanCapExceeded, tier.Label, Dollars(tier.Cap))
	}

	start := now
	deadline := LoanDeadline(now)
	acc.Balance = acc.Balance.Add(amount)
	acc.ActiveLoan = amount
	acc.LoanStartDate = &start
	acc.LoanDeadline = &deadline
	acc.LastInterestApplied = &start
	AdjustScore(acc, -LoanIssuePenalty)
	return tier, nil
}

// RepayLoan гасит долг целиком и возвращает сумму долга и изменение рейтинга.
// Проценты должны быть начислены до вызова.
func RepayLoan(acc *models.Account, now time.Time) (debt decimal.Decimal, reward int, err error) {
	if !acc.HasLoan() {
		return decimal.Zero, 0, ErrNoDebt
	}
	debt = acc.ActiveLoan
	if acc.Balance.LessThan(debt) {
		return decimal.Zero, 0, ErrInsufficientFunds
	}

	var held time.Duration
	if acc.LoanStartDate != nil {
		held = now.Sub(*acc.LoanStartDate)
	}
	switch {
	case held < MinHoldForReward:
		reward = 0
	case acc.LoanDeadline == nil || !now.After(*acc.LoanDeadline):
		reward = OnTimeReward
	default:
		reward = LateReward
	}

	repaid := now
	acc.Balance = acc.Balance.Sub(debt)
	acc.ActiveLoan = decimal.Zero
	acc.IsEconomyPaused = false
	acc.LastInterestApplied = nil
	acc.LoanStartDate = nil
	acc.LoanDeadline = nil
	acc.LastRepaymentDate = &repaid
	AdjustScore(acc, reward)
	return debt, reward, nil
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
