// Package services содержит выдачу и погашение займов.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// Status состояние кредита счёта после начисления процентов.
type Status struct {
	CreditScore     int                `json:"credit_score"`
	Tier            economy.CreditTier `json:"tier"`
	ActiveLoan      decimal.Decimal    `json:"active_loan"`
	LoanDeadline    *time.Time         `json:"loan_deadline,omitempty"`
	IsEconomyPaused bool               `json:"is_economy_paused"`
	NextLoanAt      *time.Time         `json:"next_loan_at,omitempty"` // Конец периода ожидания после погашения
	Balance         decimal.Decimal    `json:"balance"`
}

// Repayment итог погашения.
type Repayment struct {
	Repaid      decimal.Decimal `json:"repaid"`
	ScoreChange int             `json:"score_change"`
	Status      Status          `json:"status"`
}

// LoanService управляет займами.
type LoanService struct {
	runner Runner
}

// NewLoanService создает LoanService.
func NewLoanService(runner Runner) *LoanService {
	return &LoanService{runner: runner}
}

func statusOf(acc *models.Account, now time.Time) Status {
	st := Status{
		CreditScore:     acc.CreditScore,
		Tier:            economy.TierForScore(acc.CreditScore),
		ActiveLoan:      acc.ActiveLoan,
		LoanDeadline:    acc.LoanDeadline,
		IsEconomyPaused: acc.IsEconomyPaused,
		Balance:         acc.Balance,
	}
	if acc.LastRepaymentDate != nil {
		if next := acc.LastRepaymentDate.Add(economy.LoanCooldown); next.After(now) {
			st.NextLoanAt = &next
		}
	}
	return st
}

// Status возвращает состояние кредита. Проценты и просрочка сверяются
// при блокировке счёта и сохраняются.
func (s *LoanService) Status(ctx context.Context, uid string) (*Status, error) {
	var st Status
	err := s.runner.Run(ctx, "loan_status", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		st = statusOf(acc, b.Now())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.loan.Status: %w", err)
	}
	return &st, nil
}

// Take выдаёт займ.
func (s *LoanService) Take(ctx context.Context, uid string, amount decimal.Decimal) (*Status, error) {
	const op = "services.loan.Take"
	if err := economy.RequirePositive(amount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var st Status
	err := s.runner.Run(ctx, "loan_take", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		tier, err := economy.IssueLoan(acc, amount, b.Now())
		if err != nil {
			return err
		}
		b.Record(acc, economy.Event{
			Type:    models.HistoryAdmin,
			Message: fmt.Sprintf("Took %s loan (%s Tier)", economy.Dollars(amount), tier.Label),
		})
		st = statusOf(acc, b.Now())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// Repay гасит займ целиком вместе с начисленными процентами.
func (s *LoanService) Repay(ctx context.Context, uid string) (*Repayment, error) {
	const op = "services.loan.Repay"
	var out Repayment
	err := s.runner.Run(ctx, "loan_repay", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		debt, reward, err := economy.RepayLoan(acc, b.Now())
		if err != nil {
			return err
		}
		b.Record(acc, economy.Event{
			Type:    models.HistoryTransferOut,
			Message: fmt.Sprintf("Repaid loan of %s", economy.Dollars(debt)),
		})
		out = Repayment{Repaid: debt, ScoreChange: reward, Status: statusOf(acc, b.Now())}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}
