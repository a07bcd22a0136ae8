package economy

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Plan параметры уровня членства.
type Plan struct {
	Tier           models.Tier     `json:"tier"`
	Label          string          `json:"label"`
	Price          decimal.Decimal `json:"price"`         // Ежемесячная плата
	TaxRate        decimal.Decimal `json:"tax_rate"`      // Налог на покупки в магазине
	InterestRate   decimal.Decimal `json:"interest_rate"` // Ежемесячный процент на пенсионные накопления
	Cashback       decimal.Decimal `json:"cashback"`
	BPSPerPurchase int64           `json:"bps_per_purchase"`
	FreeEvery      int             `json:"free_every"` // 0: бесплатных товаров нет
}

var plans = map[models.Tier]Plan{
	models.TierStandard: {
		Tier: models.TierStandard, Label: "Standard",
		Price: decimal.Zero, TaxRate: decimal.RequireFromString("0.10"),
		InterestRate: decimal.RequireFromString("0.03"), Cashback: decimal.Zero,
		BPSPerPurchase: 5, FreeEvery: 0,
	},
	models.TierBasic: {
		Tier: models.TierBasic, Label: "Basic",
		Price: decimal.NewFromInt(100_000), TaxRate: decimal.RequireFromString("0.08"),
		InterestRate: decimal.RequireFromString("0.04"), Cashback: decimal.RequireFromString("0.01"),
		BPSPerPurchase: 5, FreeEvery: 3,
	},
	models.TierPremium: {
		Tier: models.TierPremium, Label: "Premium",
		Price: decimal.NewFromInt(300_000), TaxRate: decimal.RequireFromString("0.04"),
		InterestRate: decimal.RequireFromString("0.05"), Cashback: decimal.RequireFromString("0.02"),
		BPSPerPurchase: 10, FreeEvery: 2,
	},
	models.TierPlatinum: {
		Tier: models.TierPlatinum, Label: "Platinum",
		Price: decimal.NewFromInt(500_000), TaxRate: decimal.Zero,
		InterestRate: decimal.RequireFromString("0.05"), Cashback: decimal.RequireFromString("0.03"),
		BPSPerPurchase: 20, FreeEvery: 1,
	},
}

// Plans возвращает все уровни членства в порядке возрастания цены.
func Plans() []Plan {
	return []Plan{
		plans[models.TierStandard],
		plans[models.TierBasic],
		plans[models.TierPremium],
		plans[models.TierPlatinum],
	}
}

// LookupPlan возвращает план по уровню.
func LookupPlan(tier models.Tier) (Plan, bool) {
	p, ok := plans[tier]
	return p, ok
}

// PlanFor возвращает план уровня, неизвестный уровень считается стандартным.
func PlanFor(tier models.Tier) Plan {
	if p, ok := plans[tier]; ok {
		return p
	}
	return plans[models.TierStandard]
}

// IsNextItemFree сообщает, будет ли следующая покупка бесплатной.
func IsNextItemFree(acc *models.Account) bool {
	freq := PlanFor(acc.MembershipLevel).FreeEvery
	return freq != 0 && acc.ShopOrderCount >= freq
}

func upper(t models.Tier) string {
	return strings.ToUpper(string(t))
}

// ReconcileMembership сверяет пробный период и оплату членства с текущим временем.
// Пробный период исключает платный биллинг.
func ReconcileMembership(acc *models.Account, now time.Time) Result {
	var res Result

	if acc.TrialExpiration != nil {
		if now.After(*acc.TrialExpiration) {
			tier := acc.MembershipLevel
			acc.MembershipLevel = models.TierStandard
			acc.TrialExpiration = nil
			acc.ShopOrderCount = 0
			res.Changed = true
			res.event(models.HistoryMembership, fmt.Sprintf("Free trial of %s expired. Reverted to Standard", upper(tier)))
			res.Notices = append(res.Notices, fmt.Sprintf("⚠️ *Membership Downgrade:* %s's free trial expired. Reverted to Standard.", acc.Username))
		}
		return res
	}

	if acc.MembershipLevel == models.TierStandard || acc.MembershipLevel == "" {
		return res
	}
	plan := PlanFor(acc.MembershipLevel)

	due := now
	first := acc.MembershipLastPaid == nil
	if !first {
		due = acc.MembershipLastPaid.AddDate(0, 1, 0)
	}
	if now.Before(due) {
		return res
	}

	if first && plan.Price.IsPositive() {
		res.Notices = append(res.Notices, fmt.Sprintf("💥 *New Subscriber:* %s subscribed to %s membership for %s.",
			acc.Username, upper(plan.Tier), Dollars(plan.Price)))
	}

	res.Changed = true
	if acc.Balance.GreaterThanOrEqual(plan.Price) {
		paid := now
		acc.Balance = acc.Balance.Sub(plan.Price)
		acc.MembershipLastPaid = &paid
		res.event(models.HistoryMembership, fmt.Sprintf("Renewed %s membership for %s", upper(plan.Tier), Dollars(plan.Price)))
		res.Notices = append(res.Notices, fmt.Sprintf("💳 *Membership Renewal:* %s renewed their %s membership for %s.",
			acc.Username, upper(plan.Tier), Dollars(plan.Price)))
		return res
	}

	acc.MembershipLevel = models.TierStandard
	acc.ShopOrderCount = 0
	res.event(models.HistoryMembership, fmt.Sprintf("%s membership cancelled: insufficient funds", upper(plan.Tier)))
	res.Notices = append(res.Notices, fmt.Sprintf("⚠️ *Membership Cancelled:* %s could not renew %s membership due to insufficient funds. Downgraded to Standard.",
		acc.Username, upper(plan.Tier)))
	return res
}

// PurchaseMembership списывает плату за новый уровень и активирует его.
func PurchaseMembership(acc *models.Account, tier models.Tier, now time.Time) (Result, error) {
	plan, ok := LookupPlan(tier)
	if !ok {
		return Result{}, ErrInvalidTier
	}
	if acc.TrialExpiration != nil {
		return Result{}, ErrTrialActive
	}
	current := PlanFor(acc.MembershipLevel)
	if current.Tier == plan.Tier {
		return Result{}, ErrAlreadyOnTier
	}
	if acc.Balance.LessThan(plan.Price) {
		return Result{}, ErrInsufficientFunds
	}

	paid := now
	acc.Balance = acc.Balance.Sub(plan.Price)
	acc.MembershipLevel = plan.Tier
	acc.MembershipLastPaid = &paid
	if plan.Tier == models.TierStandard {
		acc.MembershipLastPaid = nil
		acc.ShopOrderCount = 0
	}

	res := Result{Changed: true}
	res.event(models.HistoryMembership, fmt.Sprintf("Purchased %s membership for %s", upper(plan.Tier), Dollars(plan.Price)))

	var notice string
	switch {
	case current.Tier == models.TierStandard && plan.Price.IsPositive():
		notice = fmt.Sprintf("💥 *New Subscriber:* %s subscribed to %s membership for %s.", acc.Username, upper(plan.Tier), Dollars(plan.Price))
	case plan.Price.GreaterThan(current.Price):
		notice = fmt.Sprintf("⬆️ *Membership Upgrade:* %s upgraded from %s to %s for %s.", acc.Username, upper(current.Tier), upper(plan.Tier), Dollars(plan.Price))
	case plan.Price.LessThan(current.Price):
		notice = fmt.Sprintf("⬇️ *Membership Downgrade:* %s downgraded from %s to %s.", acc.Username, upper(current.Tier), upper(plan.Tier))
	default:
		notice = fmt.Sprintf("💳 *Membership Purchase:* %s purchased %s membership for %s.", acc.Username, upper(plan.Tier), Dollars(plan.Price))
	}
	res.Notices = append(res.Notices, notice)
	return res, nil
}

// CancelMembership возвращает счёт на стандартный уровень.
func CancelMembership(acc *models.Account) Result {
	tier := acc.MembershipLevel
	if tier == models.TierStandard || tier == "" {
		return Result{}
	}
	acc.MembershipLevel = models.TierStandard
	acc.ShopOrderCount = 0
	acc.MembershipLastPaid = nil
	acc.TrialExpiration = nil

	res := Result{Changed: true}
	res.event(models.HistoryMembership, fmt.Sprintf("Cancelled %s membership", upper(tier)))
	res.Notices = append(res.Notices, fmt.Sprintf("⚠️ *Membership Cancelled:* %s cancelled their %s membership. Reverted to Standard.", acc.Username, upper(tier)))
	return res
}

// GrantTrial включает бесплатный пробный период уровня на заданное число дней.
func GrantTrial(acc *models.Account, tier models.Tier, days int, now time.Time) (Result, error) {
	if tier == models.TierStandard {
		return Result{}, ErrInvalidTier
	}
	if _, ok := LookupPlan(tier); !ok {
		return Result{}, ErrInvalidTier
	}
	if days <= 0 {
		return Result{}, ErrInvalidAmount
	}
	expires := now.AddDate(0, 0, days)
	acc.MembershipLevel = tier
	acc.TrialExpiration = &expires
	acc.MembershipLastPaid = nil

	res := Result{Changed: true}
	res.event(models.HistoryMembership, fmt.Sprintf("Free %s trial granted for %d days", upper(tier), days))
	res.Notices = append(res.Notices, fmt.Sprintf("🎁 *Free Trial:* %s received a %d-day %s trial.", acc.Username, days, upper(tier)))
	return res, nil
}
