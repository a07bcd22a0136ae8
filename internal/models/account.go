// Package models содержит доменные структуры экономики: счёт пользователя,
// записи истории, предметы инвентаря, контракты и справочники магазина.
// Структуры используются в бизнес-логике, хранилище и HTTP-слое.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus статус занятости игрока.
type EmploymentStatus string

const (
	Unemployed EmploymentStatus = "Unemployed"
	Employed   EmploymentStatus = "Employed"
	Retired    EmploymentStatus = "Retired"
)

// Valid сообщает, является ли статус одним из известных.
func (s EmploymentStatus) Valid() bool {
	switch s {
	case Unemployed, Employed, Retired:
		return true
	}
	return false
}

// Tier уровень членства.
type Tier string

const (
	TierStandard Tier = "standard"
	TierBasic    Tier = "basic"
	TierPremium  Tier = "premium"
	TierPlatinum Tier = "platinum"
)

// Account представляет счёт пользователя со всеми балансами и флагами состояния.
type Account struct {
	UID          string `json:"uid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`

	Balance        decimal.Decimal `json:"balance"`         // Наличный баланс
	BPSBalance     int64           `json:"bps_balance"`     // Бонусные очки
	ActiveDiscount decimal.Decimal `json:"active_discount"` // Одноразовая скидка, доля от 0 до 1

	EmploymentStatus    EmploymentStatus `json:"employment_status"`
	ActiveLoan          decimal.Decimal  `json:"active_loan"`
	CreditScore         int              `json:"credit_score"`
	IsEconomyPaused     bool             `json:"is_economy_paused"`
	LoanStartDate       *time.Time       `json:"loan_start_date,omitempty"`
	LoanDeadline        *time.Time       `json:"loan_deadline,omitempty"`
	LastInterestApplied *time.Time       `json:"last_interest_applied,omitempty"`
	LastRepaymentDate   *time.Time       `json:"last_repayment_date,omitempty"`

	MembershipLevel    Tier       `json:"membership_level"`
	MembershipLastPaid *time.Time `json:"membership_last_paid,omitempty"`
	TrialExpiration    *time.Time `json:"trial_expiration,omitempty"`
	ShopOrderCount     int        `json:"shop_order_count"`

	RenewalDate        time.Time  `json:"renewal_date"`
	ExpirationDate     time.Time  `json:"expiration_date"`
	RenewalPending     bool       `json:"renewal_pending"`
	RenewalRequestDate *time.Time `json:"renewal_request_date,omitempty"`

	CosmeticsOwned map[string]bool `json:"cosmetics_owned"`
	NavbarColor    string          `json:"navbar_color"`

	RetirementSavings       decimal.Decimal `json:"retirement_savings"`
	RetirementInterestMonth string          `json:"retirement_interest_month,omitempty"` // Месяц последнего начисления, 2006-01
	RetirementDailyTotal    decimal.Decimal `json:"retirement_daily_total"`
	RetirementDailyDate     string          `json:"retirement_daily_date,omitempty"` // День, к которому относится RetirementDailyTotal, 2006-01-02

	CreatedAt time.Time `json:"created_at"`
}

// HasLoan сообщает, есть ли у счёта непогашенный займ.
func (a *Account) HasLoan() bool {
	return a.ActiveLoan.IsPositive()
}

// OwnsCosmetic сообщает, куплена ли косметика с данным идентификатором.
func (a *Account) OwnsCosmetic(id string) bool {
	return a.CosmeticsOwned != nil && a.CosmeticsOwned[id]
}
