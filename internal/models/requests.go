package models

import "github.com/shopspring/decimal"

// Структуры ниже принимают данные из JSON-запросов. Денежные суммы приходят
// строкой или числом, положительность проверяется в бизнес-логике.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TransferRequest struct {
	Recipient string          `json:"recipient" validate:"required,max=64"`
	Amount    decimal.Decimal `json:"amount"`
}

type PurchaseRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
}

// AmountRequest используется для займа и пенсионных операций.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type MembershipRequest struct {
	Tier string `json:"tier" validate:"required,oneof=standard basic premium platinum"`
}

type EquipRequest struct {
	CosmeticID string `json:"cosmetic_id" validate:"max=64"`
}

type ContractDecisionRequest struct {
	Accept bool `json:"accept"`
}

type ContractChangeRequest struct {
	Kind string `json:"kind" validate:"required,oneof=trade release"`
}

type GrantRequest struct {
	Username string          `json:"username" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

type GrantBPSRequest struct {
	Username string `json:"username" validate:"required"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

type ApproveRenewalRequest struct {
	// Необязательная дата окончания в формате 2006-01-02, по умолчанию через год.
	ExpirationDate string `json:"expiration_date"`
}

type ShopItemRequest struct {
	Name     string          `json:"name" validate:"required,max=128"`
	Cost     decimal.Decimal `json:"cost"`
	Image    string          `json:"image"`
	Type     string          `json:"type"`
	Featured bool            `json:"featured"`
}

type BPSItemRequest struct {
	Name          string          `json:"name" validate:"required,max=128"`
	Cost          int64           `json:"cost" validate:"required,gt=0"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

type CosmeticRequest struct {
	ID    string          `json:"id" validate:"required,max=64"`
	Name  string          `json:"name" validate:"required,max=128"`
	Price decimal.Decimal `json:"price"`
	Color string          `json:"color" validate:"required"`
}

type JobRequest struct {
	Name string          `json:"name" validate:"required,max=128"`
	Pay  decimal.Decimal `json:"pay"`
}

type TrialRequest struct {
	Username string `json:"username" validate:"required"`
	Tier     string `json:"tier" validate:"required,oneof=basic premium platinum"`
	Days     int    `json:"days" validate:"required,gt=0,lte=365"`
}

type EmploymentRequest struct {
	Username string `json:"username" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=Unemployed Employed Retired"`
}

type ContractOfferRequest struct {
	Username      string          `json:"username" validate:"required"`
	TeamName      string          `json:"team_name" validate:"required,max=128"`
	SigningBonus  decimal.Decimal `json:"signing_bonus"`
	Seasons       int             `json:"seasons" validate:"required,gt=0,lte=20"`
	GuaranteedPay decimal.Decimal `json:"guaranteed_pay"`
	BonusPay      decimal.Decimal `json:"bonus_pay"`
	Incentives    string          `json:"incentives"`
}

type InstallmentRequest struct {
	Guaranteed decimal.Decimal `json:"guaranteed"`
	Bonus      decimal.Decimal `json:"bonus"`
}

type TerminateRequest struct {
	Reason string `json:"reason" validate:"required,oneof=cut void"`
}

type ExtensionOfferRequest struct {
	Years         int             `json:"years" validate:"required,gt=0,lte=10"`
	GuaranteedPay decimal.Decimal `json:"guaranteed_pay"`
	BonusPay      decimal.Decimal `json:"bonus_pay"`
}

type ResolveRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve looking reject"`
}

type TradeRequest struct {
	TeamName string `json:"team_name" validate:"required,max=128"`
}
