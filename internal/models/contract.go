package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus статус контракта.
type ContractStatus string

const (
	ContractOffered          ContractStatus = "offered"
	ContractActive           ContractStatus = "active"
	ContractExtensionOffered ContractStatus = "extension-offered"
	ContractRejected         ContractStatus = "rejected"
)

// InstallmentsPerSeason количество выплат за один сезон.
const InstallmentsPerSeason = 6

// ExtensionTerms условия предложенного продления.
type ExtensionTerms struct {
	Years         int             `json:"years"`
	GuaranteedPay decimal.Decimal `json:"guaranteed_pay"`
	BonusPay      decimal.Decimal `json:"bonus_pay"`
}

// Contract контракт игрока с командой. Срок хранится целым числом выплат,
// по InstallmentsPerSeason выплат на сезон.
type Contract struct {
	ID                    int64           `json:"id"`
	PlayerUID             string          `json:"player_uid"`
	PlayerName            string          `json:"player_name"`
	TeamName              string          `json:"team_name"`
	Status                ContractStatus  `json:"status"`
	SigningBonus          decimal.Decimal `json:"signing_bonus"`
	InstallmentsRemaining int             `json:"installments_remaining"`
	InitialInstallments   int             `json:"initial_installments"`
	GuaranteedPay         decimal.Decimal `json:"guaranteed_pay"` // За сезон
	BonusPay              decimal.Decimal `json:"bonus_pay"`      // Негарантированная часть за сезон
	Incentives            string          `json:"incentives"`

	PaidGuaranteed       decimal.Decimal `json:"paid_guaranteed"`
	PaidBonuses          decimal.Decimal `json:"paid_bonuses"`
	SeasonPaidGuaranteed decimal.Decimal `json:"season_paid_guaranteed"`
	SeasonPaidBonuses    decimal.Decimal `json:"season_paid_bonuses"`

	Extension      *ExtensionTerms `json:"extension,omitempty"`
	TradePending   bool            `json:"trade_pending"`
	ReleasePending bool            `json:"release_pending"`
	TradeStatus    string          `json:"trade_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// SeasonsRemaining оставшийся срок в сезонах, для отображения.
func (c *Contract) SeasonsRemaining() float64 {
	return float64(c.InstallmentsRemaining) / InstallmentsPerSeason
}
