package economy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

func requireNonNegative(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.IsNegative() {
			return ErrInvalidAmount
		}
		if err := RequireCents(a); err != nil {
			return err
		}
	}
	return nil
}

// NewOffer формирует предложение контракта игроку.
func NewOffer(player *models.Account, team string, bonus decimal.Decimal, seasons int,
	guaranteed, nonGuaranteed decimal.Decimal, incentives string) (models.Contract, error) {
	if seasons <= 0 {
		return models.Contract{}, ErrInvalidAmount
	}
	if err := requireNonNegative(bonus, guaranteed, nonGuaranteed); err != nil {
		return models.Contract{}, err
	}
	installments := seasons * models.InstallmentsPerSeason
	return models.Contract{
		PlayerUID:             player.UID,
		PlayerName:            player.Username,
		TeamName:              team,
		Status:                models.ContractOffered,
		SigningBonus:          bonus,
		InstallmentsRemaining: installments,
		InitialInstallments:   installments,
		GuaranteedPay:         guaranteed,
		BonusPay:              nonGuaranteed,
		Incentives:            incentives,
	}, nil
}

// RespondToOffer принимает или отклоняет предложение. При отказе контракт
// подлежит удалению (remove == true).
func RespondToOffer(c *models.Contract, player *models.Account, accept, hasActive bool) (remove bool, res Result, err error) {
	if c.PlayerUID != player.UID {
		return false, Result{}, ErrNotContractOwner
	}
	if c.Status != models.ContractOffered {
		return false, Result{}, ErrContractState
	}
	if !accept {
		c.Status = models.ContractRejected
		res.event(models.HistoryContract, fmt.Sprintf("Offer Rejected from %s", c.TeamName))
		return true, res, nil
	}
	if hasActive {
		return false, Result{}, ErrContractExists
	}

	c.Status = models.ContractActive
	c.PlayerName = player.Username
	c.InitialInstallments = c.InstallmentsRemaining
	c.PaidGuaranteed = decimal.Zero
	c.PaidBonuses = decimal.Zero
	c.SeasonPaidGuaranteed = decimal.Zero
	c.SeasonPaidBonuses = decimal.Zero

	player.EmploymentStatus = models.Employed
	player.Balance = player.Balance.Add(c.SigningBonus)

	res.Changed = true
	res.event(models.HistoryContract, fmt.Sprintf("Joined %s. Bonus: %s", c.TeamName, Dollars(c.SigningBonus)))
	res.Notices = append(res.Notices, fmt.Sprintf("✍️ *Contract Signed:* %s joined %s.", player.Username, c.TeamName))
	return false, res, nil
}

// PayInstallment проводит одну выплату по контракту. Каждая выплата сокращает
// срок на одну шестую сезона; после последней выплаты контракт завершается
// (finished == true) и должен быть удалён.
func PayInstallment(c *models.Contract, player *models.Account, guaranteed, bonus decimal.Decimal) (finished bool, res Result, err error) {
	if err := requireNonNegative(guaranteed, bonus); err != nil {
		return false, Result{}, err
	}
	total := guaranteed.Add(bonus)
	if !total.IsPositive() {
		return false, Result{}, ErrInvalidAmount
	}
	if c.Status != models.ContractActive && c.Status != models.ContractExtensionOffered {
		return false, Result{}, ErrContractState
	}
	if c.InstallmentsRemaining <= 0 {
		return false, Result{}, ErrContractState
	}

	old := c.InstallmentsRemaining
	remaining := old - 1
	c.InstallmentsRemaining = remaining
	c.PaidGuaranteed = c.PaidGuaranteed.Add(guaranteed)
	c.PaidBonuses = c.PaidBonuses.Add(bonus)
	c.SeasonPaidGuaranteed = c.SeasonPaidGuaranteed.Add(guaranteed)
	c.SeasonPaidBonuses = c.SeasonPaidBonuses.Add(bonus)
	// Переход в следующий сезон обнуляет сезонные суммы, включая текущую выплату.
	if remaining > 0 && old/models.InstallmentsPerSeason != remaining/models.InstallmentsPerSeason {
		c.SeasonPaidGuaranteed = decimal.Zero
		c.SeasonPaidBonuses = decimal.Zero
	}

	player.Balance = player.Balance.Add(total)
	res.Changed = true

	if remaining == 0 {
		player.EmploymentStatus = models.Unemployed
		res.event(models.HistoryContract, "Contract Fulfilled!")
		res.Notices = append(res.Notices, fmt.Sprintf("🏁 *Contract Fulfilled:* %s completed their contract with %s.", player.Username, c.TeamName))
		return true, res, nil
	}
	res.event(models.HistoryTransferIn, fmt.Sprintf("Payout: %s", Dollars(total)))
	return false, res, nil
}

// Terminate расторгает контракт (cut или void).
func Terminate(c *models.Contract, player *models.Account, void bool) Result {
	player.EmploymentStatus = models.Unemployed
	msg := "Contract Terminated."
	if void {
		msg = "Contract Voided."
	}
	res := Result{Changed: true}
	res.event(models.HistoryAdmin, msg)
	res.Notices = append(res.Notices, fmt.Sprintf("✂️ *Contract Ended:* %s and %s: %s", player.Username, c.TeamName, msg))
	return res
}

// OfferExtension предлагает продление активного контракта.
func OfferExtension(c *models.Contract, years int, guaranteed, bonus decimal.Decimal) error {
	if years <= 0 {
		return ErrInvalidAmount
	}
	if err := requireNonNegative(guaranteed, bonus); err != nil {
		return err
	}
	if c.Status != models.ContractActive {
		return ErrContractState
	}
	c.Status = models.ContractExtensionOffered
	c.Extension = &models.ExtensionTerms{Years: years, GuaranteedPay: guaranteed, BonusPay: bonus}
	return nil
}

// RespondToExtension принимает или отклоняет продление.
func RespondToExtension(c *models.Contract, player *models.Account, accept bool) (Result, error) {
	if c.PlayerUID != player.UID {
		return Result{}, ErrNotContractOwner
	}
	if c.Status != models.ContractExtensionOffered || c.Extension == nil {
		return Result{}, ErrContractState
	}
	res := Result{Changed: true}
	if accept {
		added := c.Extension.Years * models.InstallmentsPerSeason
		c.InstallmentsRemaining += added
		c.InitialInstallments += added
		c.GuaranteedPay = c.Extension.GuaranteedPay
		c.BonusPay = c.Extension.BonusPay
		res.event(models.HistoryContract, "Extension Accepted.")
	} else {
		res.event(models.HistoryContract, "Extension Rejected.")
	}
	c.Status = models.ContractActive
	c.Extension = nil
	return res, nil
}

// RequestChange фиксирует запрос игрока на обмен (trade) или освобождение (release).
func RequestChange(c *models.Contract, player *models.Account, kind string) error {
	if c.PlayerUID != player.UID {
		return ErrNotContractOwner
	}
	if c.Status != models.ContractActive {
		return ErrContractState
	}
	if c.TradePending || c.ReleasePending {
		return ErrRequestAlreadyExists
	}
	switch kind {
	case "trade":
		c.TradePending = true
	case "release":
		c.ReleasePending = true
	default:
		return ErrContractState
	}
	return nil
}

// CancelRequest отменяет запрос игрока.
func CancelRequest(c *models.Contract, player *models.Account) error {
	if c.PlayerUID != player.UID {
		return ErrNotContractOwner
	}
	if !c.TradePending && !c.ReleasePending {
		return ErrNoPendingRequest
	}
	c.TradePending = false
	c.ReleasePending = false
	c.TradeStatus = ""
	return nil
}

// ResolveRequest обрабатывает запрос администратором. Одобренное освобождение
// завершает контракт (remove == true).
func ResolveRequest(c *models.Contract, player *models.Account, decision string) (remove bool, res Result, err error) {
	if !c.TradePending && !c.ReleasePending {
		return false, Result{}, ErrNoPendingRequest
	}
	res.Changed = true
	switch decision {
	case "approve":
		if c.ReleasePending {
			player.EmploymentStatus = models.Unemployed
			res.event(models.HistoryContract, fmt.Sprintf("Released from %s.", c.TeamName))
			return true, res, nil
		}
		c.TradePending = false
		c.TradeStatus = "approved"
		res.event(models.HistoryContract, "Trade request approved.")
	case "looking":
		c.TradeStatus = "looking"
		res.event(models.HistoryContract, "Team is looking for a trade partner.")
	case "reject":
		c.TradePending = false
		c.ReleasePending = false
		c.TradeStatus = ""
		res.event(models.HistoryContract, "Request rejected.")
	default:
		return false, Result{}, ErrContractState
	}
	return false, res, nil
}

// TradePlayer переводит контракт в новую команду.
func TradePlayer(c *models.Contract, team string) (Result, error) {
	if c.Status != models.ContractActive && c.Status != models.ContractExtensionOffered {
		return Result{}, ErrContractState
	}
	old := c.TeamName
	c.TeamName = team
	c.TradePending = false
	c.TradeStatus = ""
	res := Result{Changed: true}
	res.event(models.HistoryContract, fmt.Sprintf("Traded from %s to %s.", old, team))
	return res, nil
}
