package economy

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// CheckCosmeticsAccess проверяет, что документ действителен и не ждёт продления.
func CheckCosmeticsAccess(acc *models.Account, now time.Time) error {
	if acc.RenewalPending {
		return ErrRenewalPending
	}
	if !acc.ExpirationDate.After(now) {
		return ErrIDExpired
	}
	return nil
}

// BuyCosmetic покупает косметику за наличные.
func BuyCosmetic(acc *models.Account, c models.Cosmetic, now time.Time) (Result, error) {
	if err := CheckCosmeticsAccess(acc, now); err != nil {
		return Result{}, err
	}
	if acc.IsEconomyPaused {
		return Result{}, ErrEconomyPaused
	}
	if acc.OwnsCosmetic(c.ID) {
		return Result{}, ErrCosmeticOwned
	}
	if acc.Balance.LessThan(c.Price) {
		return Result{}, ErrInsufficientFunds
	}
	acc.Balance = acc.Balance.Sub(c.Price)
	if acc.CosmeticsOwned == nil {
		acc.CosmeticsOwned = make(map[string]bool)
	}
	acc.CosmeticsOwned[c.ID] = true

	res := Result{Changed: true}
	res.event(models.HistoryPurchase, fmt.Sprintf("Purchased %s for %s", c.Name, Dollars(c.Price)))
	return res, nil
}

// EquipCosmetic устанавливает цвет панели. nil снимает косметику.
func EquipCosmetic(acc *models.Account, c *models.Cosmetic, now time.Time) error {
	if err := CheckCosmeticsAccess(acc, now); err != nil {
		return err
	}
	if c == nil {
		acc.NavbarColor = ""
		return nil
	}
	if !acc.OwnsCosmetic(c.ID) {
		return ErrCosmeticNotOwned
	}
	acc.NavbarColor = c.Color
	return nil
}

// ReconcileCosmetics сбрасывает цвет панели, если ни одна купленная
// косметика из каталога его не даёт.
func ReconcileCosmetics(acc *models.Account, catalog []models.Cosmetic) Result {
	if acc.NavbarColor == "" {
		return Result{}
	}
	for _, c := range catalog {
		if c.Color == acc.NavbarColor && acc.OwnsCosmetic(c.ID) {
			return Result{}
		}
	}
	acc.NavbarColor = ""
	return Result{Changed: true}
}
