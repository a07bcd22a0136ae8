package economy

import (
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Reconcile приводит производное состояние счёта к моменту now: проценты и
// просрочка займа, пробный период и оплата членства, пенсионный процент,
// недействительный цвет панели.
func Reconcile(acc *models.Account, now time.Time, cosmetics []models.Cosmetic) Result {
	var res Result
	res.Merge(ReconcileLoan(acc, now))
	res.Merge(ReconcileMembership(acc, now))
	res.Merge(ReconcileRetirement(acc, now))
	if cosmetics != nil {
		res.Merge(ReconcileCosmetics(acc, cosmetics))
	}
	return res
}
