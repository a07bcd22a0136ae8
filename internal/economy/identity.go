package economy

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// RequestRenewal отправляет документ на продление.
func RequestRenewal(acc *models.Account, now time.Time) error {
	if acc.RenewalPending {
		return ErrRenewalPending
	}
	requested := now
	acc.RenewalPending = true
	acc.RenewalRequestDate = &requested
	return nil
}

// ApproveRenewal продлевает документ. Без явной даты срок продлевается на год.
func ApproveRenewal(acc *models.Account, now time.Time, expiration *time.Time) (Result, error) {
	renewal, exp := IdentityPeriod(now)
	if expiration != nil {
		if !expiration.After(now) {
			return Result{}, ErrInvalidExpiration
		}
		exp = *expiration
	}
	acc.RenewalDate = renewal
	acc.ExpirationDate = exp
	acc.RenewalPending = false
	acc.RenewalRequestDate = nil

	res := Result{Changed: true}
	res.event(models.HistoryAdmin, fmt.Sprintf("ID Renewal Approved (Expires %s)", exp.Format(time.DateOnly)))
	return res, nil
}

// DenyRenewal отклоняет запрос на продление.
func DenyRenewal(acc *models.Account) (Result, error) {
	if !acc.RenewalPending {
		return Result{}, ErrNoRenewalRequest
	}
	acc.RenewalPending = false
	acc.RenewalRequestDate = nil
	res := Result{Changed: true}
	res.event(models.HistoryAdmin, "ID Renewal Request Denied")
	return res, nil
}

// SetEmployment меняет статус занятости от имени администратора.
func SetEmployment(acc *models.Account, status models.EmploymentStatus) (Event, error) {
	if !status.Valid() {
		return Event{}, ErrInvalidStatus
	}
	acc.EmploymentStatus = status
	return Event{Type: models.HistoryAdmin, Message: fmt.Sprintf("Employment status set to %s", status)}, nil
}
