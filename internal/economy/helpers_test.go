package economy_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func ptr(t time.Time) *time.Time {
	return &t
}

// newAccount возвращает счёт с действительным документом и стандартным уровнем.
func newAccount(balance string) *models.Account {
	return &models.Account{
		UID:              "uid-1",
		Username:         "alice",
		Balance:          dec(balance),
		CreditScore:      600,
		EmploymentStatus: models.Unemployed,
		MembershipLevel:  models.TierStandard,
		RenewalDate:      now.AddDate(0, -1, 0),
		ExpirationDate:   now.AddDate(1, 0, 0),
		CosmeticsOwned:   map[string]bool{},
	}
}
