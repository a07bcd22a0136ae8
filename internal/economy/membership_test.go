package economy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

func TestPlans_Ordered(t *testing.T) {
	plans := economy.Plans()
	require.Len(t, plans, 4)
	for i := 1; i < len(plans); i++ {
		assert.True(t, plans[i].Price.GreaterThan(plans[i-1].Price))
	}
	assert.Equal(t, models.TierStandard, economy.PlanFor("unknown").Tier)
}

func TestReconcileMembership(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(acc *models.Account)
		wantTier    models.Tier
		wantBalance string
		wantChanged bool
	}{
		{
			name: "ежемесячное продление",
			setup: func(acc *models.Account) {
				acc.MembershipLevel = models.TierPlatinum
				acc.MembershipLastPaid = ptr(now.AddDate(0, -1, 0))
			},
			wantTier:    models.TierPlatinum,
			wantBalance: "100000",
			wantChanged: true,
		},
		{
			name: "срок ещё не наступил",
			setup: func(acc *models.Account) {
				acc.MembershipLevel = models.TierPlatinum
				acc.MembershipLastPaid = ptr(now.AddDate(0, 0, -10))
			},
			wantTier:    models.TierPlatinum,
			wantBalance: "600000",
		},
		{
			name: "недостаточно средств",
			setup: func(acc *models.Account) {
				acc.Balance = dec("100")
				acc.MembershipLevel = models.TierPremium
				acc.MembershipLastPaid = ptr(now.AddDate(0, -2, 0))
				acc.ShopOrderCount = 1
			},
			wantTier:    models.TierStandard,
			wantBalance: "100",
			wantChanged: true,
		},
		{
			name: "пробный период истёк",
			setup: func(acc *models.Account) {
				acc.MembershipLevel = models.TierPremium
				acc.TrialExpiration = ptr(now.Add(-time.Minute))
			},
			wantTier:    models.TierStandard,
			wantBalance: "600000",
			wantChanged: true,
		},
		{
			name: "пробный период не оплачивается",
			setup: func(acc *models.Account) {
				acc.MembershipLevel = models.TierPremium
				acc.TrialExpiration = ptr(now.Add(time.Hour))
			},
			wantTier:    models.TierPremium,
			wantBalance: "600000",
		},
		{
			name:        "стандартный уровень бесплатен",
			setup:       func(acc *models.Account) {},
			wantTier:    models.TierStandard,
			wantBalance: "600000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newAccount("600000")
			tt.setup(acc)

			res := economy.ReconcileMembership(acc, now)
			assert.Equal(t, tt.wantChanged, res.Changed)
			assert.Equal(t, tt.wantTier, acc.MembershipLevel)
			assertDec(t, tt.wantBalance, acc.Balance)
			if tt.wantTier == models.TierStandard && tt.wantChanged {
				assert.Equal(t, 0, acc.ShopOrderCount)
				assert.Nil(t, acc.TrialExpiration)
			}
		})
	}
}

func TestPurchaseMembership(t *testing.T) {
	acc := newAccount("400000")
	res, err := economy.PurchaseMembership(acc, models.TierPremium, now)
	require.NoError(t, err)
	assertDec(t, "100000", acc.Balance)
	assert.Equal(t, models.TierPremium, acc.MembershipLevel)
	assert.Equal(t, now, *acc.MembershipLastPaid)
	require.Len(t, res.Notices, 1)
	assert.Contains(t, res.Notices[0], "New Subscriber")

	_, err = economy.PurchaseMembership(acc, models.TierPremium, now)
	assert.ErrorIs(t, err, economy.ErrAlreadyOnTier)

	_, err = economy.PurchaseMembership(acc, models.TierPlatinum, now)
	assert.ErrorIs(t, err, economy.ErrInsufficientFunds)

	_, err = economy.PurchaseMembership(acc, "gold", now)
	assert.ErrorIs(t, err, economy.ErrInvalidTier)

	res, err = economy.PurchaseMembership(acc, models.TierBasic, now)
	require.NoError(t, err)
	assert.Contains(t, res.Notices[0], "Downgrade")
}

func TestGrantTrial(t *testing.T) {
	acc := newAccount("0")
	_, err := economy.GrantTrial(acc, models.TierPlatinum, 7, now)
	require.NoError(t, err)
	assert.Equal(t, models.TierPlatinum, acc.MembershipLevel)
	assert.Equal(t, now.AddDate(0, 0, 7), *acc.TrialExpiration)

	_, err = economy.PurchaseMembership(acc, models.TierBasic, now)
	assert.ErrorIs(t, err, economy.ErrTrialActive)

	_, err = economy.GrantTrial(acc, models.TierStandard, 7, now)
	assert.ErrorIs(t, err, economy.ErrInvalidTier)

	res := economy.CancelMembership(acc)
	assert.True(t, res.Changed)
	assert.Equal(t, models.TierStandard, acc.MembershipLevel)
	assert.Nil(t, acc.TrialExpiration)
}
