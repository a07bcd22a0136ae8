package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage/mocks"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newAccount() *models.Account {
	return &models.Account{
		UID:             "uid-1",
		Username:        "alice",
		Balance:         decimal.NewFromInt(1000),
		CreditScore:     economy.DefaultCreditScore,
		MembershipLevel: models.TierStandard,
		ExpirationDate:  now.AddDate(1, 0, 0),
		CosmeticsOwned:  map[string]bool{},
	}
}

func setup() (*AccountService, *mocks.StoreMock, *mocks.NotifierMock) {
	store := mocks.NewStoreMock()
	notifier := &mocks.NotifierMock{}
	runner := ledger.NewRunner(store, notifier, nil, newNoopLogger()).WithClock(func() time.Time { return now })
	return NewAccountService(runner, store, 30), store, notifier
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "по умолчанию", limit: 0, want: 30},
		{name: "в диапазоне", limit: 50, want: 50},
		{name: "слишком большой", limit: 1000, want: MaxHistoryLimit},
		{name: "отрицательный", limit: -5, want: MinHistoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampLimit(tt.limit, 30))
		})
	}
}

func TestAccountService_Profile(t *testing.T) {
	s, store, _ := setup()
	acc := newAccount()
	acc.NavbarColor = "#ff0000"

	store.Tx.On("LockAccount", mock.Anything, "uid-1").Return(acc, nil).Once()
	store.Tx.On("Cosmetics", mock.Anything).Return([]models.Cosmetic{{ID: "red", Color: "#ff0000"}}, nil).Once()
	store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Once()

	p, err := s.Profile(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.Equal(t, "", acc.NavbarColor, "цвет не куплен и сбрасывается")
	assert.Equal(t, "Fair", p.CreditTier.Label)
	assert.Equal(t, models.TierStandard, p.Plan.Tier)
	assert.False(t, p.IDExpired)
	assert.Equal(t, 22, p.DaysUntilPayout)
	store.Tx.AssertExpectations(t)
}

func TestAccountService_ProfileWithoutChanges(t *testing.T) {
	s, store, _ := setup()
	acc := newAccount()
	acc.CosmeticsOwned["red"] = true
	acc.NavbarColor = "#ff0000"

	store.Tx.On("LockAccount", mock.Anything, "uid-1").Return(acc, nil).Once()
	store.Tx.On("Cosmetics", mock.Anything).Return([]models.Cosmetic{{ID: "red", Color: "#ff0000"}}, nil).Once()

	_, err := s.Profile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", acc.NavbarColor)
	store.Tx.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything)
}

func TestAccountService_RequestRenewal(t *testing.T) {
	s, store, _ := setup()
	acc := newAccount()

	store.Tx.On("LockAccount", mock.Anything, "uid-1").Return(acc, nil)
	store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Once()

	require.NoError(t, s.RequestRenewal(context.Background(), "uid-1"))
	assert.True(t, acc.RenewalPending)

	err := s.RequestRenewal(context.Background(), "uid-1")
	require.ErrorIs(t, err, economy.ErrRenewalPending)
}

func TestAccountService_History(t *testing.T) {
	s, store, _ := setup()
	entries := []models.HistoryEntry{{ID: 2, Message: "Sent $5 to bob"}, {ID: 1, Message: "Admin gave $10"}}
	store.On("History", mock.Anything, "uid-1", 30).Return(entries, nil).Once()
	store.On("History", mock.Anything, "uid-1", MaxHistoryLimit).Return(entries[:1], nil).Once()

	got, err := s.History(context.Background(), "uid-1", 0)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	got, err = s.History(context.Background(), "uid-1", 5000)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	store.AssertExpectations(t)
}
