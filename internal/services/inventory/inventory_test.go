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
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
	"github.com/magabrotheeeer/economy-ledger/internal/storage/mocks"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setup() (*InventoryService, *mocks.StoreMock, *models.Account) {
	store := mocks.NewStoreMock()
	runner := ledger.NewRunner(store, &mocks.NotifierMock{}, nil, newNoopLogger()).WithClock(func() time.Time { return now })
	acc := &models.Account{
		UID:             "uid-1",
		Username:        "alice",
		Balance:         decimal.NewFromInt(100),
		MembershipLevel: models.TierBasic,
		ExpirationDate:  now.AddDate(1, 0, 0),
	}
	paid := now
	acc.MembershipLastPaid = &paid
	store.Tx.On("LockAccount", mock.Anything, "uid-1").Return(acc, nil)
	return NewInventoryService(runner, store), store, acc
}

func TestInventoryService_UseCoupon(t *testing.T) {
	s, store, acc := setup()
	coupon := &models.InventoryItem{ID: 5, Name: "10% Coupon", Kind: models.KindCoupon, DiscountValue: decimal.RequireFromString("0.1")}

	store.Tx.On("InventoryItemForUpdate", mock.Anything, "uid-1", int64(5)).Return(coupon, nil).Once()
	store.Tx.On("DeleteInventoryItem", mock.Anything, int64(5)).Return(nil).Once()
	store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Once()
	store.Tx.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e []models.HistoryEntry) bool {
		return e[0].Message == "Activated Coupon: 10% Coupon" && e[0].Type == models.HistoryUsage
	})).Return(nil).Once()

	got, err := s.Use(context.Background(), "uid-1", 5)
	require.NoError(t, err)
	assert.True(t, got.ActiveDiscount.Equal(decimal.RequireFromString("0.1")))
	store.Tx.AssertExpectations(t)
}

func TestInventoryService_UseRegularIncrementsCounter(t *testing.T) {
	s, store, acc := setup()
	item := &models.InventoryItem{ID: 6, Name: "Racket", Kind: models.KindItem, Value: decimal.NewFromInt(50)}

	store.Tx.On("InventoryItemForUpdate", mock.Anything, "uid-1", int64(6)).Return(item, nil).Once()
	store.Tx.On("DeleteInventoryItem", mock.Anything, int64(6)).Return(nil).Once()
	store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Once()
	store.Tx.On("AppendHistory", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.Use(context.Background(), "uid-1", 6)
	require.NoError(t, err)
	assert.Equal(t, 1, acc.ShopOrderCount)
}

func TestInventoryService_Sell(t *testing.T) {
	tests := []struct {
		name        string
		item        *models.InventoryItem
		wantErr     error
		wantBalance int64
	}{
		{
			name:        "обычный предмет",
			item:        &models.InventoryItem{ID: 1, Name: "Racket", Kind: models.KindItem, Value: decimal.NewFromInt(55)},
			wantBalance: 155,
		},
		{
			name:        "бесплатный предмет",
			item:        &models.InventoryItem{ID: 1, Name: "Racket", Kind: models.KindItem, IsFree: true},
			wantErr:     economy.ErrItemUnsellable,
			wantBalance: 100,
		},
		{
			name:        "купон",
			item:        &models.InventoryItem{ID: 1, Name: "Coupon", Kind: models.KindCoupon},
			wantErr:     economy.ErrItemUnsellable,
			wantBalance: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, acc := setup()
			store.Tx.On("InventoryItemForUpdate", mock.Anything, "uid-1", int64(1)).Return(tt.item, nil).Once()
			store.Tx.On("DeleteInventoryItem", mock.Anything, int64(1)).Return(nil).Maybe()
			store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Maybe()
			store.Tx.On("AppendHistory", mock.Anything, mock.Anything).Return(nil).Maybe()

			_, err := s.Sell(context.Background(), "uid-1", 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				store.Tx.AssertNotCalled(t, "DeleteInventoryItem", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, acc.Balance.Equal(decimal.NewFromInt(tt.wantBalance)))
		})
	}
}

func TestInventoryService_ForeignItem(t *testing.T) {
	s, store, _ := setup()
	store.Tx.On("InventoryItemForUpdate", mock.Anything, "uid-1", int64(9)).Return(nil, storage.ErrNotFound).Once()

	_, err := s.Use(context.Background(), "uid-1", 9)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInventoryService_List(t *testing.T) {
	s, store, _ := setup()
	items := []models.InventoryItem{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}
	store.On("Inventory", mock.Anything, "uid-1").Return(items, nil).Once()

	got, err := s.List(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}
