package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/cache"
	"github.com/magabrotheeeer/economy-ledger/internal/config"
	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage/mocks"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setup(t *testing.T) (*CatalogService, *mocks.StoreMock, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	store := mocks.NewStoreMock()
	return NewCatalogService(store, c, time.Minute, newNoopLogger()), store, mr
}

func TestCatalogService_ShopItemsCached(t *testing.T) {
	s, store, mr := setup(t)
	items := []models.ShopItem{{ID: 1, Name: "Racket", Cost: decimal.NewFromInt(100)}}
	store.On("ShopItems", mock.Anything).Return(items, nil).Once()

	got, err := s.ShopItems(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, mr.Exists(cache.KeyShopItems))

	// Второе чтение обслуживается кэшем.
	got, err = s.ShopItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Racket", got[0].Name)
	store.AssertNumberOfCalls(t, "ShopItems", 1)
}

func TestCatalogService_CacheUnavailable(t *testing.T) {
	s, store, mr := setup(t)
	mr.Close()
	jobs := []models.Job{{ID: 1, Name: "Lifeguard", Pay: decimal.NewFromInt(1200)}}
	store.On("Jobs", mock.Anything).Return(jobs, nil).Once()

	got, err := s.Jobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jobs, got)
}

func TestCatalogService_EmptyList(t *testing.T) {
	s, store, _ := setup(t)
	store.On("Cosmetics", mock.Anything).Return(nil, nil).Once()

	got, err := s.Cosmetics(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogService_CreateInvalidates(t *testing.T) {
	s, store, mr := setup(t)
	require.NoError(t, mr.Set(cache.KeyShopItems, "[]"))
	item := &models.ShopItem{Name: " Balls ", Cost: decimal.NewFromInt(20)}
	store.On("CreateShopItem", mock.Anything, item).Return(nil).Once()

	require.NoError(t, s.CreateShopItem(context.Background(), item))
	assert.Equal(t, "Balls", item.Name)
	assert.False(t, mr.Exists(cache.KeyShopItems))
}

func TestCatalogService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		call    func(s *CatalogService) error
		wantErr error
	}{
		{
			name: "товар без цены",
			call: func(s *CatalogService) error {
				return s.CreateShopItem(context.Background(), &models.ShopItem{Name: "Racket"})
			},
			wantErr: economy.ErrInvalidAmount,
		},
		{
			name: "товар без названия",
			call: func(s *CatalogService) error {
				return s.CreateShopItem(context.Background(), &models.ShopItem{Name: "  ", Cost: decimal.NewFromInt(1)})
			},
			wantErr: economy.ErrInvalidName,
		},
		{
			name: "скидка больше 100%",
			call: func(s *CatalogService) error {
				return s.CreateBPSItem(context.Background(), &models.BPSItem{Name: "Coupon", Cost: 10, DiscountValue: decimal.RequireFromString("1.5")})
			},
			wantErr: economy.ErrInvalidAmount,
		},
		{
			name: "отрицательная цена косметики",
			call: func(s *CatalogService) error {
				return s.CreateCosmetic(context.Background(), &models.Cosmetic{ID: "x", Name: "X", Price: decimal.NewFromInt(-1), Color: "#000"})
			},
			wantErr: economy.ErrInvalidAmount,
		},
		{
			name: "работа без оплаты",
			call: func(s *CatalogService) error {
				return s.CreateJob(context.Background(), &models.Job{Name: "Idle"})
			},
			wantErr: economy.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, _ := setup(t)
			err := tt.call(s)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.Calls)
		})
	}
}
