// Package services содержит справочники магазина: товары, купоны, косметику
// и работы. Списки читаются через кэш Redis, изменения администратора
// сбрасывают соответствующий ключ.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/cache"
	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Cache кэш справочников.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// CatalogRepository хранилище справочников.
type CatalogRepository interface {
	ShopItems(ctx context.Context) ([]models.ShopItem, error)
	BPSItems(ctx context.Context) ([]models.BPSItem, error)
	Cosmetics(ctx context.Context) ([]models.Cosmetic, error)
	Jobs(ctx context.Context) ([]models.Job, error)
	CreateShopItem(ctx context.Context, it *models.ShopItem) error
	CreateBPSItem(ctx context.Context, it *models.BPSItem) error
	CreateCosmetic(ctx context.Context, it *models.Cosmetic) error
	CreateJob(ctx context.Context, j *models.Job) error
}

// CatalogService отдаёт и пополняет справочники.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCatalogService создает CatalogService.
func NewCatalogService(repo CatalogRepository, c Cache, ttl time.Duration, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: c, ttl: ttl, log: log}
}

// cached читает список из кэша, при промахе загружает его из хранилища
// и кладёт в кэш. Ошибки кэша не прерывают чтение.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var items []T
	found, err := s.cache.Get(ctx, key, &items)
	if err != nil {
		s.log.Warn("catalog cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return items, nil
	}
	items, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
		s.log.Warn("catalog cache write failed", slog.String("key", key), sl.Err(err))
	}
	return items, nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("catalog cache invalidate failed", slog.String("key", key), sl.Err(err))
	}
}

func (s *CatalogService) ShopItems(ctx context.Context) ([]models.ShopItem, error) {
	items, err := cached(ctx, s, cache.KeyShopItems, s.repo.ShopItems)
	if err != nil {
		return nil, fmt.Errorf("services.catalog.ShopItems: %w", err)
	}
	return items, nil
}

func (s *CatalogService) BPSItems(ctx context.Context) ([]models.BPSItem, error) {
	items, err := cached(ctx, s, cache.KeyBPSItems, s.repo.BPSItems)
	if err != nil {
		return nil, fmt.Errorf("services.catalog.BPSItems: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Cosmetics(ctx context.Context) ([]models.Cosmetic, error) {
	items, err := cached(ctx, s, cache.KeyCosmetics, s.repo.Cosmetics)
	if err != nil {
		return nil, fmt.Errorf("services.catalog.Cosmetics: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Jobs(ctx context.Context) ([]models.Job, error) {
	items, err := cached(ctx, s, cache.KeyJobs, s.repo.Jobs)
	if err != nil {
		return nil, fmt.Errorf("services.catalog.Jobs: %w", err)
	}
	return items, nil
}

// CreateShopItem добавляет товар магазина.
func (s *CatalogService) CreateShopItem(ctx context.Context, it *models.ShopItem) error {
	const op = "services.catalog.CreateShopItem"
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return fmt.Errorf("%s: %w", op, economy.ErrInvalidName)
	}
	if err := economy.RequirePositive(it.Cost); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreateShopItem(ctx, it); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyShopItems)
	return nil
}

// CreateBPSItem добавляет купон. Скидка задаётся долей от 0 до 1.
func (s *CatalogService) CreateBPSItem(ctx context.Context, it *models.BPSItem) error {
	const op = "services.catalog.CreateBPSItem"
	if it.Cost <= 0 || !it.DiscountValue.IsPositive() || it.DiscountValue.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s: %w", op, economy.ErrInvalidAmount)
	}
	if err := s.repo.CreateBPSItem(ctx, it); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyBPSItems)
	return nil
}

// CreateCosmetic добавляет косметику.
func (s *CatalogService) CreateCosmetic(ctx context.Context, it *models.Cosmetic) error {
	const op = "services.catalog.CreateCosmetic"
	if err := economy.RequirePositive(it.Price); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreateCosmetic(ctx, it); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCosmetics)
	return nil
}

// CreateJob добавляет работу.
func (s *CatalogService) CreateJob(ctx context.Context, j *models.Job) error {
	const op = "services.catalog.CreateJob"
	if err := economy.RequirePositive(j.Pay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreateJob(ctx, j); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyJobs)
	return nil
}
