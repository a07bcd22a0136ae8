// Package services содержит покупку и установку косметики.
package services

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// CosmeticsService покупает и устанавливает косметику.
type CosmeticsService struct {
	runner Runner
}

// NewCosmeticsService создает CosmeticsService.
func NewCosmeticsService(runner Runner) *CosmeticsService {
	return &CosmeticsService{runner: runner}
}

// Buy покупает косметику за наличные.
func (s *CosmeticsService) Buy(ctx context.Context, uid, cosmeticID string) (*models.Account, error) {
	const op = "services.cosmetics.Buy"
	var out *models.Account
	err := s.runner.Run(ctx, "cosmetic_buy", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		c, err := tx.Cosmetic(ctx, cosmeticID)
		if err != nil {
			return err
		}
		res, err := economy.BuyCosmetic(acc, *c, b.Now())
		if err != nil {
			return err
		}
		b.Apply(acc, res)
		out = acc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Equip устанавливает цвет панели из купленной косметики. Пустой
// идентификатор снимает косметику.
func (s *CosmeticsService) Equip(ctx context.Context, uid, cosmeticID string) (*models.Account, error) {
	const op = "services.cosmetics.Equip"
	var out *models.Account
	err := s.runner.Run(ctx, "cosmetic_equip", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		var c *models.Cosmetic
		if cosmeticID != "" {
			if c, err = tx.Cosmetic(ctx, cosmeticID); err != nil {
				return err
			}
		}
		if err := economy.EquipCosmetic(acc, c, b.Now()); err != nil {
			return err
		}
		b.Record(acc)
		out = acc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
