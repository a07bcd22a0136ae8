// Package services содержит работу с инвентарём: просмотр, использование и продажу предметов.
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

// InventoryReader читает инвентарь.
type InventoryReader interface {
	Inventory(ctx context.Context, accountUID string) ([]models.InventoryItem, error)
}

// InventoryService работает с предметами пользователя.
type InventoryService struct {
	runner Runner
	reader InventoryReader
}

// NewInventoryService создает InventoryService.
func NewInventoryService(runner Runner, reader InventoryReader) *InventoryService {
	return &InventoryService{runner: runner, reader: reader}
}

// List возвращает предметы от новых к старым.
func (s *InventoryService) List(ctx context.Context, uid string) ([]models.InventoryItem, error) {
	items, err := s.reader.Inventory(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("services.inventory.List: %w", err)
	}
	return items, nil
}

// Use применяет предмет и удаляет его из инвентаря.
func (s *InventoryService) Use(ctx context.Context, uid string, itemID int64) (*models.Account, error) {
	return s.consume(ctx, "inventory_use", "services.inventory.Use", uid, itemID, economy.UseItem)
}

// Sell продаёт предмет и удаляет его из инвентаря.
func (s *InventoryService) Sell(ctx context.Context, uid string, itemID int64) (*models.Account, error) {
	return s.consume(ctx, "inventory_sell", "services.inventory.Sell", uid, itemID, economy.SellItem)
}

type itemRule func(acc *models.Account, item models.InventoryItem) (economy.Result, error)

func (s *InventoryService) consume(ctx context.Context, name, op, uid string, itemID int64, rule itemRule) (*models.Account, error) {
	var out *models.Account
	err := s.runner.Run(ctx, name, func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		item, err := tx.InventoryItemForUpdate(ctx, uid, itemID)
		if err != nil {
			return err
		}
		res, err := rule(acc, *item)
		if err != nil {
			return err
		}
		if err := tx.DeleteInventoryItem(ctx, item.ID); err != nil {
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
