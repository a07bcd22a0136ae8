// Package services содержит покупки в магазине за наличные и за бонусные очки.
package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// Receipt итог покупки.
type Receipt struct {
	Quote      economy.Quote        `json:"quote"`
	Item       models.InventoryItem `json:"item"`
	Balance    decimal.Decimal      `json:"balance"`
	BPSBalance int64                `json:"bps_balance"`
}

// ShopService покупает товары.
type ShopService struct {
	runner Runner
}

// NewShopService создает ShopService.
func NewShopService(runner Runner) *ShopService {
	return &ShopService{runner: runner}
}

// Purchase покупает товар магазина и кладёт его в инвентарь.
func (s *ShopService) Purchase(ctx context.Context, uid string, itemID int64) (*Receipt, error) {
	var receipt *Receipt
	err := s.runner.Run(ctx, "shop_purchase", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		item, err := tx.ShopItem(ctx, itemID)
		if err != nil {
			return err
		}
		quote, inv, res, err := economy.Purchase(acc, *item, b.Now())
		if err != nil {
			return err
		}
		if err := tx.InsertInventoryItem(ctx, &inv); err != nil {
			return err
		}
		b.Apply(acc, res)
		receipt = &Receipt{Quote: quote, Item: inv, Balance: acc.Balance, BPSBalance: acc.BPSBalance}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.shop.Purchase: %w", err)
	}
	return receipt, nil
}

// PurchaseBPS покупает купон за бонусные очки.
func (s *ShopService) PurchaseBPS(ctx context.Context, uid string, itemID int64) (*Receipt, error) {
	var receipt *Receipt
	err := s.runner.Run(ctx, "bps_purchase", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		item, err := tx.BPSItem(ctx, itemID)
		if err != nil {
			return err
		}
		inv, res, err := economy.PurchaseBPS(acc, *item, b.Now())
		if err != nil {
			return err
		}
		if err := tx.InsertInventoryItem(ctx, &inv); err != nil {
			return err
		}
		b.Apply(acc, res)
		receipt = &Receipt{Item: inv, Balance: acc.Balance, BPSBalance: acc.BPSBalance}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.shop.PurchaseBPS: %w", err)
	}
	return receipt, nil
}
