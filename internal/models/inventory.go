package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind тип предмета инвентаря.
type ItemKind string

const (
	KindItem   ItemKind = "item"
	KindCoupon ItemKind = "coupon"
)

// InventoryItem предмет в инвентаре пользователя.
type InventoryItem struct {
	ID            int64           `json:"id"`
	AccountUID    string          `json:"-"`
	Name          string          `json:"name"`
	Kind          ItemKind        `json:"kind"`
	Value         decimal.Decimal `json:"value"` // Цена перепродажи
	IsFree        bool            `json:"is_free"`
	DiscountValue decimal.Decimal `json:"discount_value"` // Только для купонов
	OriginalID    int64           `json:"original_id"`
	AcquiredAt    time.Time       `json:"acquired_at"`
}
