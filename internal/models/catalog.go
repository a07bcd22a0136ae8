package models

import "github.com/shopspring/decimal"

// ShopItem товар магазина за наличные.
type ShopItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
	Image    string          `json:"image,omitempty"`
	Type     string          `json:"type,omitempty"`
	Featured bool            `json:"featured"`
}

// BPSItem купон, покупаемый за бонусные очки.
type BPSItem struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Cost          int64           `json:"cost"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// Cosmetic косметика, меняющая цвет навигационной панели.
type Cosmetic struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Color string          `json:"color"`
}

// Job работа, за выполнение которой начисляется оплата.
type Job struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Pay  decimal.Decimal `json:"pay"`
}

// Notification сообщение для внешнего вебхука уведомлений.
type Notification struct {
	Message string `json:"message"`
}
