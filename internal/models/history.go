package models

import "time"

// HistoryType категория записи истории.
type HistoryType string

const (
	HistoryPurchase    HistoryType = "purchase"
	HistoryTransferIn  HistoryType = "transfer-in"
	HistoryTransferOut HistoryType = "transfer-out"
	HistoryUsage       HistoryType = "usage"
	HistoryAdmin       HistoryType = "admin"
	HistoryContract    HistoryType = "contract"
	HistoryMembership  HistoryType = "membership"
)

// HistoryEntry запись журнала операций счёта. После создания не изменяется.
type HistoryEntry struct {
	ID         int64       `json:"id"`
	AccountUID string      `json:"-"`
	Message    string      `json:"message"`
	Type       HistoryType `json:"type"`
	Timestamp  time.Time   `json:"timestamp"`
}
