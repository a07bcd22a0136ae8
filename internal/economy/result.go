package economy

import (
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Event запись журнала, порождённая правилом.
type Event struct {
	Type    models.HistoryType
	Message string
}

// Result итог применения правил к счёту.
type Result struct {
	Changed bool     // Счёт изменён и должен быть сохранён
	Events  []Event  // Записи для журнала счёта
	Notices []string // Сообщения для внешнего вебхука
}

// Merge добавляет к результату другой результат.
func (r *Result) Merge(other Result) {
	r.Changed = r.Changed || other.Changed
	r.Events = append(r.Events, other.Events...)
	r.Notices = append(r.Notices, other.Notices...)
}

func (r *Result) event(t models.HistoryType, msg string) {
	r.Events = append(r.Events, Event{Type: t, Message: msg})
}

// Entries превращает события в записи журнала для счёта.
func (r Result) Entries(accountUID string, now time.Time) []models.HistoryEntry {
	return Entries(accountUID, now, r.Events...)
}

// Entries собирает записи журнала одного счёта с общей меткой времени.
func Entries(accountUID string, now time.Time, events ...Event) []models.HistoryEntry {
	if len(events) == 0 {
		return nil
	}
	entries := make([]models.HistoryEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, models.HistoryEntry{
			AccountUID: accountUID,
			Message:    e.Message,
			Type:       e.Type,
			Timestamp:  now,
		})
	}
	return entries
}
