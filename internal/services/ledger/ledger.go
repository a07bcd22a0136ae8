// Package ledger выполняет операции экономики в одной транзакции: блокирует
// счета, сверяет производное состояние, сохраняет изменения и журнал, а после
// фиксации публикует уведомления.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Store хранилище с транзакциями.
type Store interface {
	WithinTx(ctx context.Context, fn storage.TxFunc) error
}

// Notifier получатель уведомлений. Notify не возвращает ошибок.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Func тело операции.
type Func func(ctx context.Context, tx storage.Tx, b *Batch) error

// Runner запускает операции.
type Runner struct {
	store    Store
	notifier Notifier
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

// NewRunner создаёт Runner. metrics может быть nil.
func NewRunner(store Store, notifier Notifier, m *metrics.Metrics, log *slog.Logger) *Runner {
	return &Runner{
		store:    store,
		notifier: notifier,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// WithClock подменяет источник времени.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Now текущее время Runner.
func (r *Runner) Now() time.Time {
	return r.now().UTC()
}

// Run выполняет fn в транзакции. Изменённые счета и записи журнала
// сохраняются в той же транзакции, уведомления публикуются только после
// успешной фиксации.
func (r *Runner) Run(ctx context.Context, op string, fn Func) error {
	b := newBatch(r.Now())
	err := r.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := fn(ctx, tx, b); err != nil {
			return err
		}
		return b.flush(ctx, tx)
	})
	r.metrics.Observe(op, resultLabel(err))
	if err != nil {
		if !isExpected(err) {
			r.log.Error("ledger operation failed", slog.String("operation", op), sl.Err(err))
		}
		return err
	}

	for _, n := range b.notices {
		r.notifier.Notify(ctx, n)
	}
	return nil
}

func isExpected(err error) bool {
	return economy.IsRule(err) || economy.IsValidation(err) ||
		errors.Is(err, storage.ErrNotFound) || errors.Is(err, economy.ErrRecipientNotFound)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case isExpected(err):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}

// Batch накапливает изменения одной транзакции.
type Batch struct {
	now      time.Time
	accounts map[string]*models.Account
	results  map[string]*economy.Result
	notices  []string
}

func newBatch(now time.Time) *Batch {
	return &Batch{
		now:      now,
		accounts: make(map[string]*models.Account),
		results:  make(map[string]*economy.Result),
	}
}

// Now время операции, общее для всех записей транзакции.
func (b *Batch) Now() time.Time {
	return b.now
}

// Lock блокирует счёт и приводит его производное состояние к текущему времени.
func (b *Batch) Lock(ctx context.Context, tx storage.Tx, uid string) (*models.Account, error) {
	if acc, ok := b.accounts[uid]; ok {
		return acc, nil
	}
	acc, err := tx.LockAccount(ctx, uid)
	if err != nil {
		return nil, err
	}
	b.track(acc, economy.Reconcile(acc, b.now, nil))
	return acc, nil
}

// LockMany блокирует несколько счетов одним запросом.
func (b *Batch) LockMany(ctx context.Context, tx storage.Tx, uids ...string) (map[string]*models.Account, error) {
	accs, err := tx.LockAccounts(ctx, uids...)
	if err != nil {
		return nil, err
	}
	for _, uid := range uids {
		acc, ok := accs[uid]
		if !ok {
			return nil, storage.ErrNotFound
		}
		if tracked, seen := b.accounts[uid]; seen {
			// Уже заблокированный счёт мог измениться в этой транзакции.
			accs[uid] = tracked
			continue
		}
		b.track(acc, economy.Reconcile(acc, b.now, nil))
	}
	return accs, nil
}

// Adopt учитывает счёт, заблокированный в обход Lock, без сверки.
func (b *Batch) Adopt(acc *models.Account) {
	if _, ok := b.accounts[acc.UID]; !ok {
		b.track(acc, economy.Result{})
	}
}

func (b *Batch) track(acc *models.Account, res economy.Result) {
	b.accounts[acc.UID] = acc
	r := res
	b.results[acc.UID] = &r
	b.notices = append(b.notices, res.Notices...)
}

// Apply фиксирует результат правила для счёта: счёт будет сохранён, события
// записаны в журнал, уведомления отправлены после фиксации.
func (b *Batch) Apply(acc *models.Account, res economy.Result) {
	b.Adopt(acc)
	r := b.results[acc.UID]
	r.Changed = true
	r.Events = append(r.Events, res.Events...)
	b.notices = append(b.notices, res.Notices...)
}

// Record фиксирует изменение счёта с записями журнала.
func (b *Batch) Record(acc *models.Account, events ...economy.Event) {
	b.Apply(acc, economy.Result{Changed: true, Events: events})
}

// Notice добавляет уведомление.
func (b *Batch) Notice(msg string) {
	b.notices = append(b.notices, msg)
}

func (b *Batch) flush(ctx context.Context, tx storage.Tx) error {
	uids := make([]string, 0, len(b.results))
	for uid, res := range b.results {
		if res.Changed {
			uids = append(uids, uid)
		}
	}
	sort.Strings(uids)

	for _, uid := range uids {
		acc := b.accounts[uid]
		if err := tx.UpdateAccount(ctx, acc); err != nil {
			return err
		}
		if entries := b.results[uid].Entries(uid, b.now); len(entries) > 0 {
			if err := tx.AppendHistory(ctx, entries...); err != nil {
				return err
			}
		}
	}
	return nil
}
