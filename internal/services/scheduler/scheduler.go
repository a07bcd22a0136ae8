// Package services содержит периодические задачи пересчёта производного
// состояния счетов: проценты и просрочка займов, биллинг членства,
// пенсионные проценты.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Имена задач.
const (
	JobLoan       = "loan"
	JobMembership = "membership"
	JobRetirement = "retirement"
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// AccountLister перечисляет счета.
type AccountLister interface {
	AccountUIDs(ctx context.Context) ([]string, error)
}

// Rule правило пересчёта одного счёта.
type Rule func(acc *models.Account, now time.Time) economy.Result

// Job периодическая задача.
type Job struct {
	Name     string
	Interval time.Duration
	Rule     Rule
}

// Jobs возвращает стандартный набор задач с заданными интервалами.
func Jobs(loan, membership, retirement time.Duration) []Job {
	return []Job{
		{Name: JobLoan, Interval: loan, Rule: economy.ReconcileLoan},
		{Name: JobMembership, Interval: membership, Rule: economy.ReconcileMembership},
		{Name: JobRetirement, Interval: retirement, Rule: economy.ReconcileRetirement},
	}
}

// SweepStats итог одного прохода.
type SweepStats struct {
	Total   int
	Changed int
	Failed  int
}

type SchedulerService struct {
	runner   Runner
	accounts AccountLister
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(runner Runner, accounts AccountLister, m *metrics.Metrics, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		runner:   runner,
		accounts: accounts,
		metrics:  m,
		log:      log,
	}
}

// Start запускает задачу сразу и затем с интервалом до отмены ctx.
func (s *SchedulerService) Start(ctx context.Context, job Job) {
	s.Sweep(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler job stopped", slog.String("job", job.Name))
			return
		case <-ticker.C:
			s.Sweep(ctx, job)
		}
	}
}

// Sweep применяет правило задачи ко всем счетам, каждый счёт в отдельной
// транзакции. Ошибка на одном счёте не останавливает проход.
func (s *SchedulerService) Sweep(ctx context.Context, job Job) SweepStats {
	log := s.log.With(slog.String("job", job.Name))
	log.Info("starting sweep")

	var stats SweepStats
	uids, err := s.accounts.AccountUIDs(ctx)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		s.metrics.Sweep(job.Name, metrics.ResultError)
		return stats
	}

	for _, uid := range uids {
		if ctx.Err() != nil {
			log.Info("sweep interrupted", slog.Int("processed", stats.Total))
			break
		}
		stats.Total++
		changed, err := s.reconcile(ctx, job, uid)
		if err != nil {
			stats.Failed++
			log.Error("failed to reconcile account", slog.String("account_uid", uid), sl.Err(err))
			s.metrics.Sweep(job.Name, metrics.ResultError)
			continue
		}
		if changed {
			stats.Changed++
		}
		s.metrics.Sweep(job.Name, metrics.ResultOK)
	}

	log.Info("sweep finished",
		slog.Int("total", stats.Total),
		slog.Int("changed", stats.Changed),
		slog.Int("failed", stats.Failed),
	)
	return stats
}

func (s *SchedulerService) reconcile(ctx context.Context, job Job, uid string) (bool, error) {
	var changed bool
	err := s.runner.Run(ctx, "sweep_"+job.Name, func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := tx.LockAccount(ctx, uid)
		if err != nil {
			return err
		}
		res := job.Rule(acc, b.Now())
		if res.Changed {
			changed = true
			b.Apply(acc, res)
		}
		return nil
	})
	return changed, err
}
