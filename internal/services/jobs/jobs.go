// Package services содержит выполнение работ за оплату.
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

// JobService начисляет оплату за работу.
type JobService struct {
	runner Runner
}

// NewJobService создает JobService.
func NewJobService(runner Runner) *JobService {
	return &JobService{runner: runner}
}

// Work выполняет работу и зачисляет оплату на счёт.
func (s *JobService) Work(ctx context.Context, uid string, jobID int64) (*models.Account, error) {
	const op = "services.jobs.Work"
	var out *models.Account
	err := s.runner.Run(ctx, "job_work", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		job, err := tx.Job(ctx, jobID)
		if err != nil {
			return err
		}
		b.Record(acc, economy.WorkJob(acc, *job))
		out = acc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
