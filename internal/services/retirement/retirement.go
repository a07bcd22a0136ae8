// Package services содержит пенсионные накопления: взносы и снятие.
package services

import (
	"context"
	"fmt"
	"time"

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

// Summary состояние накоплений после операции.
type Summary struct {
	Balance           decimal.Decimal `json:"balance"`
	RetirementSavings decimal.Decimal `json:"retirement_savings"`
	DailyTotal        decimal.Decimal `json:"daily_total"`
	DailyLimit        decimal.Decimal `json:"daily_limit"`
	DaysUntilPayout   int             `json:"days_until_payout"`
}

// RetirementService переводит средства между наличными и накоплениями.
type RetirementService struct {
	runner Runner
	limit  decimal.Decimal
}

// NewRetirementService создает RetirementService. dailyCap <= 0 отключает лимит.
func NewRetirementService(runner Runner, dailyCap int64) *RetirementService {
	return &RetirementService{runner: runner, limit: decimal.NewFromInt(dailyCap)}
}

type move func(acc *models.Account, amount decimal.Decimal, now time.Time, limit decimal.Decimal) (economy.Event, error)

// Deposit переводит наличные в накопления.
func (s *RetirementService) Deposit(ctx context.Context, uid string, amount decimal.Decimal) (*Summary, error) {
	sum, err := s.apply(ctx, "retirement_deposit", uid, amount, economy.Deposit)
	if err != nil {
		return nil, fmt.Errorf("services.retirement.Deposit: %w", err)
	}
	return sum, nil
}

// Withdraw переводит накопления в наличные.
func (s *RetirementService) Withdraw(ctx context.Context, uid string, amount decimal.Decimal) (*Summary, error) {
	sum, err := s.apply(ctx, "retirement_withdraw", uid, amount, economy.Withdraw)
	if err != nil {
		return nil, fmt.Errorf("services.retirement.Withdraw: %w", err)
	}
	return sum, nil
}

func (s *RetirementService) apply(ctx context.Context, name, uid string, amount decimal.Decimal, fn move) (*Summary, error) {
	var sum *Summary
	err := s.runner.Run(ctx, name, func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		ev, err := fn(acc, amount, b.Now(), s.limit)
		if err != nil {
			return err
		}
		b.Record(acc, ev)
		sum = &Summary{
			Balance:           acc.Balance,
			RetirementSavings: acc.RetirementSavings,
			DailyTotal:        acc.RetirementDailyTotal,
			DailyLimit:        s.limit,
			DaysUntilPayout:   economy.DaysUntilNextPayout(b.Now()),
		}
		return nil
	})
	return sum, err
}
