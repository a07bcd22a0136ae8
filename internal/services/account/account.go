// Package services содержит профиль счёта, запрос продления документа и журнал операций.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Границы размера выборки журнала.
const (
	MinHistoryLimit = 1
	MaxHistoryLimit = 200
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// HistoryReader читает журнал счёта.
type HistoryReader interface {
	History(ctx context.Context, accountUID string, limit int) ([]models.HistoryEntry, error)
}

// Profile счёт с производными показателями.
type Profile struct {
	Account         *models.Account    `json:"account"`
	CreditTier      economy.CreditTier `json:"credit_tier"`
	Plan            economy.Plan       `json:"plan"`
	NextItemFree    bool               `json:"next_item_free"`
	IDExpired       bool               `json:"id_expired"`
	DaysUntilPayout int                `json:"days_until_payout"`
}

// AccountService работает с профилем пользователя.
type AccountService struct {
	runner       Runner
	history      HistoryReader
	defaultLimit int
}

// NewAccountService создает AccountService. defaultLimit используется, когда лимит журнала не задан.
func NewAccountService(runner Runner, history HistoryReader, defaultLimit int) *AccountService {
	return &AccountService{
		runner:       runner,
		history:      history,
		defaultLimit: ClampLimit(defaultLimit, 30),
	}
}

// ClampLimit приводит лимит к диапазону 1..200, 0 заменяется на def.
func ClampLimit(limit, def int) int {
	if limit == 0 {
		limit = def
	}
	if limit < MinHistoryLimit {
		return MinHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// Profile загружает счёт, сверяя займ, членство, пенсионный процент и косметику.
func (s *AccountService) Profile(ctx context.Context, uid string) (*Profile, error) {
	var p *Profile
	err := s.runner.Run(ctx, "profile", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		cosmetics, err := tx.Cosmetics(ctx)
		if err != nil {
			return err
		}
		if res := economy.ReconcileCosmetics(acc, cosmetics); res.Changed {
			b.Apply(acc, res)
		}
		p = newProfile(acc, b.Now())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.account.Profile: %w", err)
	}
	return p, nil
}

func newProfile(acc *models.Account, now time.Time) *Profile {
	return &Profile{
		Account:         acc,
		CreditTier:      economy.TierForScore(acc.CreditScore),
		Plan:            economy.PlanFor(acc.MembershipLevel),
		NextItemFree:    economy.IsNextItemFree(acc),
		IDExpired:       economy.CheckIdentity(acc, now) != nil,
		DaysUntilPayout: economy.DaysUntilNextPayout(now),
	}
}

// RequestRenewal отправляет документ пользователя на продление.
func (s *AccountService) RequestRenewal(ctx context.Context, uid string) error {
	err := s.runner.Run(ctx, "renewal_request", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		if err := economy.RequestRenewal(acc, b.Now()); err != nil {
			return err
		}
		b.Record(acc)
		return nil
	})
	if err != nil {
		return fmt.Errorf("services.account.RequestRenewal: %w", err)
	}
	return nil
}

// History возвращает записи журнала от новых к старым.
func (s *AccountService) History(ctx context.Context, uid string, limit int) ([]models.HistoryEntry, error) {
	entries, err := s.history.History(ctx, uid, ClampLimit(limit, s.defaultLimit))
	if err != nil {
		return nil, fmt.Errorf("services.account.History: %w", err)
	}
	return entries, nil
}
