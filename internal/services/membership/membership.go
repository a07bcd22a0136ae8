// Package services содержит покупку и отмену членства.
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

// MembershipService управляет уровнем членства.
type MembershipService struct {
	runner Runner
}

// NewMembershipService создает MembershipService.
func NewMembershipService(runner Runner) *MembershipService {
	return &MembershipService{runner: runner}
}

// Plans возвращает уровни членства.
func (s *MembershipService) Plans() []economy.Plan {
	return economy.Plans()
}

// Purchase оплачивает и включает уровень членства.
func (s *MembershipService) Purchase(ctx context.Context, uid string, tier models.Tier) (*models.Account, error) {
	const op = "services.membership.Purchase"
	if _, ok := economy.LookupPlan(tier); !ok {
		return nil, fmt.Errorf("%s: %w", op, economy.ErrInvalidTier)
	}
	var out *models.Account
	err := s.runner.Run(ctx, "membership_purchase", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		res, err := economy.PurchaseMembership(acc, tier, b.Now())
		if err != nil {
			return err
		}
		b.Apply(acc, res)
		out = acc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Cancel возвращает счёт на стандартный уровень.
func (s *MembershipService) Cancel(ctx context.Context, uid string) (*models.Account, error) {
	const op = "services.membership.Cancel"
	var out *models.Account
	err := s.runner.Run(ctx, "membership_cancel", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		res := economy.CancelMembership(acc)
		if !res.Changed {
			return economy.ErrAlreadyOnTier
		}
		b.Apply(acc, res)
		out = acc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
