// Package services содержит операции администратора над счетами: начисления,
// продление документов, пробные периоды и статус занятости.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// RenewalReader читает счета, ожидающие продления документа.
type RenewalReader interface {
	PendingRenewals(ctx context.Context) ([]*models.Account, error)
}

// AdminService операции администратора.
type AdminService struct {
	runner   Runner
	renewals RenewalReader
}

// NewAdminService создает AdminService.
func NewAdminService(runner Runner, renewals RenewalReader) *AdminService {
	return &AdminService{runner: runner, renewals: renewals}
}

// byUsername выполняет fn над счётом, найденным по имени пользователя.
func (s *AdminService) byUsername(ctx context.Context, name, username string,
	fn func(b *ledger.Batch, acc *models.Account) error) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, economy.ErrInvalidUsername
	}
	var out *models.Account
	err := s.runner.Run(ctx, name, func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		uid, err := tx.FindAccountUIDByUsername(ctx, username)
		if errors.Is(err, storage.ErrNotFound) {
			return economy.ErrRecipientNotFound
		}
		if err != nil {
			return err
		}
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		if err := fn(b, acc); err != nil {
			return err
		}
		out = acc
		return nil
	})
	return out, err
}

func (s *AdminService) byUID(ctx context.Context, name, uid string,
	fn func(b *ledger.Batch, acc *models.Account) error) (*models.Account, error) {
	var out *models.Account
	err := s.runner.Run(ctx, name, func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		acc, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		if err := fn(b, acc); err != nil {
			return err
		}
		out = acc
		return nil
	})
	return out, err
}

// Grant начисляет наличные пользователю.
func (s *AdminService) Grant(ctx context.Context, username string, amount decimal.Decimal) (*models.Account, error) {
	acc, err := s.byUsername(ctx, "admin_grant", username, func(b *ledger.Batch, acc *models.Account) error {
		ev, err := economy.Grant(acc, amount)
		if err != nil {
			return err
		}
		b.Record(acc, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.admin.Grant: %w", err)
	}
	return acc, nil
}

// GrantBPS начисляет бонусные очки пользователю.
func (s *AdminService) GrantBPS(ctx context.Context, username string, amount int64) (*models.Account, error) {
	acc, err := s.byUsername(ctx, "admin_grant_bps", username, func(b *ledger.Batch, acc *models.Account) error {
		ev, err := economy.GrantBPS(acc, amount)
		if err != nil {
			return err
		}
		b.Record(acc, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.admin.GrantBPS: %w", err)
	}
	return acc, nil
}

// GrantTrial включает бесплатный пробный период уровня.
func (s *AdminService) GrantTrial(ctx context.Context, username string, tier models.Tier, days int) (*models.Account, error) {
	acc, err := s.byUsername(ctx, "admin_trial", username, func(b *ledger.Batch, acc *models.Account) error {
		res, err := economy.GrantTrial(acc, tier, days, b.Now())
		if err != nil {
			return err
		}
		b.Apply(acc, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.admin.GrantTrial: %w", err)
	}
	return acc, nil
}

// SetEmployment меняет статус занятости.
func (s *AdminService) SetEmployment(ctx context.Context, username string, status models.EmploymentStatus) (*models.Account, error) {
	acc, err := s.byUsername(ctx, "admin_employment", username, func(b *ledger.Batch, acc *models.Account) error {
		ev, err := economy.SetEmployment(acc, status)
		if err != nil {
			return err
		}
		b.Record(acc, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.admin.SetEmployment: %w", err)
	}
	return acc, nil
}

// PendingRenewals возвращает счета с запросом на продление документа.
func (s *AdminService) PendingRenewals(ctx context.Context) ([]*models.Account, error) {
	list, err := s.renewals.PendingRenewals(ctx)
	if err != nil {
		return nil, fmt.Errorf("services.admin.PendingRenewals: %w", err)
	}
	return list, nil
}

// ApproveRenewal продлевает документ. expiration может быть nil.
func (s *AdminService) ApproveRenewal(ctx context.Context, uid string, expiration *time.Time) (*models.Account, error) {
	acc, err := s.byUID(ctx, "admin_renewal_approve", uid, func(b *ledger.Batch, acc *models.Account) error {
		res, err := economy.ApproveRenewal(acc, b.Now(), expiration)
		if err != nil {
			return err
		}
		b.Apply(acc, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.admin.ApproveRenewal: %w", err)
	}
	return acc, nil
}

// DenyRenewal отклоняет запрос на продление.
func (s *AdminService) DenyRenewal(ctx context.Context, uid string) (*models.Account, error) {
	acc, err := s.byUID(ctx, "admin_renewal_deny", uid, func(b *ledger.Batch, acc *models.Account) error {
		res, err := economy.DenyRenewal(acc)
		if err != nil {
			return err
		}
		b.Apply(acc, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.admin.DenyRenewal: %w", err)
	}
	return acc, nil
}
