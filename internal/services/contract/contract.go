// Package services содержит жизненный цикл контрактов игроков: предложения,
// выплаты, продления, запросы на обмен и освобождение.
//
// Все операции сначала блокируют строку контракта, затем счёт игрока, так
// что порядок блокировок одинаков для игрока и администратора.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Решения администратора по запросу игрока.
const (
	DecisionApprove = "approve"
	DecisionLooking = "looking"
	DecisionReject  = "reject"
)

// Причины расторжения.
const (
	ReasonCut  = "cut"
	ReasonVoid = "void"
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// ContractReader читает контракты вне транзакции.
type ContractReader interface {
	Contracts(ctx context.Context, playerUID string) ([]models.Contract, error)
}

// Offer условия нового контракта.
type Offer struct {
	Username      string
	TeamName      string
	SigningBonus  decimal.Decimal
	Seasons       int
	GuaranteedPay decimal.Decimal
	BonusPay      decimal.Decimal
	Incentives    string
}

// ContractService управляет контрактами.
type ContractService struct {
	runner Runner
	reader ContractReader
}

// NewContractService создает ContractService.
func NewContractService(runner Runner, reader ContractReader) *ContractService {
	return &ContractService{runner: runner, reader: reader}
}

// List возвращает контракты игрока. Пустой uid возвращает все контракты.
func (s *ContractService) List(ctx context.Context, playerUID string) ([]models.Contract, error) {
	list, err := s.reader.Contracts(ctx, playerUID)
	if err != nil {
		return nil, fmt.Errorf("services.contract.List: %w", err)
	}
	return list, nil
}

// contractFunc тело операции над заблокированными контрактом и счётом игрока.
type contractFunc func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error

func (s *ContractService) withContract(ctx context.Context, name string, id int64, fn contractFunc) (*models.Contract, error) {
	var out *models.Contract
	err := s.runner.Run(ctx, name, func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		c, err := tx.ContractForUpdate(ctx, id)
		if err != nil {
			return err
		}
		player, err := b.Lock(ctx, tx, c.PlayerUID)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, b, c, player); err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// save сохраняет контракт или удаляет его, если он завершён.
func save(ctx context.Context, tx storage.Tx, c *models.Contract, remove bool) error {
	if remove {
		return tx.DeleteContract(ctx, c.ID)
	}
	return tx.UpdateContract(ctx, c)
}

// Respond принимает или отклоняет предложение.
func (s *ContractService) Respond(ctx context.Context, playerUID string, id int64, accept bool) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_respond", id, func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error {
		if player.UID != playerUID {
			return economy.ErrNotContractOwner
		}
		var hasActive bool
		if accept {
			var err error
			if hasActive, err = tx.HasActiveContract(ctx, playerUID); err != nil {
				return err
			}
		}
		remove, res, err := economy.RespondToOffer(c, player, accept, hasActive)
		if err != nil {
			return err
		}
		if err := save(ctx, tx, c, remove); err != nil {
			return err
		}
		b.Apply(player, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.Respond: %w", err)
	}
	return c, nil
}

// RespondExtension принимает или отклоняет продление.
func (s *ContractService) RespondExtension(ctx context.Context, playerUID string, id int64, accept bool) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_extension_respond", id, func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error {
		if player.UID != playerUID {
			return economy.ErrNotContractOwner
		}
		res, err := economy.RespondToExtension(c, player, accept)
		if err != nil {
			return err
		}
		if err := tx.UpdateContract(ctx, c); err != nil {
			return err
		}
		b.Apply(player, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.RespondExtension: %w", err)
	}
	return c, nil
}

// Request фиксирует запрос игрока на обмен или освобождение.
func (s *ContractService) Request(ctx context.Context, playerUID string, id int64, kind string) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_request", id, func(ctx context.Context, tx storage.Tx, _ *ledger.Batch, c *models.Contract, player *models.Account) error {
		if player.UID != playerUID {
			return economy.ErrNotContractOwner
		}
		if err := economy.RequestChange(c, player, kind); err != nil {
			return err
		}
		return tx.UpdateContract(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.Request: %w", err)
	}
	return c, nil
}

// CancelRequest отменяет запрос игрока.
func (s *ContractService) CancelRequest(ctx context.Context, playerUID string, id int64) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_cancel_request", id, func(ctx context.Context, tx storage.Tx, _ *ledger.Batch, c *models.Contract, player *models.Account) error {
		if player.UID != playerUID {
			return economy.ErrNotContractOwner
		}
		if err := economy.CancelRequest(c, player); err != nil {
			return err
		}
		return tx.UpdateContract(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.CancelRequest: %w", err)
	}
	return c, nil
}

// Offer создаёт предложение контракта игроку.
func (s *ContractService) Offer(ctx context.Context, o Offer) (*models.Contract, error) {
	const op = "services.contract.Offer"
	username := strings.TrimSpace(o.Username)
	if username == "" {
		return nil, fmt.Errorf("%s: %w", op, economy.ErrInvalidUsername)
	}
	team := strings.TrimSpace(o.TeamName)
	if team == "" {
		return nil, fmt.Errorf("%s: %w", op, economy.ErrInvalidName)
	}
	var out *models.Contract
	err := s.runner.Run(ctx, "contract_offer", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		uid, err := tx.FindAccountUIDByUsername(ctx, username)
		if errors.Is(err, storage.ErrNotFound) {
			return economy.ErrRecipientNotFound
		}
		if err != nil {
			return err
		}
		player, err := b.Lock(ctx, tx, uid)
		if err != nil {
			return err
		}
		c, err := economy.NewOffer(player, team, o.SigningBonus, o.Seasons, o.GuaranteedPay, o.BonusPay, o.Incentives)
		if err != nil {
			return err
		}
		c.CreatedAt = b.Now()
		if err := tx.InsertContract(ctx, &c); err != nil {
			return err
		}
		out = &c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Pay проводит выплату по контракту. Последняя выплата завершает контракт.
func (s *ContractService) Pay(ctx context.Context, id int64, guaranteed, bonus decimal.Decimal) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_pay", id, func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error {
		finished, res, err := economy.PayInstallment(c, player, guaranteed, bonus)
		if err != nil {
			return err
		}
		if err := save(ctx, tx, c, finished); err != nil {
			return err
		}
		b.Apply(player, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.Pay: %w", err)
	}
	return c, nil
}

// Terminate расторгает контракт и удаляет его.
func (s *ContractService) Terminate(ctx context.Context, id int64, reason string) error {
	const op = "services.contract.Terminate"
	if reason != ReasonCut && reason != ReasonVoid {
		return fmt.Errorf("%s: %w", op, economy.ErrInvalidStatus)
	}
	_, err := s.withContract(ctx, "contract_terminate", id, func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error {
		res := economy.Terminate(c, player, reason == ReasonVoid)
		if err := tx.DeleteContract(ctx, c.ID); err != nil {
			return err
		}
		b.Apply(player, res)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OfferExtension предлагает продление.
func (s *ContractService) OfferExtension(ctx context.Context, id int64, years int, guaranteed, bonus decimal.Decimal) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_extension_offer", id, func(ctx context.Context, tx storage.Tx, _ *ledger.Batch, c *models.Contract, _ *models.Account) error {
		if err := economy.OfferExtension(c, years, guaranteed, bonus); err != nil {
			return err
		}
		return tx.UpdateContract(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.OfferExtension: %w", err)
	}
	return c, nil
}

// Resolve обрабатывает запрос игрока на обмен или освобождение.
func (s *ContractService) Resolve(ctx context.Context, id int64, decision string) (*models.Contract, error) {
	c, err := s.withContract(ctx, "contract_resolve", id, func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error {
		remove, res, err := economy.ResolveRequest(c, player, decision)
		if err != nil {
			return err
		}
		if err := save(ctx, tx, c, remove); err != nil {
			return err
		}
		b.Apply(player, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("services.contract.Resolve: %w", err)
	}
	return c, nil
}

// Trade переводит игрока в другую команду.
func (s *ContractService) Trade(ctx context.Context, id int64, team string) (*models.Contract, error) {
	const op = "services.contract.Trade"
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, fmt.Errorf("%s: %w", op, economy.ErrInvalidName)
	}
	c, err := s.withContract(ctx, "contract_trade", id, func(ctx context.Context, tx storage.Tx, b *ledger.Batch, c *models.Contract, player *models.Account) error {
		res, err := economy.TradePlayer(c, team)
		if err != nil {
			return err
		}
		if err := tx.UpdateContract(ctx, c); err != nil {
			return err
		}
		b.Apply(player, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}
