package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

const contractColumns = `id, player_uid, player_name, team_name, status, signing_bonus,
	installments_remaining, initial_installments, guaranteed_pay, bonus_pay, incentives,
	paid_guaranteed, paid_bonuses, season_paid_guaranteed, season_paid_bonuses,
	extension_years, extension_guaranteed_pay, extension_bonus_pay,
	trade_pending, release_pending, trade_status, created_at`

func scanContract(row rowScanner) (*models.Contract, error) {
	var (
		c                       models.Contract
		extYears                sql.NullInt64
		extGuaranteed, extBonus decimal.NullDecimal
	)
	if err := row.Scan(&c.ID, &c.PlayerUID, &c.PlayerName, &c.TeamName, &c.Status, &c.SigningBonus,
		&c.InstallmentsRemaining, &c.InitialInstallments, &c.GuaranteedPay, &c.BonusPay, &c.Incentives,
		&c.PaidGuaranteed, &c.PaidBonuses, &c.SeasonPaidGuaranteed, &c.SeasonPaidBonuses,
		&extYears, &extGuaranteed, &extBonus,
		&c.TradePending, &c.ReleasePending, &c.TradeStatus, &c.CreatedAt); err != nil {
		return nil, err
	}
	if extYears.Valid {
		c.Extension = &models.ExtensionTerms{
			Years:         int(extYears.Int64),
			GuaranteedPay: extGuaranteed.Decimal,
			BonusPay:      extBonus.Decimal,
		}
	}
	return &c, nil
}

func extensionArgs(c *models.Contract) (years, guaranteed, bonus any) {
	if c.Extension == nil {
		return nil, nil, nil
	}
	return c.Extension.Years, c.Extension.GuaranteedPay, c.Extension.BonusPay
}

// InsertContract сохраняет контракт и заполняет ID и CreatedAt.
func (c *conn) InsertContract(ctx context.Context, ct *models.Contract) error {
	const op = "storage.InsertContract"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	years, guaranteed, bonus := extensionArgs(ct)
	query := `INSERT INTO contracts (player_uid, player_name, team_name, status, signing_bonus,
			      installments_remaining, initial_installments, guaranteed_pay, bonus_pay, incentives,
			      paid_guaranteed, paid_bonuses, season_paid_guaranteed, season_paid_bonuses,
			      extension_years, extension_guaranteed_pay, extension_bonus_pay,
			      trade_pending, release_pending, trade_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			  RETURNING id, created_at`
	err := c.q.QueryRowContext(ctx, query, ct.PlayerUID, ct.PlayerName, ct.TeamName, ct.Status, ct.SigningBonus,
		ct.InstallmentsRemaining, ct.InitialInstallments, ct.GuaranteedPay, ct.BonusPay, ct.Incentives,
		ct.PaidGuaranteed, ct.PaidBonuses, ct.SeasonPaidGuaranteed, ct.SeasonPaidBonuses,
		years, guaranteed, bonus,
		ct.TradePending, ct.ReleasePending, ct.TradeStatus).Scan(&ct.ID, &ct.CreatedAt)
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// ContractForUpdate возвращает контракт и блокирует его строку.
func (c *conn) ContractForUpdate(ctx context.Context, id int64) (*models.Contract, error) {
	const op = "storage.ContractForUpdate"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 FOR UPDATE`
	ct, err := scanContract(c.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return ct, nil
}

// UpdateContract сохраняет изменяемые поля контракта.
func (c *conn) UpdateContract(ctx context.Context, ct *models.Contract) error {
	const op = "storage.UpdateContract"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	years, guaranteed, bonus := extensionArgs(ct)
	query := `UPDATE contracts SET
			      player_name = $2, team_name = $3, status = $4,
			      installments_remaining = $5, initial_installments = $6,
			      guaranteed_pay = $7, bonus_pay = $8,
			      paid_guaranteed = $9, paid_bonuses = $10,
			      season_paid_guaranteed = $11, season_paid_bonuses = $12,
			      extension_years = $13, extension_guaranteed_pay = $14, extension_bonus_pay = $15,
			      trade_pending = $16, release_pending = $17, trade_status = $18
			  WHERE id = $1`
	result, err := c.q.ExecContext(ctx, query, ct.ID,
		ct.PlayerName, ct.TeamName, ct.Status,
		ct.InstallmentsRemaining, ct.InitialInstallments,
		ct.GuaranteedPay, ct.BonusPay,
		ct.PaidGuaranteed, ct.PaidBonuses,
		ct.SeasonPaidGuaranteed, ct.SeasonPaidBonuses,
		years, guaranteed, bonus,
		ct.TradePending, ct.ReleasePending, ct.TradeStatus)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// DeleteContract удаляет контракт.
func (c *conn) DeleteContract(ctx context.Context, id int64) error {
	const op = "storage.DeleteContract"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	if _, err := c.q.ExecContext(ctx, `DELETE FROM contracts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// HasActiveContract сообщает, есть ли у игрока действующий контракт.
func (c *conn) HasActiveContract(ctx context.Context, playerUID string) (bool, error) {
	const op = "storage.HasActiveContract"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	err := c.q.QueryRowContext(ctx, `SELECT EXISTS (
			      SELECT 1 FROM contracts
			      WHERE player_uid = $1 AND status IN ('active', 'extension-offered')
			  )`, playerUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// Contracts возвращает контракты игрока или все контракты, если playerUID пуст.
func (c *conn) Contracts(ctx context.Context, playerUID string) ([]models.Contract, error) {
	const op = "storage.Contracts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + contractColumns + ` FROM contracts
			  WHERE $1 = '' OR player_uid::text = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := c.q.QueryContext(ctx, query, playerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Contract{}
	for rows.Next() {
		ct, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *ct)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
