package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

const inventoryColumns = `id, account_uid, name, kind, value, is_free, discount_value, original_id, acquired_at`

func scanInventoryItem(row rowScanner) (*models.InventoryItem, error) {
	var it models.InventoryItem
	if err := row.Scan(&it.ID, &it.AccountUID, &it.Name, &it.Kind, &it.Value,
		&it.IsFree, &it.DiscountValue, &it.OriginalID, &it.AcquiredAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// InsertInventoryItem сохраняет предмет и заполняет его ID.
func (c *conn) InsertInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	const op = "storage.InsertInventoryItem"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO inventory (account_uid, name, kind, value, is_free, discount_value, original_id, acquired_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	err := c.q.QueryRowContext(ctx, query, item.AccountUID, item.Name, item.Kind, item.Value,
		item.IsFree, item.DiscountValue, item.OriginalID, item.AcquiredAt).Scan(&item.ID)
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// InventoryItemForUpdate возвращает предмет владельца и блокирует его строку.
func (c *conn) InventoryItemForUpdate(ctx context.Context, accountUID string, id int64) (*models.InventoryItem, error) {
	const op = "storage.InventoryItemForUpdate"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory
			  WHERE id = $1 AND account_uid = $2
			  FOR UPDATE`
	it, err := scanInventoryItem(c.q.QueryRowContext(ctx, query, id, accountUID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return it, nil
}

// DeleteInventoryItem удаляет предмет.
func (c *conn) DeleteInventoryItem(ctx context.Context, id int64) error {
	const op = "storage.DeleteInventoryItem"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := c.q.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
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

// Inventory возвращает предметы счёта, начиная с новых.
func (c *conn) Inventory(ctx context.Context, accountUID string) ([]models.InventoryItem, error) {
	const op = "storage.Inventory"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory
			  WHERE account_uid = $1
			  ORDER BY acquired_at DESC, id DESC`
	rows, err := c.q.QueryContext(ctx, query, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.InventoryItem{}
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
