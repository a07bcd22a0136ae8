package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// AppendHistory добавляет записи в журнал. Журнал только дополняется.
func (c *conn) AppendHistory(ctx context.Context, entries ...models.HistoryEntry) error {
	const op = "storage.AppendHistory"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO history (account_uid, message, type, created_at)
			  VALUES ($1, $2, $3, $4)`
	for _, e := range entries {
		if _, err := c.q.ExecContext(ctx, query, e.AccountUID, e.Message, e.Type, e.Timestamp); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// History возвращает последние записи журнала счёта, начиная с новых.
func (c *conn) History(ctx context.Context, accountUID string, limit int) ([]models.HistoryEntry, error) {
	const op = "storage.History"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, account_uid, message, type, created_at
			  FROM history
			  WHERE account_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2`
	rows, err := c.q.QueryContext(ctx, query, accountUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.HistoryEntry, 0, limit)
	for rows.Next() {
		var e models.HistoryEntry
		if err = rows.Scan(&e.ID, &e.AccountUID, &e.Message, &e.Type, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
