package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// ShopItem возвращает товар магазина по ID.
func (c *conn) ShopItem(ctx context.Context, id int64) (*models.ShopItem, error) {
	const op = "storage.ShopItem"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var it models.ShopItem
	err := c.q.QueryRowContext(ctx, `SELECT id, name, cost, image, type, featured FROM shop_items WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Cost, &it.Image, &it.Type, &it.Featured)
	if err != nil {
		return nil, wrap(op, err)
	}
	return &it, nil
}

// ShopItems возвращает весь каталог магазина.
func (c *conn) ShopItems(ctx context.Context) ([]models.ShopItem, error) {
	const op = "storage.ShopItems"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := c.q.QueryContext(ctx, `SELECT id, name, cost, image, type, featured
			  FROM shop_items ORDER BY featured DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.ShopItem{}
	for rows.Next() {
		var it models.ShopItem
		if err = rows.Scan(&it.ID, &it.Name, &it.Cost, &it.Image, &it.Type, &it.Featured); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateShopItem добавляет товар в каталог.
func (c *conn) CreateShopItem(ctx context.Context, it *models.ShopItem) error {
	const op = "storage.CreateShopItem"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := c.q.QueryRowContext(ctx, `INSERT INTO shop_items (name, cost, image, type, featured)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		it.Name, it.Cost, it.Image, it.Type, it.Featured).Scan(&it.ID)
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// BPSItem возвращает купон по ID.
func (c *conn) BPSItem(ctx context.Context, id int64) (*models.BPSItem, error) {
	const op = "storage.BPSItem"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var it models.BPSItem
	err := c.q.QueryRowContext(ctx, `SELECT id, name, cost, discount_value FROM bps_items WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Cost, &it.DiscountValue)
	if err != nil {
		return nil, wrap(op, err)
	}
	return &it, nil
}

// BPSItems возвращает каталог купонов.
func (c *conn) BPSItems(ctx context.Context) ([]models.BPSItem, error) {
	const op = "storage.BPSItems"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := c.q.QueryContext(ctx, `SELECT id, name, cost, discount_value FROM bps_items ORDER BY cost, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.BPSItem{}
	for rows.Next() {
		var it models.BPSItem
		if err = rows.Scan(&it.ID, &it.Name, &it.Cost, &it.DiscountValue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateBPSItem добавляет купон в каталог.
func (c *conn) CreateBPSItem(ctx context.Context, it *models.BPSItem) error {
	const op = "storage.CreateBPSItem"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := c.q.QueryRowContext(ctx, `INSERT INTO bps_items (name, cost, discount_value)
			  VALUES ($1, $2, $3) RETURNING id`,
		it.Name, it.Cost, it.DiscountValue).Scan(&it.ID)
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// Cosmetic возвращает косметику по ID.
func (c *conn) Cosmetic(ctx context.Context, id string) (*models.Cosmetic, error) {
	const op = "storage.Cosmetic"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var it models.Cosmetic
	err := c.q.QueryRowContext(ctx, `SELECT id, name, price, color FROM cosmetics WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Price, &it.Color)
	if err != nil {
		return nil, wrap(op, err)
	}
	return &it, nil
}

// Cosmetics возвращает каталог косметики.
func (c *conn) Cosmetics(ctx context.Context) ([]models.Cosmetic, error) {
	const op = "storage.Cosmetics"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := c.q.QueryContext(ctx, `SELECT id, name, price, color FROM cosmetics ORDER BY price, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Cosmetic{}
	for rows.Next() {
		var it models.Cosmetic
		if err = rows.Scan(&it.ID, &it.Name, &it.Price, &it.Color); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateCosmetic добавляет косметику в каталог.
func (c *conn) CreateCosmetic(ctx context.Context, it *models.Cosmetic) error {
	const op = "storage.CreateCosmetic"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	_, err := c.q.ExecContext(ctx, `INSERT INTO cosmetics (id, name, price, color) VALUES ($1, $2, $3, $4)`,
		it.ID, it.Name, it.Price, it.Color)
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// Job возвращает работу по ID.
func (c *conn) Job(ctx context.Context, id int64) (*models.Job, error) {
	const op = "storage.Job"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var j models.Job
	err := c.q.QueryRowContext(ctx, `SELECT id, name, pay FROM jobs WHERE id = $1`, id).Scan(&j.ID, &j.Name, &j.Pay)
	if err != nil {
		return nil, wrap(op, err)
	}
	return &j, nil
}

// Jobs возвращает список работ.
func (c *conn) Jobs(ctx context.Context) ([]models.Job, error) {
	const op = "storage.Jobs"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := c.q.QueryContext(ctx, `SELECT id, name, pay FROM jobs ORDER BY pay DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Job{}
	for rows.Next() {
		var j models.Job
		if err = rows.Scan(&j.ID, &j.Name, &j.Pay); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateJob добавляет работу.
func (c *conn) CreateJob(ctx context.Context, j *models.Job) error {
	const op = "storage.CreateJob"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := c.q.QueryRowContext(ctx, `INSERT INTO jobs (name, pay) VALUES ($1, $2) RETURNING id`, j.Name, j.Pay).Scan(&j.ID)
	if err != nil {
		return wrap(op, err)
	}
	return nil
}
