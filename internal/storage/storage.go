// Package storage описывает контракт хранилища экономики: транзакции с
// блокировкой счетов, журнал операций, инвентарь, контракты и справочники.
// Реализация на PostgreSQL находится в пакете repository.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUsernameTaken = errors.New("username already taken")
)

// Tx операции, выполняемые внутри одной транзакции. Методы Lock* блокируют
// строки счетов до завершения транзакции.
type Tx interface {
	CreateAccount(ctx context.Context, acc *models.Account) error
	LockAccount(ctx context.Context, uid string) (*models.Account, error)
	// LockAccounts блокирует несколько счетов в порядке возрастания uid.
	LockAccounts(ctx context.Context, uids ...string) (map[string]*models.Account, error)
	FindAccountUIDByUsername(ctx context.Context, username string) (string, error)
	UpdateAccount(ctx context.Context, acc *models.Account) error
	AppendHistory(ctx context.Context, entries ...models.HistoryEntry) error

	InsertInventoryItem(ctx context.Context, item *models.InventoryItem) error
	InventoryItemForUpdate(ctx context.Context, accountUID string, id int64) (*models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int64) error

	InsertContract(ctx context.Context, c *models.Contract) error
	ContractForUpdate(ctx context.Context, id int64) (*models.Contract, error)
	UpdateContract(ctx context.Context, c *models.Contract) error
	DeleteContract(ctx context.Context, id int64) error
	HasActiveContract(ctx context.Context, playerUID string) (bool, error)

	ShopItem(ctx context.Context, id int64) (*models.ShopItem, error)
	BPSItem(ctx context.Context, id int64) (*models.BPSItem, error)
	Cosmetic(ctx context.Context, id string) (*models.Cosmetic, error)
	Job(ctx context.Context, id int64) (*models.Job, error)
	Cosmetics(ctx context.Context) ([]models.Cosmetic, error)
}

// TxFunc тело транзакции. Возврат ошибки откатывает транзакцию.
type TxFunc func(ctx context.Context, tx Tx) error
