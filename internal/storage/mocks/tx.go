package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// TxMock мок storage.Tx.
type TxMock struct{ mock.Mock }

func (m *TxMock) CreateAccount(ctx context.Context, acc *models.Account) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *TxMock) LockAccount(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *TxMock) LockAccounts(ctx context.Context, uids ...string) (map[string]*models.Account, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Account), args.Error(1)
}

func (m *TxMock) FindAccountUIDByUsername(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *TxMock) UpdateAccount(ctx context.Context, acc *models.Account) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *TxMock) AppendHistory(ctx context.Context, entries ...models.HistoryEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *TxMock) InsertInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *TxMock) InventoryItemForUpdate(ctx context.Context, accountUID string, id int64) (*models.InventoryItem, error) {
	args := m.Called(ctx, accountUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *TxMock) DeleteInventoryItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TxMock) InsertContract(ctx context.Context, c *models.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *TxMock) ContractForUpdate(ctx context.Context, id int64) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *TxMock) UpdateContract(ctx context.Context, c *models.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *TxMock) DeleteContract(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TxMock) HasActiveContract(ctx context.Context, playerUID string) (bool, error) {
	args := m.Called(ctx, playerUID)
	return args.Bool(0), args.Error(1)
}

func (m *TxMock) ShopItem(ctx context.Context, id int64) (*models.ShopItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShopItem), args.Error(1)
}

func (m *TxMock) BPSItem(ctx context.Context, id int64) (*models.BPSItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BPSItem), args.Error(1)
}

func (m *TxMock) Cosmetic(ctx context.Context, id string) (*models.Cosmetic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cosmetic), args.Error(1)
}

func (m *TxMock) Job(ctx context.Context, id int64) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *TxMock) Cosmetics(ctx context.Context) ([]models.Cosmetic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cosmetic), args.Error(1)
}
