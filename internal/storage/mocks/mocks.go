// Package mocks содержит testify-моки хранилища для тестов сервисов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// StoreMock мок хранилища. WithinTx вызывает тело транзакции с Tx и
// возвращает его ошибку, а при успехе CommitErr.
type StoreMock struct {
	mock.Mock
	Tx        *TxMock
	CommitErr error
	Commits   int
}

// NewStoreMock создаёт StoreMock со связанным TxMock.
func NewStoreMock() *StoreMock {
	return &StoreMock{Tx: &TxMock{}}
}

func (m *StoreMock) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	if err := fn(ctx, m.Tx); err != nil {
		return err
	}
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.Commits++
	return nil
}

func (m *StoreMock) Account(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *StoreMock) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *StoreMock) AccountUIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *StoreMock) PendingRenewals(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *StoreMock) History(ctx context.Context, accountUID string, limit int) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, accountUID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryEntry), args.Error(1)
}

func (m *StoreMock) Inventory(ctx context.Context, accountUID string) ([]models.InventoryItem, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *StoreMock) Contracts(ctx context.Context, playerUID string) ([]models.Contract, error) {
	args := m.Called(ctx, playerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *StoreMock) ShopItems(ctx context.Context) ([]models.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShopItem), args.Error(1)
}

func (m *StoreMock) BPSItems(ctx context.Context) ([]models.BPSItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BPSItem), args.Error(1)
}

func (m *StoreMock) Cosmetics(ctx context.Context) ([]models.Cosmetic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cosmetic), args.Error(1)
}

func (m *StoreMock) Jobs(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *StoreMock) CreateShopItem(ctx context.Context, it *models.ShopItem) error {
	return m.Called(ctx, it).Error(0)
}

func (m *StoreMock) CreateBPSItem(ctx context.Context, it *models.BPSItem) error {
	return m.Called(ctx, it).Error(0)
}

func (m *StoreMock) CreateCosmetic(ctx context.Context, it *models.Cosmetic) error {
	return m.Called(ctx, it).Error(0)
}

func (m *StoreMock) CreateJob(ctx context.Context, j *models.Job) error {
	return m.Called(ctx, j).Error(0)
}
