package account

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/account"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Profile(ctx context.Context, uid string) (*services.Profile, error) {
	args := m.Called(ctx, uid)
	p, _ := args.Get(0).(*services.Profile)
	return p, args.Error(1)
}

func (m *ServiceMock) RequestRenewal(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *ServiceMock) History(ctx context.Context, uid string, limit int) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, uid, limit)
	e, _ := args.Get(0).([]models.HistoryEntry)
	return e, args.Error(1)
}

func TestHandler_Me(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m *ServiceMock)
		wantCode int
	}{
		{
			name: "профиль найден",
			setup: func(m *ServiceMock) {
				m.On("Profile", mock.Anything, "uid-1").Return(&services.Profile{
					Account: &models.Account{UID: "uid-1", Username: "alice", Balance: decimal.NewFromInt(100)},
				}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "счёт не найден",
			setup: func(m *ServiceMock) {
				m.On("Profile", mock.Anything, "uid-1").Return(nil, storage.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(handlertest.Logger(), svc)

			res := handlertest.Do(t, h.Me, handlertest.Call{Method: http.MethodGet, UID: "uid-1"})
			assert.Equal(t, tt.wantCode, res.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_RequestRenewal(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("RequestRenewal", mock.Anything, "uid-1").Return(economy.ErrRenewalPending).Once()
	h := New(handlertest.Logger(), svc)

	res := handlertest.Do(t, h.RequestRenewal, handlertest.Call{UID: "uid-1"})
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "ID renewal is pending approval", res.Error)
	svc.AssertExpectations(t)
}

func TestHandler_History(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantLimit int
		err       error
		wantCode  int
	}{
		{name: "лимит из запроса", target: "/history?limit=50", wantLimit: 50, wantCode: http.StatusOK},
		{name: "лимит по умолчанию", target: "/history", wantLimit: 0, wantCode: http.StatusOK},
		{name: "ошибка хранилища", target: "/history", wantLimit: 0, err: errors.New("db"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("History", mock.Anything, "uid-1", tt.wantLimit).
				Return([]models.HistoryEntry{{Type: models.HistoryAdmin, Message: "Admin gave $5"}}, tt.err).Once()
			h := New(handlertest.Logger(), svc)

			res := handlertest.Do(t, h.History, handlertest.Call{Method: http.MethodGet, Target: tt.target, UID: "uid-1"})
			assert.Equal(t, tt.wantCode, res.Code)
			svc.AssertExpectations(t)
		})
	}
}
