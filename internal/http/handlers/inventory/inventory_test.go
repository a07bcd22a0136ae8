package inventory

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, uid string) ([]models.InventoryItem, error) {
	args := m.Called(ctx, uid)
	items, _ := args.Get(0).([]models.InventoryItem)
	return items, args.Error(1)
}

func (m *ServiceMock) Use(ctx context.Context, uid string, itemID int64) (*models.Account, error) {
	args := m.Called(ctx, uid, itemID)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *ServiceMock) Sell(ctx context.Context, uid string, itemID int64) (*models.Account, error) {
	args := m.Called(ctx, uid, itemID)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestHandler_List(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything, "uid-1").Return([]models.InventoryItem{{ID: 1, Name: "Racket"}}, nil).Once()
	h := New(handlertest.Logger(), svc)

	res := handlertest.Do(t, h.List, handlertest.Call{Method: http.MethodGet, UID: "uid-1"})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Field("items"), 1)
	svc.AssertExpectations(t)
}

func TestHandler_UseAndSell(t *testing.T) {
	tests := []struct {
		name      string
		action    string
		id        string
		setup     func(m *ServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name:   "использование купона",
			action: "use",
			id:     "5",
			setup: func(m *ServiceMock) {
				m.On("Use", mock.Anything, "uid-1", int64(5)).
					Return(&models.Account{ActiveDiscount: decimal.RequireFromString("0.2")}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "скидка уже активна",
			action: "use",
			id:     "5",
			setup: func(m *ServiceMock) {
				m.On("Use", mock.Anything, "uid-1", int64(5)).Return(nil, economy.ErrDiscountActive).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "a discount is already active",
		},
		{
			name:   "продажа бесплатного предмета",
			action: "sell",
			id:     "6",
			setup: func(m *ServiceMock) {
				m.On("Sell", mock.Anything, "uid-1", int64(6)).Return(nil, economy.ErrItemUnsellable).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "item cannot be sold",
		},
		{
			name:      "некорректный id",
			action:    "sell",
			id:        "abc",
			setup:     func(_ *ServiceMock) {},
			wantCode:  http.StatusBadRequest,
			wantError: "failed to decode id from url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(handlertest.Logger(), svc)

			fn := h.Use
			if tt.action == "sell" {
				fn = h.Sell
			}
			res := handlertest.Do(t, fn, handlertest.Call{UID: "uid-1", Params: map[string]string{"id": tt.id}})
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantError, res.Error)
			svc.AssertExpectations(t)
		})
	}
}
