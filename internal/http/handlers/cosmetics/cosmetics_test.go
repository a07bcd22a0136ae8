package cosmetics

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

type CatalogMock struct {
	mock.Mock
}

func (m *CatalogMock) Cosmetics(ctx context.Context) ([]models.Cosmetic, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.Cosmetic)
	return items, args.Error(1)
}

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Buy(ctx context.Context, uid, cosmeticID string) (*models.Account, error) {
	args := m.Called(ctx, uid, cosmeticID)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *ServiceMock) Equip(ctx context.Context, uid, cosmeticID string) (*models.Account, error) {
	args := m.Called(ctx, uid, cosmeticID)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestHandler_List(t *testing.T) {
	catalog := new(CatalogMock)
	catalog.On("Cosmetics", mock.Anything).Return([]models.Cosmetic{
		{ID: "gold", Name: "Gold Bar", Price: decimal.NewFromInt(5000), Color: "#FFD700"},
	}, nil).Once()
	h := New(handlertest.Logger(), catalog, new(ServiceMock))

	res := handlertest.Do(t, h.List, handlertest.Call{Method: http.MethodGet, UID: "uid-1"})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Field("cosmetics"), 1)
}

func TestHandler_Buy(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setup     func(m *ServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name: "успешная покупка",
			id:   "gold",
			setup: func(m *ServiceMock) {
				m.On("Buy", mock.Anything, "uid-1", "gold").Return(&models.Account{}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "уже куплена",
			id:   "gold",
			setup: func(m *ServiceMock) {
				m.On("Buy", mock.Anything, "uid-1", "gold").Return(nil, economy.ErrCosmeticOwned).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "cosmetic is already owned",
		},
		{
			name:      "пустой id",
			id:        " ",
			setup:     func(_ *ServiceMock) {},
			wantCode:  http.StatusBadRequest,
			wantError: "failed to decode id from url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(handlertest.Logger(), new(CatalogMock), svc)

			res := handlertest.Do(t, h.Buy, handlertest.Call{UID: "uid-1", Params: map[string]string{"id": tt.id}})
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantError, res.Error)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Equip(t *testing.T) {
	tests := []struct {
		name      string
		body      any
		id        string
		acc       *models.Account
		err       error
		wantCode  int
		wantColor any
	}{
		{
			name:      "установка цвета",
			body:      models.EquipRequest{CosmeticID: "gold"},
			id:        "gold",
			acc:       &models.Account{NavbarColor: "#FFD700"},
			wantCode:  http.StatusOK,
			wantColor: "#FFD700",
		},
		{
			name:      "снятие косметики",
			body:      `{}`,
			id:        "",
			acc:       &models.Account{},
			wantCode:  http.StatusOK,
			wantColor: "",
		},
		{
			name:     "не куплена",
			body:     models.EquipRequest{CosmeticID: "ruby"},
			id:       "ruby",
			err:      economy.ErrCosmeticNotOwned,
			wantCode: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Equip", mock.Anything, "uid-1", tt.id).Return(tt.acc, tt.err).Once()
			h := New(handlertest.Logger(), new(CatalogMock), svc)

			res := handlertest.Do(t, h.Equip, handlertest.Call{Body: tt.body, UID: "uid-1"})
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.err == nil {
				assert.Equal(t, tt.wantColor, res.Field("navbar_color"))
			}
			svc.AssertExpectations(t)
		})
	}
}
