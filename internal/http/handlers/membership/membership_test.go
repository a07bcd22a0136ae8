package membership

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Plans() []economy.Plan {
	return economy.Plans()
}

func (m *ServiceMock) Purchase(ctx context.Context, uid string, tier models.Tier) (*models.Account, error) {
	args := m.Called(ctx, uid, tier)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *ServiceMock) Cancel(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestHandler_Plans(t *testing.T) {
	h := New(handlertest.Logger(), new(ServiceMock))

	res := handlertest.Do(t, h.Plans, handlertest.Call{Method: http.MethodGet, UID: "uid-1"})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Field("plans"), 4)
}

func TestHandler_Purchase(t *testing.T) {
	tests := []struct {
		name      string
		body      any
		setup     func(m *ServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name: "покупка premium",
			body: models.MembershipRequest{Tier: "premium"},
			setup: func(m *ServiceMock) {
				m.On("Purchase", mock.Anything, "uid-1", models.TierPremium).
					Return(&models.Account{MembershipLevel: models.TierPremium}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "неизвестный уровень",
			body:      models.MembershipRequest{Tier: "gold"},
			setup:     func(_ *ServiceMock) {},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "field Tier must be one of [standard basic premium platinum]",
		},
		{
			name: "активен пробный период",
			body: models.MembershipRequest{Tier: "basic"},
			setup: func(m *ServiceMock) {
				m.On("Purchase", mock.Anything, "uid-1", models.TierBasic).Return(nil, economy.ErrTrialActive).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "a free trial is active",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(handlertest.Logger(), svc)

			res := handlertest.Do(t, h.Purchase, handlertest.Call{Body: tt.body, UID: "uid-1"})
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantError, res.Error)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Cancel(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Cancel", mock.Anything, "uid-1").Return(nil, economy.ErrAlreadyOnTier).Once()
	h := New(handlertest.Logger(), svc)

	res := handlertest.Do(t, h.Cancel, handlertest.Call{Method: http.MethodDelete, UID: "uid-1"})
	assert.Equal(t, http.StatusConflict, res.Code)
	svc.AssertExpectations(t)
}
