package retirement

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/handlertest"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/retirement"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Deposit(ctx context.Context, uid string, amount decimal.Decimal) (*services.Summary, error) {
	args := m.Called(ctx, uid, amount.String())
	s, _ := args.Get(0).(*services.Summary)
	return s, args.Error(1)
}

func (m *ServiceMock) Withdraw(ctx context.Context, uid string, amount decimal.Decimal) (*services.Summary, error) {
	args := m.Called(ctx, uid, amount.String())
	s, _ := args.Get(0).(*services.Summary)
	return s, args.Error(1)
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name      string
		withdraw  bool
		body      string
		setup     func(m *ServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name: "пополнение",
			body: `{"amount":"500"}`,
			setup: func(m *ServiceMock) {
				m.On("Deposit", mock.Anything, "uid-1", "500").Return(&services.Summary{
					RetirementSavings: decimal.NewFromInt(500),
				}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "дневной лимит",
			body: `{"amount":"2000000"}`,
			setup: func(m *ServiceMock) {
				m.On("Deposit", mock.Anything, "uid-1", "2000000").
					Return(nil, fmt.Errorf("%w: $1,000,000 per day", economy.ErrDailyLimit)).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "daily retirement transaction limit reached: $1,000,000 per day",
		},
		{
			name:     "снятие не пенсионером",
			withdraw: true,
			body:     `{"amount":"10"}`,
			setup: func(m *ServiceMock) {
				m.On("Withdraw", mock.Anything, "uid-1", "10").Return(nil, economy.ErrNotRetired).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "only retired users can withdraw",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(handlertest.Logger(), svc)

			fn := h.Deposit
			if tt.withdraw {
				fn = h.Withdraw
			}
			res := handlertest.Do(t, fn, handlertest.Call{Body: tt.body, UID: "uid-1"})
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantError, res.Error)
			svc.AssertExpectations(t)
		})
	}
}
