package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// NotifierMock мок отправителя уведомлений.
type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Notify(ctx context.Context, message string) {
	m.Called(ctx, message)
}
