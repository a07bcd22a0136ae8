package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/auth"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, username, password string) (string, error) {
	args := m.Called(ctx, email, username, password)
	return args.String(0), args.Error(1)
}

func (m *ServiceMock) Login(ctx context.Context, username, password string) (string, *models.Account, error) {
	args := m.Called(ctx, username, password)
	acc, _ := args.Get(1).(*models.Account)
	return args.String(0), acc, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func post(t *testing.T, h http.HandlerFunc, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var raw []byte
	switch v := body.(type) {
	case string:
		raw = []byte(v)
	default:
		var err error
		raw, err = json.Marshal(v)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
	rec := httptest.NewRecorder()
	h(rec, req)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return rec, got
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(m *ServiceMock)
		wantCode   int
		wantStatus string
		wantError  string
	}{
		{
			name: "успешный вход",
			body: models.LoginRequest{Username: "alice", Password: "secret1"},
			setup: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "alice", "secret1").
					Return("tok", &models.Account{UID: "uid-1", Username: "alice"}, nil).Once()
			},
			wantCode:   http.StatusOK,
			wantStatus: "OK",
		},
		{
			name:       "битый json",
			body:       "not a json",
			setup:      func(_ *ServiceMock) {},
			wantCode:   http.StatusBadRequest,
			wantStatus: "Error",
			wantError:  "invalid request body",
		},
		{
			name:       "нет пароля",
			body:       models.LoginRequest{Username: "alice"},
			setup:      func(_ *ServiceMock) {},
			wantCode:   http.StatusUnprocessableEntity,
			wantStatus: "Error",
			wantError:  "field Password is a required field",
		},
		{
			name: "неверный пароль",
			body: models.LoginRequest{Username: "alice", Password: "wrong"},
			setup: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "alice", "wrong").Return("", nil, services.ErrInvalidCredentials).Once()
			},
			wantCode:   http.StatusUnauthorized,
			wantStatus: "Error",
			wantError:  "invalid credentials",
		},
		{
			name: "ошибка хранилища",
			body: models.LoginRequest{Username: "alice", Password: "secret1"},
			setup: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "alice", "secret1").Return("", nil, errors.New("db down")).Once()
			},
			wantCode:   http.StatusInternalServerError,
			wantStatus: "Error",
			wantError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(newNoopLogger(), svc)

			rec, got := post(t, h.Login, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "tok", data["token"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name      string
		body      any
		setup     func(m *ServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name: "успешная регистрация",
			body: models.RegisterRequest{Email: "a@b.io", Username: "alice", Password: "secret1"},
			setup: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "a@b.io", "alice", "secret1").Return("uid-1", nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "некорректный email",
			body:      models.RegisterRequest{Email: "nope", Username: "alice", Password: "secret1"},
			setup:     func(_ *ServiceMock) {},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "field Email must be a valid email",
		},
		{
			name: "имя занято",
			body: models.RegisterRequest{Email: "a@b.io", Username: "alice", Password: "secret1"},
			setup: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "a@b.io", "alice", "secret1").Return("", storage.ErrUsernameTaken).Once()
			},
			wantCode:  http.StatusConflict,
			wantError: "username already taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(newNoopLogger(), svc)

			rec, got := post(t, h.Register, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data := got["data"].(map[string]any)
				assert.Equal(t, "uid-1", data["uid"])
			}
			svc.AssertExpectations(t)
		})
	}
}
