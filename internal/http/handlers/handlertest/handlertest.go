// Package handlertest содержит помощники для тестов HTTP-обработчиков.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
)

// Logger возвращает логгер, отбрасывающий записи.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Call описывает тестовый запрос к обработчику.
type Call struct {
	Method string
	Target string
	Body   any               // string уходит как есть, остальное кодируется в JSON
	UID    string            // uid пользователя в контексте
	Params map[string]string // параметры пути chi
}

// Result ответ обработчика с разобранным JSON.
type Result struct {
	Code   int
	Status string
	Error  string
	Data   any
}

// Do выполняет запрос и разбирает ответ.
func Do(t *testing.T, h http.HandlerFunc, c Call) Result {
	t.Helper()
	if c.Method == "" {
		c.Method = http.MethodPost
	}
	if c.Target == "" {
		c.Target = "/"
	}

	var body io.Reader
	switch v := c.Body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(c.Method, c.Target, body)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if c.UID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, c.UID)
	}
	if len(c.Params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range c.Params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))

	var got struct {
		Status string `json:"status"`
		Error  string `json:"error"`
		Data   any    `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return Result{Code: rec.Code, Status: got.Status, Error: got.Error, Data: got.Data}
}

// Field достаёт значение из data ответа по ключу.
func (r Result) Field(key string) any {
	m, ok := r.Data.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
