// Package request разбирает параметры пути и строки запроса.
package request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// ErrInvalidID параметр пути не является положительным числом.
var ErrInvalidID = errors.New("invalid id")

// ID читает числовой параметр пути name.
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// IntQuery читает целочисленный параметр строки запроса. Отсутствующий или
// некорректный параметр даёт 0.
func IntQuery(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
