package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
)

// userLimiters хранит отдельный limiter на каждого пользователя.
type userLimiters struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	byKey map[string]*rate.Limiter
}

func (u *userLimiters) get(key string) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.byKey[key]
	if !ok {
		l = rate.NewLimiter(u.rps, u.burst)
		u.byKey[key] = l
	}
	return l
}

// RateLimitMiddleware ограничивает частоту запросов по uid пользователя из контекста,
// для анонимных запросов используется адрес клиента.
func RateLimitMiddleware(log *slog.Logger, rps float64, burst int) func(http.Handler) http.Handler {
	limiters := &userLimiters{
		rps:   rate.Limit(rps),
		burst: burst,
		byKey: make(map[string]*rate.Limiter),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := UserUIDFrom(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}
			if !limiters.get(key).Allow() {
				log.Warn("too many requests", slog.String("key", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
