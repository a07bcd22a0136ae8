// Package metrics регистрирует метрики Prometheus сервиса экономики.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Результаты операций для меток.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics набор счётчиков и гистограмм сервиса.
type Metrics struct {
	Operations      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Notifications   *prometheus.CounterVec
	SweepAccounts   *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by name and result.",
		}, []string{"operation", "result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "notifications_total",
			Help:      "Notification publish and delivery attempts by result.",
		}, []string{"stage", "result"}),
		SweepAccounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "sweep_accounts_total",
			Help:      "Accounts processed by scheduler jobs.",
		}, []string{"job", "result"}),
	}
	reg.MustRegister(m.Operations, m.RequestDuration, m.Notifications, m.SweepAccounts)
	return m
}

// Observe учитывает результат операции. Nil-получатель допустим.
func (m *Metrics) Observe(operation, result string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}

// Notification учитывает попытку публикации или доставки уведомления.
func (m *Metrics) Notification(stage, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(stage, result).Inc()
}

// Sweep учитывает обработку одного счёта задачей планировщика.
func (m *Metrics) Sweep(job, result string) {
	if m == nil {
		return
	}
	m.SweepAccounts.WithLabelValues(job, result).Inc()
}

// Middleware измеряет длительность запросов по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
