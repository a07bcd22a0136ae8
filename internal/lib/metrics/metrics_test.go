package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe("transfer", ResultOK)
	m.Observe("transfer", ResultOK)
	m.Observe("transfer", ResultRejected)
	m.Notification("publish", ResultError)
	m.Sweep("loans", ResultOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("transfer", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("transfer", ResultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("publish", ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SweepAccounts.WithLabelValues("loans", ResultOK)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("transfer", ResultOK)
		m.Notification("publish", ResultOK)
		m.Sweep("loans", ResultOK)
	})
}

func TestMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/inventory/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/inventory/42", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() != "ledger_http_request_duration_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["route"] == "/inventory/{id}" && labels["status"] == "418" {
				found = true
			}
		}
	}
	assert.True(t, found)
}
