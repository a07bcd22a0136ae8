package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage/mocks"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setup(now time.Time) (*SchedulerService, *mocks.StoreMock, *mocks.NotifierMock, *metrics.Metrics) {
	store := mocks.NewStoreMock()
	notifier := &mocks.NotifierMock{}
	m := metrics.New(prometheus.NewRegistry())
	runner := ledger.NewRunner(store, notifier, m, newNoopLogger()).WithClock(func() time.Time { return now })
	return NewSchedulerService(runner, store, m, newNoopLogger()), store, notifier, m
}

func jobByName(name string) Job {
	for _, j := range Jobs(time.Hour, time.Hour, time.Hour) {
		if j.Name == name {
			return j
		}
	}
	panic("unknown job " + name)
}

func TestSweep_LoanContinuesAfterFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s, store, _, m := setup(now)

	start := now.Add(-72 * time.Hour)
	deadline := now.AddDate(0, 0, 5)
	debtor := &models.Account{
		UID: "uid-b", Username: "bob", ActiveLoan: decimal.NewFromInt(1000),
		LoanStartDate: &start, LastInterestApplied: &start, LoanDeadline: &deadline,
	}
	idle := &models.Account{UID: "uid-c", Username: "carol"}

	store.On("AccountUIDs", mock.Anything).Return([]string{"uid-a", "uid-b", "uid-c"}, nil).Once()
	store.Tx.On("LockAccount", mock.Anything, "uid-a").Return(nil, errors.New("connection reset")).Once()
	store.Tx.On("LockAccount", mock.Anything, "uid-b").Return(debtor, nil).Once()
	store.Tx.On("LockAccount", mock.Anything, "uid-c").Return(idle, nil).Once()
	store.Tx.On("UpdateAccount", mock.Anything, debtor).Return(nil).Once()

	stats := s.Sweep(context.Background(), jobByName(JobLoan))

	assert.Equal(t, SweepStats{Total: 3, Changed: 1, Failed: 1}, stats)
	assert.True(t, debtor.ActiveLoan.Equal(decimal.RequireFromString("1157.63")))
	store.Tx.AssertNotCalled(t, "UpdateAccount", mock.Anything, idle)
	store.Tx.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SweepAccounts.WithLabelValues(JobLoan, metrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SweepAccounts.WithLabelValues(JobLoan, metrics.ResultError)))
}

func TestSweep_MembershipBillingNotifies(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s, store, notifier, _ := setup(now)

	paid := now.AddDate(0, -1, 0)
	acc := &models.Account{
		UID: "uid-a", Username: "alice", Balance: decimal.NewFromInt(50_000),
		MembershipLevel: models.TierBasic, MembershipLastPaid: &paid, ShopOrderCount: 2,
	}
	store.On("AccountUIDs", mock.Anything).Return([]string{"uid-a"}, nil).Once()
	store.Tx.On("LockAccount", mock.Anything, "uid-a").Return(acc, nil).Once()
	store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Once()
	store.Tx.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e []models.HistoryEntry) bool {
		return e[0].Message == "BASIC membership cancelled: insufficient funds"
	})).Return(nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return msg == "⚠️ *Membership Cancelled:* alice could not renew BASIC membership due to insufficient funds. Downgraded to Standard."
	})).Return().Once()

	stats := s.Sweep(context.Background(), jobByName(JobMembership))

	assert.Equal(t, 1, stats.Changed)
	assert.Equal(t, models.TierStandard, acc.MembershipLevel)
	assert.Zero(t, acc.ShopOrderCount)
	notifier.AssertExpectations(t)
}

func TestSweep_RetirementOnlyOnFirstDay(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		wantChanged int
	}{
		{name: "первое число", now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), wantChanged: 1},
		{name: "середина месяца", now: time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC), wantChanged: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, _, _ := setup(tt.now)
			acc := &models.Account{UID: "uid-a", RetirementSavings: decimal.NewFromInt(1000), MembershipLevel: models.TierStandard}
			store.On("AccountUIDs", mock.Anything).Return([]string{"uid-a"}, nil).Once()
			store.Tx.On("LockAccount", mock.Anything, "uid-a").Return(acc, nil).Once()
			store.Tx.On("UpdateAccount", mock.Anything, acc).Return(nil).Maybe()
			store.Tx.On("AppendHistory", mock.Anything, mock.Anything).Return(nil).Maybe()

			stats := s.Sweep(context.Background(), jobByName(JobRetirement))
			assert.Equal(t, tt.wantChanged, stats.Changed)
		})
	}
}

func TestSweep_ListFailure(t *testing.T) {
	s, store, _, m := setup(time.Now())
	store.On("AccountUIDs", mock.Anything).Return(nil, errors.New("db down")).Once()

	stats := s.Sweep(context.Background(), jobByName(JobLoan))
	assert.Zero(t, stats.Total)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SweepAccounts.WithLabelValues(JobLoan, metrics.ResultError)))
}

func TestStart_StopsOnCancel(t *testing.T) {
	s, store, _, _ := setup(time.Now())
	store.On("AccountUIDs", mock.Anything).Return([]string{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx, Job{Name: "noop", Interval: 10 * time.Millisecond, Rule: jobByName(JobLoan).Rule})
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	require.GreaterOrEqual(t, len(store.Calls), 2)
}
