package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/economy-ledger/internal/migrations"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateAccount создает тестовый счёт с заданным балансом
func (f *TestDataFactory) CreateAccount(t *testing.T, username, balance string) *models.Account {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	acc := &models.Account{
		Username:         username,
		Email:            username + "@example.com",
		PasswordHash:     "hashedpassword",
		Balance:          decimal.RequireFromString(balance),
		CreditScore:      600,
		EmploymentStatus: models.Unemployed,
		MembershipLevel:  models.TierStandard,
		RenewalDate:      now,
		ExpirationDate:   now.AddDate(1, 0, 0),
	}
	require.NoError(t, f.storage.CreateAccount(context.Background(), acc))
	return acc
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyHistoryCount проверяет число записей журнала счёта
func (v *TestVerification) VerifyHistoryCount(t *testing.T, accountUID string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM history WHERE account_uid = $1", accountUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// VerifyBalance проверяет наличный баланс счёта
func (v *TestVerification) VerifyBalance(t *testing.T, accountUID, expected string) {
	var balance decimal.Decimal
	err := v.storage.DB.QueryRow("SELECT balance FROM accounts WHERE uid = $1", accountUID).Scan(&balance)
	require.NoError(t, err)
	require.Truef(t, decimal.RequireFromString(expected).Equal(balance), "want %s, got %s", expected, balance)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "Failed to apply migrations")
	require.NoError(t, CheckDatabaseReady(storage))

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}
