package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/readiness-entitlements/internal/migrations"
)

// setupTestDatabase поднимает postgres в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, path))
	return storage
}

// TestDataFactory создаёт тестовые записи напрямую в базе.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создаёт новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// PaymentRow описывает строку payment_records; nil поля пишутся как NULL.
type PaymentRow struct {
	UserID        string
	Tier          *string
	PlanType      *string
	Status        *string
	AccessGranted *bool
	UpdatedAt     *time.Time
	CreatedAt     *time.Time
}

// CreatePayment вставляет платёжную запись и возвращает её id.
func (f *TestDataFactory) CreatePayment(t *testing.T, row PaymentRow) string {
	t.Helper()
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO payment_records
		(user_id, tier, plan_type, payment_status, access_granted, updated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		row.UserID, row.Tier, row.PlanType, row.Status, row.AccessGranted, row.UpdatedAt, row.CreatedAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateProfile вставляет профиль пользователя.
func (f *TestDataFactory) CreateProfile(t *testing.T, userID, status string, tier *string, trialEndsAt *time.Time) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO user_profiles
		(user_id, subscription_status, subscription_tier, trial_ends_at)
		VALUES ($1, $2, $3, $4)`,
		userID, status, tier, trialEndsAt)
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
