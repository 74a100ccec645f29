// internal/store/postgres_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "finance-assistant/internal/common/errors"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestFetchTransactions(t *testing.T) {
	s, mock := newMockStore(t)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	occurred := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, user_id, category, description, amount, direction, occurred_at").
		WithArgs("user-1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "description", "amount", "direction", "occurred_at"}).
			AddRow("tx-1", "user-1", "groceries", "weekly shop", 82.40, "debit", occurred).
			AddRow("tx-2", "user-1", "salary", "payroll", 3000.0, "credit", occurred))

	got, err := s.FetchTransactions(context.Background(), "user-1", from, to)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "groceries", got[0].Category)
	assert.Equal(t, 82.40, got[0].Amount)
	assert.Equal(t, "credit", got[1].Direction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchTransactions_QueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, category").
		WillReturnError(assert.AnError)

	_, err := s.FetchTransactions(context.Background(), "user-1", time.Now().AddDate(0, -1, 0), time.Now())

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeDataFetchFailed, stderrors.CodeOf(err))
	assert.True(t, stderrors.IsRetryable(err))
}

func TestFetchLoans(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, name, outstanding_principal").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "outstanding_principal", "monthly_payment", "annual_rate_percent"}).
			AddRow("loan-1", "user-1", "car loan", 12500.0, 310.0, 6.5))

	got, err := s.FetchLoans(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 12500.0, got[0].OutstandingPrincipal)
	assert.InDelta(t, 6.5/100/12, got[0].MonthlyRate(), 1e-12)
}

func TestFetchSavingsGoals(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, name, target_amount").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "target_amount", "current_amount", "monthly_contribution"}).
			AddRow("goal-1", "user-1", "emergency fund", 10000.0, 4200.0, 250.0))

	got, err := s.FetchSavingsGoals(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emergency fund", got[0].Name)
}

func TestFetchBudgets_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, category, monthly_limit").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "monthly_limit"}))

	got, err := s.FetchBudgets(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Empty(t, got)
}
