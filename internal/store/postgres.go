// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"time"

	"finance-assistant/internal/common/errors"
	"finance-assistant/internal/models"
)

// DataAccess is the read-only record source the intent handlers
// consume. Implementations must never mutate user data.
type DataAccess interface {
	FetchTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	FetchLoans(ctx context.Context, userID string) ([]models.Loan, error)
	FetchSavingsGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error)
	FetchBudgets(ctx context.Context, userID string) ([]models.Budget, error)
}

// PostgresStore implements DataAccess over a lib/pq connection pool.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FetchTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	const query = `
		SELECT id, user_id, category, description, amount, direction, occurred_at
		FROM transactions
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, errors.NewDataFetchError("querying transactions", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Category, &t.Description, &t.Amount, &t.Direction, &t.OccurredAt); err != nil {
			return nil, errors.NewDataFetchError("scanning transaction row", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDataFetchError("iterating transaction rows", err)
	}
	return out, nil
}

func (s *PostgresStore) FetchLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	const query = `
		SELECT id, user_id, name, outstanding_principal, monthly_payment, annual_rate_percent
		FROM loans
		WHERE user_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.NewDataFetchError("querying loans", err)
	}
	defer rows.Close()

	var out []models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.OutstandingPrincipal, &l.MonthlyPayment, &l.AnnualRatePercent); err != nil {
			return nil, errors.NewDataFetchError("scanning loan row", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDataFetchError("iterating loan rows", err)
	}
	return out, nil
}

func (s *PostgresStore) FetchSavingsGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	const query = `
		SELECT id, user_id, name, target_amount, current_amount, monthly_contribution
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.NewDataFetchError("querying savings goals", err)
	}
	defer rows.Close()

	var out []models.SavingsGoal
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.MonthlyContribution); err != nil {
			return nil, errors.NewDataFetchError("scanning savings goal row", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDataFetchError("iterating savings goal rows", err)
	}
	return out, nil
}

func (s *PostgresStore) FetchBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	const query = `
		SELECT id, user_id, category, monthly_limit
		FROM budgets
		WHERE user_id = $1
		ORDER BY category`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.NewDataFetchError("querying budgets", err)
	}
	defer rows.Close()

	var out []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.MonthlyLimit); err != nil {
			return nil, errors.NewDataFetchError("scanning budget row", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDataFetchError("iterating budget rows", err)
	}
	return out, nil
}
