package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTotalsByCategory sums amounts per (category, type) over the transactions
// the user recorded in an inclusive date range.
func (r *reportingRepository) GetTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT c.name, t.type, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
			AND t.date BETWEEN $2 AND $3
		GROUP BY c.name, t.type
		ORDER BY total DESC, c.name ASC;
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		var txType string
		if err := rows.Scan(&row.CategoryName, &txType, &row.Total); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		row.Type = domain.TransactionType(txType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}

	return result, nil
}

// GetMonthlyTotals sums income and expense per month of one calendar year.
// Months without transactions do not appear.
func (r *reportingRepository) GetMonthlyTotals(ctx context.Context, userID string, year int) ([]domain.MonthlyTotal, error) {
	query := `
		SELECT to_char(t.date, 'YYYY-MM') AS month,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0) AS total_income,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS total_expense
		FROM transactions t
		WHERE t.user_id = $1
			AND EXTRACT(YEAR FROM t.date) = $2
		GROUP BY month
		ORDER BY month ASC;
	`

	rows, err := r.Pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyTotal{}
	for rows.Next() {
		var row domain.MonthlyTotal
		if err := rows.Scan(&row.Month, &row.TotalIncome, &row.TotalExpense); err != nil {
			return nil, fmt.Errorf("error scanning monthly total row: %w", err)
		}
		row.Net = row.TotalIncome.Sub(row.TotalExpense)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly total rows: %w", err)
	}

	return result, nil
}

// GetTotalsByAccount sums income and expense per account the user owns,
// including accounts without any transactions yet.
func (r *reportingRepository) GetTotalsByAccount(ctx context.Context, userID string) ([]domain.AccountTotal, error) {
	query := `
		SELECT a.account_id, a.name,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0) AS total_income,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS total_expense,
		       a.balance
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.account_id
		WHERE a.owner_user_id = $1
		GROUP BY a.account_id, a.name, a.balance, a.created_at
		ORDER BY a.created_at ASC;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountTotal{}
	for rows.Next() {
		var row domain.AccountTotal
		if err := rows.Scan(&row.AccountID, &row.AccountName, &row.TotalIncome, &row.TotalExpense, &row.Balance); err != nil {
			return nil, fmt.Errorf("error scanning account total row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account total rows: %w", err)
	}

	return result, nil
}

// GetSummary computes the user's overall income, expense and net over every
// transaction they recorded.
func (r *reportingRepository) GetSummary(ctx context.Context, userID string) (*domain.Summary, error) {
	query := `
		SELECT COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0) AS total_income,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS total_expense
		FROM transactions t
		WHERE t.user_id = $1;
	`

	var summary domain.Summary
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&summary.TotalIncome, &summary.TotalExpense); err != nil {
		return nil, fmt.Errorf("error querying summary: %w", err)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	return &summary, nil
}
