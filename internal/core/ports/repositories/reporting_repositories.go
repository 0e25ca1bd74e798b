package repositories

import (
	"context"
	"time"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries over the ledger.
// All queries are scoped to transactions recorded by the given user.
type ReportingRepository interface {
	// GetTotalsByCategory sums amounts per (category, type) in a date range.
	GetTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error)

	// GetMonthlyTotals sums income and expense per month for a year.
	GetMonthlyTotals(ctx context.Context, userID string, year int) ([]domain.MonthlyTotal, error)

	// GetTotalsByAccount sums income and expense per account the user owns.
	GetTotalsByAccount(ctx context.Context, userID string) ([]domain.AccountTotal, error)

	// GetSummary computes the overall income, expense and net for a user.
	GetSummary(ctx context.Context, userID string) (*domain.Summary, error)
}
