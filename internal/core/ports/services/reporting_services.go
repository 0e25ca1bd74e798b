package services

import (
	"context"
	"time"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// ReportingSvcFacade defines read-only statistics over a user's own ledger.
type ReportingSvcFacade interface {
	// StatsByCategory aggregates amounts per category in a date range.
	StatsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error)

	// StatsByMonth aggregates income and expense per month for a year.
	StatsByMonth(ctx context.Context, userID string, year int) ([]domain.MonthlyTotal, error)

	// StatsByAccount aggregates income and expense per owned account.
	StatsByAccount(ctx context.Context, userID string) ([]domain.AccountTotal, error)

	// Summary computes the user's overall income, expense and net.
	Summary(ctx context.Context, userID string) (*domain.Summary, error)
}
