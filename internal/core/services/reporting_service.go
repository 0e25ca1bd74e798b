package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/middleware"
)

// reportingService handles read-only statistics over a user's own ledger.
// Shared accounts are excluded; the numbers answer "what did I record".
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// StatsByCategory aggregates amounts per category in an inclusive date range.
func (s *reportingService) StatsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date before start date", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetTotalsByCategory(ctx, userID, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute category totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}
	return rows, nil
}

// StatsByMonth aggregates income and expense per month for a year.
func (s *reportingService) StatsByMonth(ctx context.Context, userID string, year int) ([]domain.MonthlyTotal, error) {
	if year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, year)
	}

	rows, err := s.reportingRepo.GetMonthlyTotals(ctx, userID, year)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute monthly totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}
	return rows, nil
}

// StatsByAccount aggregates income and expense per owned account.
func (s *reportingService) StatsByAccount(ctx context.Context, userID string) ([]domain.AccountTotal, error) {
	rows, err := s.reportingRepo.GetTotalsByAccount(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute account totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute account totals: %w", err)
	}
	return rows, nil
}

// Summary computes the user's overall income, expense and net.
func (s *reportingService) Summary(ctx context.Context, userID string) (*domain.Summary, error) {
	summary, err := s.reportingRepo.GetSummary(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	return summary, nil
}
