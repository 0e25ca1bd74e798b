package dto

import (
	"github.com/loooooooooogp/Account/internal/core/domain"
)

// CategoryStatsParams holds the date range for by-category statistics.
type CategoryStatsParams struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
}

// MonthlyStatsParams holds the target year for by-month statistics.
type MonthlyStatsParams struct {
	Year int `form:"year" binding:"required,min=1970,max=9999"`
}

// CategoryStatsResponse is the by-category statistics payload.
type CategoryStatsResponse struct {
	Rows []domain.CategoryTotal `json:"rows"`
}

// MonthlyStatsResponse is the by-month statistics payload.
type MonthlyStatsResponse struct {
	Year int                   `json:"year"`
	Rows []domain.MonthlyTotal `json:"rows"`
}

// AccountStatsResponse is the by-account statistics payload.
type AccountStatsResponse struct {
	Rows []domain.AccountTotal `json:"rows"`
}

// SummaryResponse is the overall summary payload.
type SummaryResponse struct {
	Summary domain.Summary `json:"summary"`
}
