package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/dto"
	"github.com/loooooooooogp/Account/internal/middleware"
)

// reportingHandler handles statistics HTTP requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to statistics.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	stats := rg.Group("/stats")
	{
		stats.GET("/categories", h.statsByCategory)
		stats.GET("/monthly", h.statsByMonth)
		stats.GET("/accounts", h.statsByAccount)
		stats.GET("/summary", h.summary)
	}
}

// statsByCategory aggregates the user's transactions per category in a range.
func (h *reportingHandler) statsByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.CategoryStatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for StatsByCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := dto.ParseDate(params.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate: " + err.Error()})
		return
	}
	to, err := dto.ParseDate(params.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate: " + err.Error()})
		return
	}

	rows, err := h.reportingService.StatsByCategory(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to compute category statistics")
		return
	}

	c.JSON(http.StatusOK, dto.CategoryStatsResponse{Rows: rows})
}

// statsByMonth aggregates income and expense per month of a year.
func (h *reportingHandler) statsByMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.MonthlyStatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for StatsByMonth", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.StatsByMonth(c.Request.Context(), userID, params.Year)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to compute monthly statistics")
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyStatsResponse{Year: params.Year, Rows: rows})
}

// statsByAccount aggregates totals for each account the user owns.
func (h *reportingHandler) statsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.reportingService.StatsByAccount(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to compute account statistics")
		return
	}

	c.JSON(http.StatusOK, dto.AccountStatsResponse{Rows: rows})
}

// summary returns the user's overall income, expense and net.
func (h *reportingHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: *summary})
}
