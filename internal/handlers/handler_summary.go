package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finly-app/finly_backend/internal/apperrors"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/finly-app/finly_backend/internal/types"
	"github.com/gin-gonic/gin"
)

// summaryHandler handles HTTP requests for summaries and analytics.
type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

// newSummaryHandler creates a new summaryHandler.
func newSummaryHandler(ss portssvc.SummarySvcFacade) *summaryHandler {
	return &summaryHandler{
		summaryService: ss,
	}
}

// registerSummaryRoutes registers routes related to summaries and analytics.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := newSummaryHandler(summaryService)

	rg.GET("/summary", h.getSummary)
	rg.GET("/analytics", h.getAnalytics)
}

// getSummary godoc
// @Summary Get financial summary
// @Description Computes totals, balance, savings rate, trends and breakdowns, optionally for one month
// @Tags summary
// @Produce  json
// @Param   month query string false "Calendar month (YYYY-MM or YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var month *types.Month
	if raw := c.Query("month"); raw != "" {
		parsed, err := types.ParseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format, expected YYYY-MM or YYYY-MM-DD"})
			return
		}
		month = &parsed
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), ownerID, month)
	if err != nil {
		logger.Error("Failed to compute summary in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getAnalytics godoc
// @Summary Get filtered analytics
// @Description Computes the temporal and category series plus per-action sums over an arbitrary filter
// @Tags summary
// @Produce  json
// @Param   search query string false "Case-insensitive substring filter"
// @Param   action query string false "INCOME, EXPENSE, INVESTMENT or todos"
// @Param   from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute analytics"
// @Security BearerAuth
// @Router /analytics [get]
func (h *summaryHandler) getAnalytics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.summaryService.GetAnalytics(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute analytics in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
