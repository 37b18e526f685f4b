package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles HTTP requests related to recurring definitions.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

// newRecurringHandler creates a new recurringHandler.
func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{
		recurringService: rs,
	}
}

// registerRecurringRoutes registers routes related to recurring definitions.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring")
	{
		recurring.GET("", h.listDefinitions)
		recurring.POST("", h.createDefinition)
		recurring.PUT("/:id", h.updateDefinition)
		recurring.DELETE("/:id", h.deleteDefinition)
		recurring.POST("/generate", h.generate)
	}
}

// listDefinitions godoc
// @Summary List recurring definitions
// @Description Retrieves the caller's recurring definitions ordered by day of month, then name
// @Tags recurring
// @Produce  json
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list recurring definitions"
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listDefinitions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	defs, err := h.recurringService.ListDefinitions(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list recurring definitions in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring definitions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringResponses(defs))
}

// createDefinition godoc
// @Summary Create a recurring definition
// @Description Adds a new recurring definition owned by the caller
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   definition body dto.CreateRecurringRequest true "Definition details"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create recurring definition"
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createDefinition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDefinition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	def, err := h.recurringService.CreateDefinition(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create recurring definition in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recurring definition"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringResponse(def))
}

// updateDefinition godoc
// @Summary Update a recurring definition
// @Description Applies a partial update; unknown ids are a no-op
// @Tags recurring
// @Accept  json
// @Param   id path string true "Recurring Definition ID"
// @Param   definition body dto.UpdateRecurringRequest true "Fields to update"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update recurring definition"
// @Security BearerAuth
// @Router /recurring/{id} [put]
func (h *recurringHandler) updateDefinition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	recurringID := c.Param("id")

	var req dto.UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDefinition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.recurringService.UpdateDefinition(c.Request.Context(), recurringID, ownerID, req); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update recurring definition in service", slog.String("error", err.Error()), slog.String("recurring_id", recurringID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recurring definition"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteDefinition godoc
// @Summary Delete a recurring definition
// @Description Deletes a definition; previously generated entries stay untouched
// @Tags recurring
// @Param   id path string true "Recurring Definition ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to delete recurring definition"
// @Security BearerAuth
// @Router /recurring/{id} [delete]
func (h *recurringHandler) deleteDefinition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	recurringID := c.Param("id")

	if err := h.recurringService.DeleteDefinition(c.Request.Context(), recurringID, ownerID); err != nil {
		logger.Error("Failed to delete recurring definition in service", slog.String("error", err.Error()), slog.String("recurring_id", recurringID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recurring definition"})
		return
	}

	c.Status(http.StatusNoContent)
}

// generate godoc
// @Summary Generate entries for a date
// @Description Materializes every active recurring definition not yet represented on the target date
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateRequest true "Target date (YYYY-MM-DD)"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate entries"
// @Security BearerAuth
// @Router /recurring/generate [post]
func (h *recurringHandler) generate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Generate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	target, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	resp, err := h.recurringService.GenerateForDate(c.Request.Context(), ownerID, target)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate recurring entries in service", slog.String("error", err.Error()), slog.String("date", req.Date))
		// A partial run still reports how far it got.
		if resp != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate some entries", "generated": resp.Generated})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
