package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to finance entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: es,
	}
}

// registerEntryRoutes registers routes related to finance entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.createEntry)
		entries.GET("/export", h.exportEntries)
		entries.GET("/:id", h.getEntryByID)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.POST("/:id/duplicate", h.duplicateEntry)
	}
}

// listEntries godoc
// @Summary List finance entries
// @Description Retrieves a filtered, paginated list of the caller's entries
// @Tags entries
// @Produce  json
// @Param   search query string false "Case-insensitive substring across action, description, platform and details"
// @Param   action query string false "INCOME, EXPENSE, INVESTMENT or todos"
// @Param   from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   page query int false "1-based page number" default(1)
// @Param   itemsPerPage query int false "Page size" default(10)
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createEntry godoc
// @Summary Create a finance entry
// @Description Adds a new entry owned by the caller
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Entry already exists for that date and description"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "An entry with that date and description already exists"})
		} else {
			logger.Error("Failed to create entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntryByID godoc
// @Summary Get a finance entry
// @Description Retrieves a single entry owned by the caller
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *entryHandler) getEntryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("id")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a finance entry
// @Description Applies a partial update to an entry owned by the caller; unknown ids are a no-op
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Security BearerAuth
// @Router /entries/{id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.entryService.UpdateEntry(c.Request.Context(), entryID, ownerID, req); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteEntry godoc
// @Summary Delete a finance entry
// @Description Deletes an entry owned by the caller; unknown ids are a no-op
// @Tags entries
// @Param   id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("id")

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID, ownerID); err != nil {
		logger.Error("Failed to delete entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

// duplicateEntry godoc
// @Summary Duplicate a finance entry
// @Description Copies an existing entry under a fresh id with a suffixed description
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 201 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Duplicate already exists"
// @Failure 500 {object} map[string]string "Failed to duplicate entry"
// @Security BearerAuth
// @Router /entries/{id}/duplicate [post]
func (h *entryHandler) duplicateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("id")

	entry, err := h.entryService.DuplicateEntry(c.Request.Context(), entryID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A copy of that entry already exists"})
		} else {
			logger.Error("Failed to duplicate entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to duplicate entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// exportEntries godoc
// @Summary Export finance entries as CSV
// @Description Streams the caller's filtered entries as a CSV download
// @Tags entries
// @Produce  text/csv
// @Param   search query string false "Case-insensitive substring filter"
// @Param   action query string false "INCOME, EXPENSE, INVESTMENT or todos"
// @Param   from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to export entries"
// @Security BearerAuth
// @Router /entries/export [get]
func (h *entryHandler) exportEntries(c *gin.Context) {
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

	entries, err := h.entryService.ExportEntries(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to export entries in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export entries"})
		return
	}

	filename := fmt.Sprintf("entries_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"date", "type", "action", "description", "paymentPlatform", "amount", "detail1", "detail2"})
	for _, e := range entries {
		record := []string{
			e.EntryDate.Format("2006-01-02"),
			e.Type,
			string(e.Action),
			e.Description,
			e.PaymentPlatform,
			e.Amount.String(),
			e.Detail1,
			e.Detail2,
		}
		if err := w.Write(record); err != nil {
			logger.Error("Failed to write CSV record", slog.String("error", err.Error()))
			return
		}
	}
	w.Flush()
}
