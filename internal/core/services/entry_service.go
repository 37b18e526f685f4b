package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	filterDateLayout = "2006-01-02"

	// actionFilterAll is the sentinel the clients send for "no action filter".
	actionFilterAll = "todos"
)

// EntryService handles business logic related to finance entries.
type EntryService struct {
	entryRepo portsrepo.EntryRepositoryFacade
}

// NewEntryService creates a new EntryService.
func NewEntryService(er portsrepo.EntryRepositoryFacade) portssvc.EntrySvcFacade {
	return &EntryService{
		entryRepo: er,
	}
}

// Ensure EntryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*EntryService)(nil)

// CreateEntry validates and stores a new entry for the owner.
func (s *EntryService) CreateEntry(ctx context.Context, ownerID string, req dto.CreateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateEntryFields(req.Action, req.Description, req.Type, req.Amount.IsNegative(), req.EntryDate.IsZero()); err != nil {
		logger.Warn("Entry validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	entry := domain.Entry{
		EntryID:         uuid.NewString(),
		OwnerID:         ownerID,
		EntryDate:       req.EntryDate,
		Type:            req.Type,
		Action:          req.Action,
		Description:     req.Description,
		PaymentPlatform: req.PaymentPlatform,
		Amount:          req.Amount,
		Detail1:         req.Detail1,
		Detail2:         req.Detail2,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry in repository", slog.String("error", err.Error()), slog.String("description", req.Description))
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	logger.Info("Entry created successfully", slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// GetEntryByID retrieves a single owner-scoped entry.
func (s *EntryService) GetEntryByID(ctx context.Context, entryID, ownerID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns a filtered, paginated entry listing.
func (s *EntryService) ListEntries(ctx context.Context, ownerID string, req dto.ListEntriesRequest) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter, err := buildEntryFilter(req)
	if err != nil {
		logger.Warn("Invalid list filter", slog.String("error", err.Error()))
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	entries, totalItems, err := s.entryRepo.ListEntries(ctx, ownerID, filter, pageSize, offset)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return &dto.ListEntriesResponse{
		Data:        dto.ToEntryResponses(entries),
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// UpdateEntry applies a partial update to the entry matching
// (entryID, ownerID). A missing or foreign entry is a silent no-op.
func (s *EntryService) UpdateEntry(ctx context.Context, entryID, ownerID string, req dto.UpdateEntryRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil
	}
	if err := validateEntryPatch(patch); err != nil {
		logger.Warn("Entry patch validation failed", slog.String("error", err.Error()))
		return err
	}

	err := s.entryRepo.UpdateEntry(ctx, entryID, ownerID, patch, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Missing rows and foreign owners look the same to the caller.
			logger.Warn("Update matched no entry", slog.String("entry_id", entryID))
			return nil
		}
		logger.Error("Failed to update entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to update entry: %w", err)
	}

	logger.Info("Entry updated successfully", slog.String("entry_id", entryID))
	return nil
}

// DeleteEntry removes the entry matching (entryID, ownerID). Same
// silent no-op semantics as UpdateEntry.
func (s *EntryService) DeleteEntry(ctx context.Context, entryID, ownerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.entryRepo.DeleteEntry(ctx, entryID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Delete matched no entry", slog.String("entry_id", entryID))
			return nil
		}
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	logger.Info("Entry deleted successfully", slog.String("entry_id", entryID))
	return nil
}

// DuplicateEntry copies an existing entry under a fresh id and fresh
// audit timestamps. The copy keeps the source's date, so the uniqueness
// constraint on (owner, date, description) may reject it.
func (s *EntryService) DuplicateEntry(ctx context.Context, entryID, ownerID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.entryRepo.FindEntryByID(ctx, entryID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to find entry to duplicate", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to duplicate entry: %w", err)
	}

	now := time.Now()
	copyEntry := *source
	copyEntry.EntryID = uuid.NewString()
	// A verbatim copy would collide with the uniqueness constraint on
	// (owner, date, description), so the copy gets a suffixed description.
	copyEntry.Description = source.Description + " (copy)"
	copyEntry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.entryRepo.SaveEntry(ctx, copyEntry); err != nil {
		logger.Error("Failed to save duplicated entry", slog.String("error", err.Error()), slog.String("source_entry_id", entryID))
		return nil, fmt.Errorf("failed to duplicate entry: %w", err)
	}

	logger.Info("Entry duplicated successfully", slog.String("source_entry_id", entryID), slog.String("entry_id", copyEntry.EntryID))
	return &copyEntry, nil
}

// ExportEntries returns the full filtered list without pagination.
func (s *EntryService) ExportEntries(ctx context.Context, ownerID string, req dto.ListEntriesRequest) ([]domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter, err := buildEntryFilter(req)
	if err != nil {
		logger.Warn("Invalid export filter", slog.String("error", err.Error()))
		return nil, err
	}

	entries, err := s.entryRepo.FindAllEntries(ctx, ownerID, filter)
	if err != nil {
		logger.Error("Failed to export entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to export entries: %w", err)
	}
	return entries, nil
}

// buildEntryFilter translates the user-facing filter parameters into a
// domain filter. Date bounds are inclusive day boundaries; the action
// filter accepts the "todos" sentinel for unfiltered.
func buildEntryFilter(req dto.ListEntriesRequest) (domain.EntryFilter, error) {
	filter := domain.EntryFilter{
		Search: strings.TrimSpace(req.Search),
	}

	action := strings.TrimSpace(req.Action)
	if action != "" && !strings.EqualFold(action, actionFilterAll) {
		candidate := domain.Action(strings.ToUpper(action))
		if !candidate.IsValid() {
			return domain.EntryFilter{}, fmt.Errorf("%w: unknown action filter %q", apperrors.ErrValidation, req.Action)
		}
		filter.Action = candidate
	}

	if req.From != "" {
		from, err := time.Parse(filterDateLayout, req.From)
		if err != nil {
			return domain.EntryFilter{}, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, req.From)
		}
		filter.From = &from
	}

	if req.To != "" {
		to, err := time.Parse(filterDateLayout, req.To)
		if err != nil {
			return domain.EntryFilter{}, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, req.To)
		}
		// Push the bound to the end of the day so the filter is inclusive.
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return domain.EntryFilter{}, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}

	return filter, nil
}

func validateEntryFields(action domain.Action, description, entryType string, negativeAmount, zeroDate bool) error {
	if !action.IsValid() {
		return fmt.Errorf("%w: invalid action %q", apperrors.ErrValidation, action)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(entryType) == "" {
		return fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	}
	if negativeAmount {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if zeroDate {
		return fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	return nil
}

func validateEntryPatch(patch domain.EntryPatch) error {
	if patch.Action != nil && !patch.Action.IsValid() {
		return fmt.Errorf("%w: invalid action %q", apperrors.ErrValidation, *patch.Action)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}
	if patch.Type != nil && strings.TrimSpace(*patch.Type) == "" {
		return fmt.Errorf("%w: type must not be empty", apperrors.ErrValidation)
	}
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if patch.EntryDate != nil && patch.EntryDate.IsZero() {
		return fmt.Errorf("%w: entry date must not be zero", apperrors.ErrValidation)
	}
	return nil
}
