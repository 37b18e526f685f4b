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
	"github.com/finly-app/finly_backend/internal/types"
	"github.com/google/uuid"
)

// RecurringService handles business logic for recurring definitions and
// the recurrence generator.
type RecurringService struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
	entryRepo     portsrepo.EntryRepositoryFacade
}

// NewRecurringService creates a new RecurringService.
func NewRecurringService(rr portsrepo.RecurringRepositoryFacade, er portsrepo.EntryRepositoryFacade) portssvc.RecurringSvcFacade {
	return &RecurringService{
		recurringRepo: rr,
		entryRepo:     er,
	}
}

// Ensure RecurringService implements the portssvc.RecurringSvcFacade interface
var _ portssvc.RecurringSvcFacade = (*RecurringService)(nil)

// CreateDefinition validates and stores a new recurring definition.
func (s *RecurringService) CreateDefinition(ctx context.Context, ownerID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateRecurringFields(req); err != nil {
		logger.Warn("Recurring definition validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	def := domain.RecurringDefinition{
		RecurringID:     uuid.NewString(),
		OwnerID:         ownerID,
		Name:            req.Name,
		Action:          req.Action,
		Type:            req.Type,
		Detail1:         req.Detail1,
		Detail2:         req.Detail2,
		PaymentPlatform: req.PaymentPlatform,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		DayOfMonth:      req.DayOfMonth,
		Active:          active,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.recurringRepo.SaveDefinition(ctx, def); err != nil {
		logger.Error("Failed to save recurring definition", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create recurring definition: %w", err)
	}

	logger.Info("Recurring definition created successfully", slog.String("recurring_id", def.RecurringID))
	return &def, nil
}

// ListDefinitions returns the owner's definitions in deterministic
// display order.
func (s *RecurringService) ListDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error) {
	defs, err := s.recurringRepo.ListDefinitions(ctx, ownerID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list recurring definitions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list recurring definitions: %w", err)
	}
	return defs, nil
}

// UpdateDefinition applies a partial update. A missing or foreign
// definition is a silent no-op.
func (s *RecurringService) UpdateDefinition(ctx context.Context, recurringID, ownerID string, req dto.UpdateRecurringRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil
	}
	if err := validateRecurringPatch(patch); err != nil {
		logger.Warn("Recurring patch validation failed", slog.String("error", err.Error()))
		return err
	}

	err := s.recurringRepo.UpdateDefinition(ctx, recurringID, ownerID, patch, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Update matched no recurring definition", slog.String("recurring_id", recurringID))
			return nil
		}
		logger.Error("Failed to update recurring definition", slog.String("error", err.Error()), slog.String("recurring_id", recurringID))
		return fmt.Errorf("failed to update recurring definition: %w", err)
	}

	logger.Info("Recurring definition updated successfully", slog.String("recurring_id", recurringID))
	return nil
}

// DeleteDefinition removes a definition. Entries it generated are
// independent rows and stay untouched.
func (s *RecurringService) DeleteDefinition(ctx context.Context, recurringID, ownerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.recurringRepo.DeleteDefinition(ctx, recurringID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Delete matched no recurring definition", slog.String("recurring_id", recurringID))
			return nil
		}
		logger.Error("Failed to delete recurring definition", slog.String("error", err.Error()), slog.String("recurring_id", recurringID))
		return fmt.Errorf("failed to delete recurring definition: %w", err)
	}

	logger.Info("Recurring definition deleted successfully", slog.String("recurring_id", recurringID))
	return nil
}

// GenerateForDate materializes one entry per active definition not yet
// represented on the target date.
//
// The dedup key is (owner, exact date, description == definition name);
// amounts and other fields are never compared. The uniqueness
// constraint on that same key closes the read-then-write race between
// concurrent generation runs: a constraint violation during insert is
// counted as already generated, not as a failure. The returned count
// always equals the number of rows durably inserted.
func (s *RecurringService) GenerateForDate(ctx context.Context, ownerID string, target time.Time) (*dto.GenerateResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if target.IsZero() {
		return nil, fmt.Errorf("%w: target date is required", apperrors.ErrValidation)
	}
	// Normalize to midnight UTC so every invocation for the same
	// calendar day compares equal in the dedup check.
	day := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	defs, err := s.recurringRepo.FindActiveDefinitions(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to fetch active recurring definitions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate recurring entries: %w", err)
	}
	if len(defs) == 0 {
		return &dto.GenerateResponse{Generated: 0}, nil
	}

	existing, err := s.entryRepo.FindEntriesByDate(ctx, ownerID, day)
	if err != nil {
		logger.Error("Failed to fetch entries for generation date", slog.String("error", err.Error()), slog.Time("date", day))
		return nil, fmt.Errorf("failed to generate recurring entries: %w", err)
	}
	generated := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		generated[e.Description] = struct{}{}
	}

	month := types.MonthOf(day)
	now := time.Now()
	count := 0
	var firstErr error

	for _, def := range defs {
		if _, ok := generated[def.Name]; ok {
			continue
		}

		// Day numbers past the end of the month clamp to its last day.
		occurrence := month.Day(def.DayOfMonth)

		entry := domain.Entry{
			EntryID:         uuid.NewString(),
			OwnerID:         def.OwnerID,
			EntryDate:       occurrence,
			Type:            def.Type,
			Action:          def.Action,
			Description:     def.Name,
			PaymentPlatform: def.PaymentPlatform,
			Amount:          def.Amount,
			Detail1:         def.Detail1,
			Detail2:         def.Detail2,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}

		if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// A concurrent run got there first. Idempotence over noise.
				logger.Info("Recurring entry already generated", slog.String("name", def.Name), slog.Time("date", occurrence))
				continue
			}
			logger.Error("Failed to insert generated entry", slog.String("error", err.Error()), slog.String("name", def.Name), slog.Time("date", occurrence))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		count++
	}

	if firstErr != nil {
		logger.Warn("Generation completed with errors", slog.Int("generated", count), slog.String("first_error", firstErr.Error()))
		return &dto.GenerateResponse{Generated: count}, fmt.Errorf("generation for owner completed partially (%d inserted): %w", count, firstErr)
	}

	logger.Info("Generation completed", slog.Int("generated", count), slog.Time("date", day))
	return &dto.GenerateResponse{Generated: count}, nil
}

func validateRecurringFields(req dto.CreateRecurringRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !req.Action.IsValid() {
		return fmt.Errorf("%w: invalid action %q", apperrors.ErrValidation, req.Action)
	}
	if strings.TrimSpace(req.Type) == "" {
		return fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if !req.Frequency.IsValid() {
		return fmt.Errorf("%w: invalid frequency %q", apperrors.ErrValidation, req.Frequency)
	}
	if req.DayOfMonth < 1 || req.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month must be between 1 and 31", apperrors.ErrValidation)
	}
	return nil
}

func validateRecurringPatch(patch domain.RecurringPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}
	if patch.Action != nil && !patch.Action.IsValid() {
		return fmt.Errorf("%w: invalid action %q", apperrors.ErrValidation, *patch.Action)
	}
	if patch.Type != nil && strings.TrimSpace(*patch.Type) == "" {
		return fmt.Errorf("%w: type must not be empty", apperrors.ErrValidation)
	}
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if patch.Frequency != nil && !patch.Frequency.IsValid() {
		return fmt.Errorf("%w: invalid frequency %q", apperrors.ErrValidation, *patch.Frequency)
	}
	if patch.DayOfMonth != nil && (*patch.DayOfMonth < 1 || *patch.DayOfMonth > 31) {
		return fmt.Errorf("%w: day of month must be between 1 and 31", apperrors.ErrValidation)
	}
	return nil
}
