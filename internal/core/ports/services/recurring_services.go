package services

import (
	"context"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/dto"
)

// RecurringSvcFacade defines operations for recurring definitions and
// the recurrence generator.
type RecurringSvcFacade interface {
	CreateDefinition(ctx context.Context, ownerID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, error)

	// ListDefinitions returns the owner's definitions in deterministic
	// display order (day of month, then name).
	ListDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error)

	// UpdateDefinition applies a partial update; owner mismatch is a
	// silent no-op.
	UpdateDefinition(ctx context.Context, recurringID, ownerID string, req dto.UpdateRecurringRequest) error

	// DeleteDefinition removes a definition; generated entries are
	// independent rows and are never cascade-deleted.
	DeleteDefinition(ctx context.Context, recurringID, ownerID string) error

	// GenerateForDate materializes every active definition not already
	// represented on the target date into a concrete entry and reports
	// the number of entries durably inserted.
	GenerateForDate(ctx context.Context, ownerID string, target time.Time) (*dto.GenerateResponse, error)
}
