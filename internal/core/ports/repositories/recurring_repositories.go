package repositories

import (
	"context"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
)

// RecurringRepositoryFacade defines persistence operations for
// recurring definitions, all scoped to the owning user.
type RecurringRepositoryFacade interface {
	SaveDefinition(ctx context.Context, def domain.RecurringDefinition) error

	FindDefinitionByID(ctx context.Context, recurringID, ownerID string) (*domain.RecurringDefinition, error)

	// ListDefinitions returns the owner's definitions ordered by
	// day_of_month ascending, then name ascending.
	ListDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error)

	// FindActiveDefinitions returns the owner's active definitions only.
	FindActiveDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error)

	UpdateDefinition(ctx context.Context, recurringID, ownerID string, patch domain.RecurringPatch, updatedAt time.Time) error

	DeleteDefinition(ctx context.Context, recurringID, ownerID string) error
}
