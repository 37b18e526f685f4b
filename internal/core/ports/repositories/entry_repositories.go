package repositories

import (
	"context"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
)

// EntryRepositoryFacade defines persistence operations for finance entries.
// Every operation is scoped to the owning user; a scoped update or
// delete that matches zero rows returns apperrors.ErrNotFound so the
// caller can decide how loud to be about it.
type EntryRepositoryFacade interface {
	// SaveEntry inserts a new entry. A violation of the
	// (owner, date, description) uniqueness constraint surfaces as
	// apperrors.ErrDuplicate.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// FindEntryByID retrieves a single entry scoped to its owner.
	FindEntryByID(ctx context.Context, entryID, ownerID string) (*domain.Entry, error)

	// ListEntries retrieves a filtered page of entries ordered by
	// entry_date descending, plus the total number of matching rows.
	ListEntries(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]domain.Entry, int64, error)

	// FindAllEntries retrieves the full filtered entry list without
	// pagination, for export.
	FindAllEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.Entry, error)

	// FindEntriesByDate retrieves the entries dated exactly at the
	// given instant. Used by the recurrence generator's dedup check.
	FindEntriesByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Entry, error)

	// UpdateEntry applies a patch to the entry matching (entryID, ownerID).
	UpdateEntry(ctx context.Context, entryID, ownerID string, patch domain.EntryPatch, updatedAt time.Time) error

	// DeleteEntry removes the entry matching (entryID, ownerID).
	DeleteEntry(ctx context.Context, entryID, ownerID string) error
}
