package services

import (
	"context"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/dto"
)

// EntrySvcFacade defines operations for managing finance entries.
// The ownerID is the opaque user identifier supplied by the
// authentication layer; the core only ever scopes by it.
type EntrySvcFacade interface {
	// CreateEntry validates and stores a new entry for the owner.
	CreateEntry(ctx context.Context, ownerID string, req dto.CreateEntryRequest) (*domain.Entry, error)

	// GetEntryByID retrieves a single owner-scoped entry.
	GetEntryByID(ctx context.Context, entryID, ownerID string) (*domain.Entry, error)

	// ListEntries returns a filtered, paginated entry listing.
	ListEntries(ctx context.Context, ownerID string, req dto.ListEntriesRequest) (*dto.ListEntriesResponse, error)

	// UpdateEntry applies a partial update. An entry that does not
	// exist or belongs to another owner is a silent no-op.
	UpdateEntry(ctx context.Context, entryID, ownerID string, req dto.UpdateEntryRequest) error

	// DeleteEntry removes an entry. Same no-op semantics as UpdateEntry.
	DeleteEntry(ctx context.Context, entryID, ownerID string) error

	// DuplicateEntry copies an existing entry under a fresh id with
	// fresh audit timestamps.
	DuplicateEntry(ctx context.Context, entryID, ownerID string) (*domain.Entry, error)

	// ExportEntries returns the full filtered list without pagination.
	ExportEntries(ctx context.Context, ownerID string, req dto.ListEntriesRequest) ([]domain.Entry, error)
}
