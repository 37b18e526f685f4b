package repositories

import (
	"context"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
)

// SummaryRepositoryFacade defines the grouped aggregation queries the
// summary and analytics services are built on. Grouped queries exclude
// groups whose summed amount is exactly zero.
type SummaryRepositoryFacade interface {
	// GetActionTotals returns sum and count per action, optionally
	// restricted to the half-open interval [from, to).
	GetActionTotals(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.ActionTotal, error)

	// GetMonthlyActionTotals returns per-month, per-action sums for all
	// entries dated at or after since, ordered by month ascending.
	GetMonthlyActionTotals(ctx context.Context, ownerID string, since time.Time) ([]domain.ActionMonthTotal, error)

	// GetCategoryTotals returns the top-limit category groups for one
	// action by summed amount descending, grouped by the entry type
	// label, plus whether more non-zero groups exist beyond the limit.
	GetCategoryTotals(ctx context.Context, ownerID string, action domain.Action, from, to *time.Time, limit int) ([]domain.CategoryTotal, bool, error)

	// GetInvestmentTotals returns the top-limit investment groups by
	// summed amount descending, grouped by description, plus whether
	// more non-zero groups exist beyond the limit.
	GetInvestmentTotals(ctx context.Context, ownerID string, from, to *time.Time, limit int) ([]domain.CategoryTotal, bool, error)

	// GetFilteredMonthlyTotals returns per-month, per-action sums over
	// an arbitrary entry filter, ordered by month ascending.
	GetFilteredMonthlyTotals(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.ActionMonthTotal, error)

	// GetFilteredCategoryTotals returns per-category, per-action sums
	// over an arbitrary entry filter, ordered by total descending.
	GetFilteredCategoryTotals(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.CategoryActionTotal, error)

	// GetFilteredActionSums returns the summed amount per action over
	// an arbitrary entry filter, excluding zero sums.
	GetFilteredActionSums(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.ActionTotal, error)
}
