package services

import (
	"context"

	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/types"
)

// SummarySvcFacade defines the aggregation operations exposed to the
// presentation layer.
type SummarySvcFacade interface {
	// GetSummary computes the owner's financial summary, optionally
	// restricted to one calendar month. Monthly trends always cover the
	// trailing six months relative to now, regardless of the filter.
	GetSummary(ctx context.Context, ownerID string, month *types.Month) (*dto.SummaryResponse, error)

	// GetAnalytics computes the filtered temporal and category series.
	GetAnalytics(ctx context.Context, ownerID string, req dto.ListEntriesRequest) (*dto.AnalyticsResponse, error)
}
