package dto

import (
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a new finance entry.
type CreateEntryRequest struct {
	EntryDate       time.Time       `json:"entryDate" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Action          domain.Action   `json:"action" binding:"required,oneof=INCOME EXPENSE INVESTMENT"`
	Description     string          `json:"description" binding:"required"`
	PaymentPlatform string          `json:"paymentPlatform"`
	Amount          decimal.Decimal `json:"amount" binding:"nonneg"`
	Detail1         string          `json:"detail1"` // Optional
	Detail2         string          `json:"detail2"` // Optional
}

// UpdateEntryRequest defines the data allowed for updating an entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateEntryRequest struct {
	EntryDate       *time.Time       `json:"entryDate"`
	Type            *string          `json:"type"`
	Action          *domain.Action   `json:"action" binding:"omitempty,oneof=INCOME EXPENSE INVESTMENT"`
	Description     *string          `json:"description"`
	PaymentPlatform *string          `json:"paymentPlatform"`
	Amount          *decimal.Decimal `json:"amount"`
	Detail1         *string          `json:"detail1"`
	Detail2         *string          `json:"detail2"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateEntryRequest) ToPatch() domain.EntryPatch {
	return domain.EntryPatch{
		EntryDate:       r.EntryDate,
		Type:            r.Type,
		Action:          r.Action,
		Description:     r.Description,
		PaymentPlatform: r.PaymentPlatform,
		Amount:          r.Amount,
		Detail1:         r.Detail1,
		Detail2:         r.Detail2,
	}
}

// ListEntriesRequest carries the user-facing filter and pagination
// parameters for entry listing and export.
type ListEntriesRequest struct {
	Search   string `form:"search"`
	Action   string `form:"action"` // Empty or "todos" means unfiltered
	From     string `form:"from"`   // YYYY-MM-DD, inclusive start of day
	To       string `form:"to"`     // YYYY-MM-DD, inclusive end of day
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"itemsPerPage,default=10"`
}

// EntryResponse defines the data returned for a finance entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	EntryDate       time.Time       `json:"entryDate"`
	Type            string          `json:"type"`
	Action          domain.Action   `json:"action"`
	Description     string          `json:"description"`
	PaymentPlatform string          `json:"paymentPlatform"`
	Amount          decimal.Decimal `json:"amount"`
	Detail1         string          `json:"detail1"`
	Detail2         string          `json:"detail2"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ListEntriesResponse is the paginated entry listing envelope.
type ListEntriesResponse struct {
	Data        []EntryResponse `json:"data"`
	TotalItems  int64           `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		EntryDate:       e.EntryDate,
		Type:            e.Type,
		Action:          e.Action,
		Description:     e.Description,
		PaymentPlatform: e.PaymentPlatform,
		Amount:          e.Amount,
		Detail1:         e.Detail1,
		Detail2:         e.Detail2,
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}
