package dto

import (
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines the data needed to create a recurring definition.
type CreateRecurringRequest struct {
	Name            string           `json:"name" binding:"required"`
	Action          domain.Action    `json:"action" binding:"required,oneof=INCOME EXPENSE INVESTMENT"`
	Type            string           `json:"type" binding:"required"`
	Detail1         string           `json:"detail1"`
	Detail2         string           `json:"detail2"`
	PaymentPlatform string           `json:"paymentPlatform"`
	Amount          decimal.Decimal  `json:"amount" binding:"nonneg"`
	Frequency       domain.Frequency `json:"frequency" binding:"required,oneof=WEEKLY BIWEEKLY MONTHLY YEARLY"`
	DayOfMonth      int              `json:"dayOfMonth" binding:"required,min=1,max=31"`
	Active          *bool            `json:"active"` // Defaults to true when omitted
}

// UpdateRecurringRequest defines the data allowed for updating a recurring definition.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateRecurringRequest struct {
	Name            *string           `json:"name"`
	Action          *domain.Action    `json:"action" binding:"omitempty,oneof=INCOME EXPENSE INVESTMENT"`
	Type            *string           `json:"type"`
	Detail1         *string           `json:"detail1"`
	Detail2         *string           `json:"detail2"`
	PaymentPlatform *string           `json:"paymentPlatform"`
	Amount          *decimal.Decimal  `json:"amount"`
	Frequency       *domain.Frequency `json:"frequency" binding:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY YEARLY"`
	DayOfMonth      *int              `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
	Active          *bool             `json:"active"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateRecurringRequest) ToPatch() domain.RecurringPatch {
	return domain.RecurringPatch{
		Name:            r.Name,
		Action:          r.Action,
		Type:            r.Type,
		Detail1:         r.Detail1,
		Detail2:         r.Detail2,
		PaymentPlatform: r.PaymentPlatform,
		Amount:          r.Amount,
		Frequency:       r.Frequency,
		DayOfMonth:      r.DayOfMonth,
		Active:          r.Active,
	}
}

// GenerateRequest carries the target date for recurrence generation.
type GenerateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// GenerateResponse reports how many entries a generation run inserted.
type GenerateResponse struct {
	Generated int `json:"generated"`
}

// RecurringResponse defines the data returned for a recurring definition.
type RecurringResponse struct {
	RecurringID     string           `json:"recurringID"`
	Name            string           `json:"name"`
	Action          domain.Action    `json:"action"`
	Type            string           `json:"type"`
	Detail1         string           `json:"detail1"`
	Detail2         string           `json:"detail2"`
	PaymentPlatform string           `json:"paymentPlatform"`
	Amount          decimal.Decimal  `json:"amount"`
	Frequency       domain.Frequency `json:"frequency"`
	DayOfMonth      int              `json:"dayOfMonth"`
	Active          bool             `json:"active"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// ToRecurringResponse converts a domain.RecurringDefinition to RecurringResponse DTO.
func ToRecurringResponse(d *domain.RecurringDefinition) RecurringResponse {
	return RecurringResponse{
		RecurringID:     d.RecurringID,
		Name:            d.Name,
		Action:          d.Action,
		Type:            d.Type,
		Detail1:         d.Detail1,
		Detail2:         d.Detail2,
		PaymentPlatform: d.PaymentPlatform,
		Amount:          d.Amount,
		Frequency:       d.Frequency,
		DayOfMonth:      d.DayOfMonth,
		Active:          d.Active,
		CreatedAt:       d.CreatedAt,
		LastUpdatedAt:   d.LastUpdatedAt,
	}
}

// ToRecurringResponses converts a slice of definitions to responses.
func ToRecurringResponses(defs []domain.RecurringDefinition) []RecurringResponse {
	responses := make([]RecurringResponse, len(defs))
	for i, d := range defs {
		responses[i] = ToRecurringResponse(&d)
	}
	return responses
}
