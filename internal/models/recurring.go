package models

import "github.com/shopspring/decimal"

// RecurringDefinition is the persistence model for a recurring template row.
type RecurringDefinition struct {
	RecurringID     string          `json:"recurringID"`
	OwnerID         string          `json:"ownerID"`
	Name            string          `json:"name"`
	Action          Action          `json:"action"`
	Type            string          `json:"type"`
	Detail1         string          `json:"detail1"`
	Detail2         string          `json:"detail2"`
	PaymentPlatform string          `json:"paymentPlatform"`
	Amount          decimal.Decimal `json:"amount"`
	Frequency       string          `json:"frequency"`
	DayOfMonth      int             `json:"dayOfMonth"`
	Active          bool            `json:"active"`
	AuditFields
}
