package domain

import "github.com/shopspring/decimal"

// Frequency is the stated cadence of a recurring definition.
// Generation currently materializes on a month+day-of-month basis only;
// non-monthly cadences are stored and validated but do not alter the
// generation schedule.
type Frequency string

const (
	Weekly   Frequency = "WEEKLY"
	Biweekly Frequency = "BIWEEKLY"
	Monthly  Frequency = "MONTHLY"
	Yearly   Frequency = "YEARLY"
)

// IsValid reports whether the frequency is one of the known values.
func (f Frequency) IsValid() bool {
	switch f {
	case Weekly, Biweekly, Monthly, Yearly:
		return true
	}
	return false
}

// RecurringDefinition is a user-owned template that periodically
// materializes into Entries. Generated entries are independent rows;
// deleting the definition does not cascade into generated history.
type RecurringDefinition struct {
	RecurringID     string          `json:"recurringID"` // Primary Key (UUID)
	OwnerID         string          `json:"ownerID"`
	Name            string          `json:"name"` // Label; matching key against generated Entry.Description
	Action          Action          `json:"action"`
	Type            string          `json:"type"`
	Detail1         string          `json:"detail1"`
	Detail2         string          `json:"detail2"`
	PaymentPlatform string          `json:"paymentPlatform"`
	Amount          decimal.Decimal `json:"amount"`     // Fixed amount for every occurrence
	Frequency       Frequency       `json:"frequency"`  // Informational for non-monthly values
	DayOfMonth      int             `json:"dayOfMonth"` // 1-31, intended generation day
	Active          bool            `json:"active"`     // Inactive definitions never generate
	AuditFields
}
