package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action is the three-way classification of an entry's financial direction.
// It is orthogonal to Type, which is a free-form user category label.
type Action string

const (
	Income     Action = "INCOME"
	Expense    Action = "EXPENSE"
	Investment Action = "INVESTMENT"
)

// IsValid reports whether the action is one of the known values.
func (a Action) IsValid() bool {
	switch a {
	case Income, Expense, Investment:
		return true
	}
	return false
}

// Entry represents a single recorded financial movement belonging to one owner.
// Amount is always non-negative; the sign is implied by Action.
type Entry struct {
	EntryID         string          `json:"entryID"`         // Primary Key (UUID)
	OwnerID         string          `json:"ownerID"`         // Owning user; every read/write is scoped to this
	EntryDate       time.Time       `json:"entryDate"`       // Primary ordering and filtering key
	Type            string          `json:"type"`            // Free-form category label
	Action          Action          `json:"action"`          // INCOME, EXPENSE or INVESTMENT
	Description     string          `json:"description"`     // Display label; dedup key against recurring definitions
	PaymentPlatform string          `json:"paymentPlatform"` // Free-form
	Amount          decimal.Decimal `json:"amount"`          // Non-negative; precise decimal type
	Detail1         string          `json:"detail1"`         // Optional annotation
	Detail2         string          `json:"detail2"`         // Optional annotation
	AuditFields
}
