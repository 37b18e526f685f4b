package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryFilter restricts an owner-scoped entry query. Zero values mean
// "no constraint on that dimension"; populated fields combine with
// logical AND.
type EntryFilter struct {
	Search string     // Case-insensitive substring across action, description, payment platform and details
	Action Action     // Exact match; empty means unfiltered
	From   *time.Time // Inclusive, start of day
	To     *time.Time // Inclusive, end of day
}

// EntryPatch is the fixed set of optional fields an entry update may
// change. Pointer fields distinguish "set to zero value" from "leave
// untouched". Owner and audit fields are never patchable.
type EntryPatch struct {
	EntryDate       *time.Time
	Type            *string
	Action          *Action
	Description     *string
	PaymentPlatform *string
	Amount          *decimal.Decimal
	Detail1         *string
	Detail2         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.EntryDate == nil && p.Type == nil && p.Action == nil &&
		p.Description == nil && p.PaymentPlatform == nil && p.Amount == nil &&
		p.Detail1 == nil && p.Detail2 == nil
}

// RecurringPatch is the fixed set of optional fields a recurring
// definition update may change.
type RecurringPatch struct {
	Name            *string
	Action          *Action
	Type            *string
	Detail1         *string
	Detail2         *string
	PaymentPlatform *string
	Amount          *decimal.Decimal
	Frequency       *Frequency
	DayOfMonth      *int
	Active          *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p RecurringPatch) IsEmpty() bool {
	return p.Name == nil && p.Action == nil && p.Type == nil &&
		p.Detail1 == nil && p.Detail2 == nil && p.PaymentPlatform == nil &&
		p.Amount == nil && p.Frequency == nil && p.DayOfMonth == nil && p.Active == nil
}
