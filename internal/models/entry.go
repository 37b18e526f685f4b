package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action mirrors domain.Action at the persistence layer.
type Action string

const (
	Income     Action = "INCOME"
	Expense    Action = "EXPENSE"
	Investment Action = "INVESTMENT"
)

// Entry is the persistence model for a finance entry row.
type Entry struct {
	EntryID         string          `json:"entryID"`
	OwnerID         string          `json:"ownerID"`
	EntryDate       time.Time       `json:"entryDate"`
	Type            string          `json:"type"`
	Action          Action          `json:"action"`
	Description     string          `json:"description"`
	PaymentPlatform string          `json:"paymentPlatform"`
	Amount          decimal.Decimal `json:"amount"`
	Detail1         string          `json:"detail1"` // Nullable in the table, empty string in Go
	Detail2         string          `json:"detail2"` // Nullable in the table, empty string in Go
	AuditFields
}
