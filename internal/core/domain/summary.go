package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionTotal is the summed amount and row count for one action bucket.
type ActionTotal struct {
	Action Action
	Total  decimal.Decimal
	Count  int64
}

// CategoryTotal is the summed amount for one category group.
// Groups whose sum is exactly zero are excluded at query time.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ActionMonthTotal is one row of the filtered temporal series used by
// the analytics view: the summed amount for one action in one month.
type ActionMonthTotal struct {
	Month  time.Time       `json:"month"`
	Action Action          `json:"action"`
	Total  decimal.Decimal `json:"total"`
}

// CategoryActionTotal is one row of the analytics category series: the
// summed amount for one category label under one action.
type CategoryActionTotal struct {
	Category string          `json:"category"`
	Action   Action          `json:"action"`
	Total    decimal.Decimal `json:"total"`
}
