package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestEntryFilterSQLOwnerOnly(t *testing.T) {
	where, args := entryFilterSQL("owner-1", domain.EntryFilter{})

	assert.Equal(t, "WHERE owner_id = $1", where)
	assert.Equal(t, []any{"owner-1"}, args)
}

func TestEntryFilterSQLAllDimensions(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 999999000, time.UTC)

	where, args := entryFilterSQL("owner-1", domain.EntryFilter{
		Search: "Alquiler",
		Action: domain.Expense,
		From:   &from,
		To:     &to,
	})

	assert.Len(t, args, 5)
	assert.Equal(t, "owner-1", args[0])
	assert.Equal(t, "%alquiler%", args[1])
	assert.Equal(t, "EXPENSE", args[2])
	assert.Equal(t, from, args[3])
	assert.Equal(t, to, args[4])

	assert.Contains(t, where, "owner_id = $1")
	assert.Contains(t, where, "LIKE $2")
	assert.Contains(t, where, "action = $3")
	assert.Contains(t, where, "entry_date >= $4")
	assert.Contains(t, where, "entry_date <= $5")
}

// User input must never end up in the clause text itself; injection
// attempts travel as harmless bound values.
func TestEntryFilterSQLNeverInterpolatesInput(t *testing.T) {
	hostile := "'; DROP TABLE finance_entries; --"

	where, args := entryFilterSQL(hostile, domain.EntryFilter{
		Search: hostile,
		Action: domain.Action(hostile),
	})

	assert.NotContains(t, where, "DROP TABLE")
	assert.Contains(t, args, hostile)
	assert.Contains(t, args, "%"+strings.ToLower(hostile)+"%")
}

func TestEntryFilterSQLSearchMatchesAllColumns(t *testing.T) {
	where, _ := entryFilterSQL("owner-1", domain.EntryFilter{Search: "bizum"})

	for _, col := range []string{"action", "description", "payment_platform", "detail1", "detail2"} {
		assert.Contains(t, where, col)
	}
}
