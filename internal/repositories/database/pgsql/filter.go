package pgsql

import (
	"fmt"
	"strings"

	"github.com/finly-app/finly_backend/internal/core/domain"
)

// entryFilterSQL builds the WHERE clause for owner-scoped entry queries.
// Every user-supplied value is passed through a bound parameter; the
// returned clause text only ever contains column names and placeholders.
func entryFilterSQL(ownerID string, f domain.EntryFilter) (string, []any) {
	clauses := []string{"owner_id = $1"}
	args := []any{ownerID}

	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf(`(
			LOWER(action) LIKE $%d OR
			LOWER(description) LIKE $%d OR
			LOWER(payment_platform) LIKE $%d OR
			LOWER(COALESCE(detail1, '')) LIKE $%d OR
			LOWER(COALESCE(detail2, '')) LIKE $%d
		)`, idx, idx, idx, idx, idx))
	}

	if f.Action != "" {
		args = append(args, string(f.Action))
		clauses = append(clauses, fmt.Sprintf("action = $%d", len(args)))
	}

	if f.From != nil {
		args = append(args, *f.From)
		clauses = append(clauses, fmt.Sprintf("entry_date >= $%d", len(args)))
	}

	if f.To != nil {
		args = append(args, *f.To)
		clauses = append(clauses, fmt.Sprintf("entry_date <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}
