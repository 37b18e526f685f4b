package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// summaryRepository implements the SummaryRepositoryFacade interface
type summaryRepository struct {
	BaseRepository
}

// newSummaryRepository creates a new summary repository
func newSummaryRepository(db *pgxpool.Pool) portsrepo.SummaryRepositoryFacade {
	return &summaryRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// dateRangeSQL appends optional [from, to) bounds to a WHERE fragment.
func dateRangeSQL(base string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		base += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		base += fmt.Sprintf(" AND entry_date < $%d", len(args))
	}
	return base, args
}

// GetActionTotals retrieves sum and count per action for an owner,
// optionally restricted to a date range.
func (r *summaryRepository) GetActionTotals(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.ActionTotal, error) {
	where, args := dateRangeSQL("WHERE owner_id = $1", []any{ownerID}, from, to)
	query := `
		SELECT action, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
		FROM finance_entries
		` + where + `
		GROUP BY action;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query action totals for owner "+ownerID, err)
	}
	defer rows.Close()

	result := []domain.ActionTotal{}
	for rows.Next() {
		var row domain.ActionTotal
		var action string
		if err := rows.Scan(&action, &row.Total, &row.Count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan action total row", err)
		}
		row.Action = domain.Action(action)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating action total rows", err)
	}

	return result, nil
}

// GetMonthlyActionTotals retrieves per-month, per-action sums for all
// entries dated at or after since, ordered chronologically ascending.
func (r *summaryRepository) GetMonthlyActionTotals(ctx context.Context, ownerID string, since time.Time) ([]domain.ActionMonthTotal, error) {
	query := `
		SELECT date_trunc('month', entry_date) AS month, action, SUM(amount) AS total
		FROM finance_entries
		WHERE owner_id = $1 AND entry_date >= $2
		GROUP BY date_trunc('month', entry_date), action
		ORDER BY month ASC, action ASC;
	`

	rows, err := r.Pool.Query(ctx, query, ownerID, since)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly totals for owner "+ownerID, err)
	}
	defer rows.Close()

	return scanActionMonthRows(rows)
}

// GetCategoryTotals retrieves the top-limit category groups for one
// action by summed amount descending. Groups summing to exactly zero
// are excluded so offsetting entries never surface an empty category.
// One extra row is fetched to detect whether more groups exist.
func (r *summaryRepository) GetCategoryTotals(ctx context.Context, ownerID string, action domain.Action, from, to *time.Time, limit int) ([]domain.CategoryTotal, bool, error) {
	where, args := dateRangeSQL("WHERE owner_id = $1 AND action = $2", []any{ownerID, string(action)}, from, to)
	args = append(args, limit+1)
	query := `
		SELECT type, SUM(amount) AS total
		FROM finance_entries
		` + where + `
		GROUP BY type
		HAVING SUM(amount) <> 0
		ORDER BY total DESC
		LIMIT $` + fmt.Sprint(len(args)) + `;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to query category totals for owner "+ownerID, err)
	}
	defer rows.Close()

	return scanCategoryRows(rows, limit)
}

// GetInvestmentTotals retrieves the top-limit investment groups by
// summed amount descending, grouped by description.
func (r *summaryRepository) GetInvestmentTotals(ctx context.Context, ownerID string, from, to *time.Time, limit int) ([]domain.CategoryTotal, bool, error) {
	where, args := dateRangeSQL("WHERE owner_id = $1 AND action = $2", []any{ownerID, string(domain.Investment)}, from, to)
	args = append(args, limit+1)
	query := `
		SELECT description, SUM(amount) AS total
		FROM finance_entries
		` + where + `
		GROUP BY description
		HAVING SUM(amount) <> 0
		ORDER BY total DESC
		LIMIT $` + fmt.Sprint(len(args)) + `;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to query investment totals for owner "+ownerID, err)
	}
	defer rows.Close()

	return scanCategoryRows(rows, limit)
}

// GetFilteredMonthlyTotals retrieves per-month, per-action sums over an
// arbitrary entry filter.
func (r *summaryRepository) GetFilteredMonthlyTotals(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.ActionMonthTotal, error) {
	where, args := entryFilterSQL(ownerID, filter)
	query := `
		SELECT date_trunc('month', entry_date) AS month, action, SUM(amount) AS total
		FROM finance_entries
		` + where + `
		GROUP BY date_trunc('month', entry_date), action
		ORDER BY month ASC, action ASC;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query filtered monthly totals for owner "+ownerID, err)
	}
	defer rows.Close()

	return scanActionMonthRows(rows)
}

// GetFilteredCategoryTotals retrieves per-category, per-action sums over
// an arbitrary entry filter, excluding zero sums.
func (r *summaryRepository) GetFilteredCategoryTotals(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.CategoryActionTotal, error) {
	where, args := entryFilterSQL(ownerID, filter)
	query := `
		SELECT description, action, SUM(amount) AS total
		FROM finance_entries
		` + where + `
		GROUP BY description, action
		HAVING SUM(amount) <> 0
		ORDER BY total DESC;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query filtered category totals for owner "+ownerID, err)
	}
	defer rows.Close()

	result := []domain.CategoryActionTotal{}
	for rows.Next() {
		var row domain.CategoryActionTotal
		var action string
		if err := rows.Scan(&row.Category, &action, &row.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan filtered category row", err)
		}
		row.Action = domain.Action(action)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating filtered category rows", err)
	}

	return result, nil
}

// GetFilteredActionSums retrieves the summed amount per action over an
// arbitrary entry filter, excluding zero sums.
func (r *summaryRepository) GetFilteredActionSums(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.ActionTotal, error) {
	where, args := entryFilterSQL(ownerID, filter)
	query := `
		SELECT action, SUM(amount) AS total, COUNT(*) AS count
		FROM finance_entries
		` + where + `
		GROUP BY action
		HAVING SUM(amount) <> 0;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query filtered action sums for owner "+ownerID, err)
	}
	defer rows.Close()

	result := []domain.ActionTotal{}
	for rows.Next() {
		var row domain.ActionTotal
		var action string
		if err := rows.Scan(&action, &row.Total, &row.Count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan filtered action sum row", err)
		}
		row.Action = domain.Action(action)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating filtered action sum rows", err)
	}

	return result, nil
}

// scanActionMonthRows drains (month, action, total) rows.
func scanActionMonthRows(rows pgx.Rows) ([]domain.ActionMonthTotal, error) {
	result := []domain.ActionMonthTotal{}
	for rows.Next() {
		var row domain.ActionMonthTotal
		var action string
		if err := rows.Scan(&row.Month, &action, &row.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monthly total row", err)
		}
		row.Action = domain.Action(action)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating monthly total rows", err)
	}
	return result, nil
}

// scanCategoryRows drains (category, total) rows fetched with one extra
// row past the limit, returning the trimmed page plus a has-more flag.
func scanCategoryRows(rows pgx.Rows, limit int) ([]domain.CategoryTotal, bool, error) {
	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		if err := rows.Scan(&row.Category, &row.Total); err != nil {
			return nil, false, apperrors.NewAppError(500, "failed to scan category total row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, false, apperrors.NewAppError(500, "error iterating category total rows", err)
	}

	hasMore := len(result) > limit
	if hasMore {
		result = result[:limit]
	}
	return result, hasMore, nil
}
