package pgsql

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	"github.com/finly-app/finly_backend/internal/models"
	"github.com/finly-app/finly_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, owner_id, entry_date, type, action, description, payment_platform, amount, detail1, detail2, created_at, last_updated_at`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for finance entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry inserts a new finance entry. The (owner_id, entry_date,
// description) uniqueness constraint turns a concurrent duplicate
// insert into apperrors.ErrDuplicate instead of a silent double row.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	modelEntry := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO finance_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.OwnerID,
		modelEntry.EntryDate,
		modelEntry.Type,
		modelEntry.Action,
		modelEntry.Description,
		modelEntry.PaymentPlatform,
		modelEntry.Amount,
		nullable(modelEntry.Detail1),
		nullable(modelEntry.Detail2),
		modelEntry.CreatedAt,
		modelEntry.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry %q on %s", apperrors.ErrDuplicate, entry.Description, entry.EntryDate.Format("2006-01-02"))
		}
		return apperrors.NewAppError(500, "failed to insert entry "+modelEntry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a single entry scoped to its owner.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID, ownerID string) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM finance_entries
		WHERE entry_id = $1 AND owner_id = $2;
	`
	modelEntry, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryID, err)
	}

	domainEntry := mapping.ToDomainEntry(modelEntry)
	return &domainEntry, nil
}

// ListEntries retrieves a filtered page of entries plus the total match count.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]domain.Entry, int64, error) {
	whereClause, args := entryFilterSQL(ownerID, filter)

	countQuery := `SELECT COUNT(*) FROM finance_entries ` + whereClause + `;`
	var totalItems int64
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count entries for owner "+ownerID, err)
	}

	// Stable ordering: entry date first, creation time as tie-breaker.
	dataQuery := `
		SELECT ` + entryColumns + `
		FROM finance_entries
		` + whereClause + `
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2) + `;
	`
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query entries for owner "+ownerID, err)
	}
	defer rows.Close()

	modelEntries, err := scanEntryRows(rows)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to scan entry rows for owner "+ownerID, err)
	}

	return mapping.ToDomainEntrySlice(modelEntries), totalItems, nil
}

// FindAllEntries retrieves the full filtered entry list without pagination.
func (r *PgxEntryRepository) FindAllEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.Entry, error) {
	whereClause, args := entryFilterSQL(ownerID, filter)
	query := `
		SELECT ` + entryColumns + `
		FROM finance_entries
		` + whereClause + `
		ORDER BY entry_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for export for owner "+ownerID, err)
	}
	defer rows.Close()

	modelEntries, err := scanEntryRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan export entry rows for owner "+ownerID, err)
	}

	return mapping.ToDomainEntrySlice(modelEntries), nil
}

// FindEntriesByDate retrieves the entries dated exactly at the given
// instant. The generator compares against the target date itself, not a
// range, so an entry generated onto a clamped day is caught by the
// uniqueness constraint instead.
func (r *PgxEntryRepository) FindEntriesByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM finance_entries
		WHERE owner_id = $1 AND entry_date = $2;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries by date for owner "+ownerID, err)
	}
	defer rows.Close()

	modelEntries, err := scanEntryRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan entry rows by date for owner "+ownerID, err)
	}

	return mapping.ToDomainEntrySlice(modelEntries), nil
}

// UpdateEntry applies a patch to the entry matching (entryID, ownerID).
// The SET clause is assembled from a fixed set of optional fields; no
// reflection, no caller-controlled column names. Zero rows affected
// surfaces as apperrors.ErrNotFound so callers can decide the severity.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entryID, ownerID string, patch domain.EntryPatch, updatedAt time.Time) error {
	if patch.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 9)
	args := []any{entryID, ownerID}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.EntryDate != nil {
		set("entry_date", *patch.EntryDate)
	}
	if patch.Type != nil {
		set("type", *patch.Type)
	}
	if patch.Action != nil {
		set("action", string(*patch.Action))
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.PaymentPlatform != nil {
		set("payment_platform", *patch.PaymentPlatform)
	}
	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}
	if patch.Detail1 != nil {
		set("detail1", nullable(*patch.Detail1))
	}
	if patch.Detail2 != nil {
		set("detail2", nullable(*patch.Detail2))
	}
	set("last_updated_at", updatedAt)

	query := `UPDATE finance_entries SET ` + strings.Join(sets, ", ") + ` WHERE entry_id = $1 AND owner_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry update collides with an existing entry", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update entry "+entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes the entry matching (entryID, ownerID). Zero rows
// affected surfaces as apperrors.ErrNotFound.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID, ownerID string) error {
	query := `DELETE FROM finance_entries WHERE entry_id = $1 AND owner_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// scanEntryRow scans a single entry row in entryColumns order.
func scanEntryRow(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	var detail1, detail2 *string
	err := row.Scan(
		&m.EntryID,
		&m.OwnerID,
		&m.EntryDate,
		&m.Type,
		&m.Action,
		&m.Description,
		&m.PaymentPlatform,
		&m.Amount,
		&detail1,
		&detail2,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return models.Entry{}, err
	}
	if detail1 != nil {
		m.Detail1 = *detail1
	}
	if detail2 != nil {
		m.Detail2 = *detail2
	}
	return m, nil
}

// scanEntryRows drains rows into entry models, checking iteration errors.
func scanEntryRows(rows pgx.Rows) ([]models.Entry, error) {
	modelEntries := []models.Entry{}
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return modelEntries, nil
}
