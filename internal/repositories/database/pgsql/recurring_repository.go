package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	"github.com/finly-app/finly_backend/internal/models"
	"github.com/finly-app/finly_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recurringColumns = `recurring_id, owner_id, name, action, type, detail1, detail2, payment_platform, amount, frequency, day_of_month, active, created_at, last_updated_at`

type PgxRecurringRepository struct {
	BaseRepository
}

// newPgxRecurringRepository creates a new repository for recurring definition data.
func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepositoryFacade {
	return &PgxRecurringRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRecurringRepository implements portsrepo.RecurringRepositoryFacade
var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

// SaveDefinition inserts a new recurring definition.
func (r *PgxRecurringRepository) SaveDefinition(ctx context.Context, def domain.RecurringDefinition) error {
	modelDef := mapping.ToModelRecurringDefinition(def)
	query := `
		INSERT INTO recurring_definitions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelDef.RecurringID,
		modelDef.OwnerID,
		modelDef.Name,
		modelDef.Action,
		modelDef.Type,
		nullable(modelDef.Detail1),
		nullable(modelDef.Detail2),
		modelDef.PaymentPlatform,
		modelDef.Amount,
		modelDef.Frequency,
		modelDef.DayOfMonth,
		modelDef.Active,
		modelDef.CreatedAt,
		modelDef.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert recurring definition "+modelDef.RecurringID, err)
	}
	return nil
}

// FindDefinitionByID retrieves a single definition scoped to its owner.
func (r *PgxRecurringRepository) FindDefinitionByID(ctx context.Context, recurringID, ownerID string) (*domain.RecurringDefinition, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_definitions
		WHERE recurring_id = $1 AND owner_id = $2;
	`
	modelDef, err := scanRecurringRow(r.Pool.QueryRow(ctx, query, recurringID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find recurring definition "+recurringID, err)
	}

	domainDef := mapping.ToDomainRecurringDefinition(modelDef)
	return &domainDef, nil
}

// ListDefinitions returns the owner's definitions in deterministic
// display order.
func (r *PgxRecurringRepository) ListDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_definitions
		WHERE owner_id = $1
		ORDER BY day_of_month ASC, name ASC;
	`
	return r.queryDefinitions(ctx, query, ownerID)
}

// FindActiveDefinitions returns the owner's active definitions only.
func (r *PgxRecurringRepository) FindActiveDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_definitions
		WHERE owner_id = $1 AND active = true
		ORDER BY day_of_month ASC, name ASC;
	`
	return r.queryDefinitions(ctx, query, ownerID)
}

func (r *PgxRecurringRepository) queryDefinitions(ctx context.Context, query, ownerID string) ([]domain.RecurringDefinition, error) {
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recurring definitions for owner "+ownerID, err)
	}
	defer rows.Close()

	modelDefs := []models.RecurringDefinition{}
	for rows.Next() {
		m, err := scanRecurringRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recurring definition row for owner "+ownerID, err)
		}
		modelDefs = append(modelDefs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recurring definition rows for owner "+ownerID, err)
	}

	return mapping.ToDomainRecurringDefinitionSlice(modelDefs), nil
}

// UpdateDefinition applies a patch to the definition matching
// (recurringID, ownerID). Zero rows affected surfaces as
// apperrors.ErrNotFound.
func (r *PgxRecurringRepository) UpdateDefinition(ctx context.Context, recurringID, ownerID string, patch domain.RecurringPatch, updatedAt time.Time) error {
	if patch.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 11)
	args := []any{recurringID, ownerID}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Action != nil {
		set("action", string(*patch.Action))
	}
	if patch.Type != nil {
		set("type", *patch.Type)
	}
	if patch.Detail1 != nil {
		set("detail1", nullable(*patch.Detail1))
	}
	if patch.Detail2 != nil {
		set("detail2", nullable(*patch.Detail2))
	}
	if patch.PaymentPlatform != nil {
		set("payment_platform", *patch.PaymentPlatform)
	}
	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}
	if patch.Frequency != nil {
		set("frequency", string(*patch.Frequency))
	}
	if patch.DayOfMonth != nil {
		set("day_of_month", *patch.DayOfMonth)
	}
	if patch.Active != nil {
		set("active", *patch.Active)
	}
	set("last_updated_at", updatedAt)

	query := `UPDATE recurring_definitions SET ` + strings.Join(sets, ", ") + ` WHERE recurring_id = $1 AND owner_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update recurring definition "+recurringID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDefinition removes the definition matching (recurringID, ownerID).
// Generated entries are independent rows and remain untouched.
func (r *PgxRecurringRepository) DeleteDefinition(ctx context.Context, recurringID, ownerID string) error {
	query := `DELETE FROM recurring_definitions WHERE recurring_id = $1 AND owner_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, recurringID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete recurring definition "+recurringID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanRecurringRow scans a single definition row in recurringColumns order.
func scanRecurringRow(row pgx.Row) (models.RecurringDefinition, error) {
	var m models.RecurringDefinition
	var detail1, detail2 *string
	err := row.Scan(
		&m.RecurringID,
		&m.OwnerID,
		&m.Name,
		&m.Action,
		&m.Type,
		&detail1,
		&detail2,
		&m.PaymentPlatform,
		&m.Amount,
		&m.Frequency,
		&m.DayOfMonth,
		&m.Active,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return models.RecurringDefinition{}, err
	}
	if detail1 != nil {
		m.Detail1 = *detail1
	}
	if detail2 != nil {
		m.Detail2 = *detail2
	}
	return m, nil
}
