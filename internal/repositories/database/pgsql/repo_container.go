package pgsql

import (
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)
	recurringRepo := newPgxRecurringRepository(dbPool)
	summaryRepo := newSummaryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:     entryRepo,
		RecurringRepo: recurringRepo,
		SummaryRepo:   summaryRepo,
	}
}
