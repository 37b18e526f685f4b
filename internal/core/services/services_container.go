package services

import (
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Entry = NewEntryService(repos.EntryRepo)

	// The generator reads definitions and writes entries, so it needs
	// both repositories.
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.EntryRepo)

	container.Summary = NewSummaryService(repos.SummaryRepo)

	return container
}
