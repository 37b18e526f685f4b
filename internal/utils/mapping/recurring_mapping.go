package mapping

import (
	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/models"
)

// ToModelRecurringDefinition converts a domain RecurringDefinition to its model
func ToModelRecurringDefinition(d domain.RecurringDefinition) models.RecurringDefinition {
	return models.RecurringDefinition{
		RecurringID:     d.RecurringID,
		OwnerID:         d.OwnerID,
		Name:            d.Name,
		Action:          models.Action(d.Action),
		Type:            d.Type,
		Detail1:         d.Detail1,
		Detail2:         d.Detail2,
		PaymentPlatform: d.PaymentPlatform,
		Amount:          d.Amount,
		Frequency:       string(d.Frequency),
		DayOfMonth:      d.DayOfMonth,
		Active:          d.Active,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurringDefinition converts a model RecurringDefinition to its domain form
func ToDomainRecurringDefinition(m models.RecurringDefinition) domain.RecurringDefinition {
	return domain.RecurringDefinition{
		RecurringID:     m.RecurringID,
		OwnerID:         m.OwnerID,
		Name:            m.Name,
		Action:          domain.Action(m.Action),
		Type:            m.Type,
		Detail1:         m.Detail1,
		Detail2:         m.Detail2,
		PaymentPlatform: m.PaymentPlatform,
		Amount:          m.Amount,
		Frequency:       domain.Frequency(m.Frequency),
		DayOfMonth:      m.DayOfMonth,
		Active:          m.Active,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecurringDefinitionSlice converts a slice of model definitions to domain form
func ToDomainRecurringDefinitionSlice(ms []models.RecurringDefinition) []domain.RecurringDefinition {
	ds := make([]domain.RecurringDefinition, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecurringDefinition(m)
	}
	return ds
}
