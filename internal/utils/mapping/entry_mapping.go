package mapping

import (
	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:         d.EntryID,
		OwnerID:         d.OwnerID,
		EntryDate:       d.EntryDate,
		Type:            d.Type,
		Action:          models.Action(d.Action),
		Description:     d.Description,
		PaymentPlatform: d.PaymentPlatform,
		Amount:          d.Amount,
		Detail1:         d.Detail1,
		Detail2:         d.Detail2,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:         m.EntryID,
		OwnerID:         m.OwnerID,
		EntryDate:       m.EntryDate,
		Type:            m.Type,
		Action:          domain.Action(m.Action),
		Description:     m.Description,
		PaymentPlatform: m.PaymentPlatform,
		Amount:          m.Amount,
		Detail1:         m.Detail1,
		Detail2:         m.Detail2,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
