package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		TenantID:          d.TenantID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		ReferenceType:     string(d.ReferenceType),
		ReferenceID:       d.ReferenceID,
		Description:       d.Description,
		Status:            models.EntryStatus(d.Status),
		IsSystemGenerated: d.IsSystemGenerated,
		PostedAt:          d.PostedAt,
		ReversedByEntryID: d.ReversedByEntryID,
		ReversesEntryID:   d.ReversesEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		TenantID:          m.TenantID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		ReferenceType:     domain.ReferenceType(m.ReferenceType),
		ReferenceID:       m.ReferenceID,
		Description:       m.Description,
		Status:            domain.EntryStatus(m.Status),
		IsSystemGenerated: m.IsSystemGenerated,
		PostedAt:          m.PostedAt,
		ReversedByEntryID: m.ReversedByEntryID,
		ReversesEntryID:   m.ReversesEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineType:    models.LineType(d.LineType),
		Amount:      d.Amount,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineType:    domain.LineType(m.LineType),
		Amount:      m.Amount,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
