package mapping

import (
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/models"
)

// ToModelJournal converts a domain Journal to its storage model.
func ToModelJournal(d domain.Journal) models.Journal {
	m := models.Journal{
		JournalID:          d.JournalID,
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		Status:             string(d.Status),
		Amount:             d.Amount,
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        toModelAudit(d.AuditFields),
	}
	if d.SourceRef != nil {
		kind := d.SourceRef.Kind
		id := d.SourceRef.ID
		m.SourceKind = &kind
		m.SourceID = &id
	}
	return m
}

// ToDomainJournal converts a storage model Journal to the domain type.
func ToDomainJournal(m models.Journal) domain.Journal {
	d := domain.Journal{
		JournalID:          m.JournalID,
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		Status:             domain.JournalStatus(m.Status),
		Amount:             m.Amount,
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        toDomainAudit(m.AuditFields),
	}
	if m.SourceKind != nil && m.SourceID != nil {
		d.SourceRef = &domain.SourceReference{Kind: *m.SourceKind, ID: *m.SourceID}
	}
	return d
}

// ToModelEntry converts a domain JournalEntry to its storage model.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		JournalID:   d.JournalID,
		AccountID:   d.AccountID,
		EntryType:   string(d.EntryType),
		Amount:      d.Amount,
		Memo:        d.Memo,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainEntry converts a storage model JournalEntry to the domain type.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		EntryType:   domain.EntryType(m.EntryType),
		Amount:      m.Amount,
		Memo:        m.Memo,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries.
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
