package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the storage representation of a journal header.
// SourceKind/SourceID form the discriminated reference back to the business
// event; a partial unique index enforces one journal per event.
type Journal struct {
	JournalID          string          `db:"journal_id"`
	JournalDate        time.Time       `db:"journal_date"`
	Description        string          `db:"description"`
	Status             string          `db:"status"`
	SourceKind         *string         `db:"source_kind"`
	SourceID           *string         `db:"source_id"`
	Amount             decimal.Decimal `db:"amount"`
	OriginalJournalID  *string         `db:"original_journal_id"`
	ReversingJournalID *string         `db:"reversing_journal_id"`
	AuditFields
}

// JournalEntry is the storage representation of a single debit/credit line.
type JournalEntry struct {
	EntryID   string          `db:"entry_id"`
	JournalID string          `db:"journal_id"`
	AccountID string          `db:"account_id"`
	EntryType string          `db:"entry_type"`
	Amount    decimal.Decimal `db:"amount"`
	Memo      string          `db:"memo"`
	AuditFields
}
