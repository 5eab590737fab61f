package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// SourceReference ties a journal back to the business event that produced it.
// At most one journal may exist per (Kind, ID) pair; the store enforces this.
type SourceReference struct {
	Kind string `json:"kind"` // e.g. "payroll_run"
	ID   string `json:"id"`
}

// Journal represents a single, balanced financial event composed of multiple entries.
// Once POSTED its entries are immutable; corrections are new offsetting journals.
type Journal struct {
	JournalID   string           `json:"journalID"` // Primary Key (UUID)
	JournalDate time.Time        `json:"journalDate"`
	Description string           `json:"description"`
	Status      JournalStatus    `json:"status"`
	SourceRef   *SourceReference `json:"sourceRef,omitempty"`
	// Amount is the journal's economic value: the sum of its debit side.
	Amount decimal.Decimal `json:"amount"`
	// Reversal linkage. A reversing journal points at the journal it offsets.
	OriginalJournalID  *string `json:"originalJournalID,omitempty"`
	ReversingJournalID *string `json:"reversingJournalID,omitempty"`
	AuditFields
	Entries []JournalEntry `json:"entries,omitempty"`
}
