package domain

import "github.com/shopspring/decimal"

// EntryType indicates whether a journal entry is a debit or a credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry is a single debit or credit line against one account.
// Amount is always positive; zero-amount entries are rejected at creation.
type JournalEntry struct {
	EntryID   string          `json:"entryID"`   // Primary Key (UUID)
	JournalID string          `json:"journalID"` // FK -> Journal
	AccountID string          `json:"accountID"` // FK -> Account
	EntryType EntryType       `json:"entryType"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo"`
	AuditFields
}

// EntrySpec describes an entry to be created, addressed by account number.
// The journal factory resolves account numbers to accounts at creation time.
type EntrySpec struct {
	AccountNumber string          `json:"accountNumber"`
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	Memo          string          `json:"memo"`
}
