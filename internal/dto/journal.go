package dto

import (
	"time"

	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one debit/credit line of a journal creation request.
type CreateEntryRequest struct {
	AccountNumber string           `json:"accountNumber" binding:"required"`
	EntryType     domain.EntryType `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	Memo          string           `json:"memo"`
}

// SourceReferenceRequest identifies the originating business event.
type SourceReferenceRequest struct {
	Kind string `json:"kind" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// CreateJournalRequest is the journal factory's input. With AutoPost the
// journal is posted within the same atomic operation; otherwise it is left
// in DRAFT for later review.
type CreateJournalRequest struct {
	Date        time.Time               `json:"date" binding:"required"`
	Description string                  `json:"description" binding:"required"`
	AutoPost    bool                    `json:"autoPost"`
	SourceRef   *SourceReferenceRequest `json:"sourceRef,omitempty"`
	Entries     []CreateEntryRequest    `json:"entries" binding:"required,min=1,dive"`
}

// EntryResponse is the API representation of a journal entry.
type EntryResponse struct {
	EntryID   string           `json:"entryID"`
	AccountID string           `json:"accountID"`
	EntryType domain.EntryType `json:"entryType"`
	Amount    decimal.Decimal  `json:"amount"`
	Memo      string           `json:"memo,omitempty"`
}

// JournalResponse is the API representation of a journal.
type JournalResponse struct {
	JournalID   string                  `json:"journalID"`
	JournalDate time.Time               `json:"journalDate"`
	Description string                  `json:"description"`
	Status      domain.JournalStatus    `json:"status"`
	Amount      decimal.Decimal         `json:"amount"`
	SourceRef   *domain.SourceReference `json:"sourceRef,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	Entries     []EntryResponse         `json:"entries,omitempty"`
}

// ListJournalsParams carries cursor pagination inputs for journal listing.
type ListJournalsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a page of journals plus the next cursor.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain Journal to its API representation.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		JournalDate: j.JournalDate,
		Description: j.Description,
		Status:      j.Status,
		Amount:      j.Amount,
		SourceRef:   j.SourceRef,
		CreatedAt:   j.CreatedAt,
	}
	for _, e := range j.Entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			EntryID:   e.EntryID,
			AccountID: e.AccountID,
			EntryType: e.EntryType,
			Amount:    e.Amount,
			Memo:      e.Memo,
		})
	}
	return resp
}
