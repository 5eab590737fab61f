package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// PostingNotification is emitted after a journal is committed for a business
// event, for downstream dispatch (email, webhooks). Best-effort only.
type PostingNotification struct {
	EventKind   string          `json:"event_kind"`
	EventID     string          `json:"event_id"`
	JournalID   string          `json:"journal_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PostingNotifier delivers posting notifications. Implementations must be
// safe to call after the storage transaction commits; failures are logged by
// callers and never roll back the posting.
type PostingNotifier interface {
	NotifyJournalPosted(ctx context.Context, n PostingNotification) error
}
