package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kudipay/payledger/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal header by its identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalBySourceRef retrieves the journal attached to a business
	// event, or apperrors.ErrNotFound when none exists.
	FindJournalBySourceRef(ctx context.Context, ref domain.SourceReference) (*domain.Journal, error)

	// ListJournals retrieves journals newest-first with cursor pagination.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournalInTx persists a journal header and its entries inside tx and
	// runs the balance guard when the journal is POSTED. A unique-index hit on
	// the source reference surfaces as apperrors.ErrDuplicatePosting; a guard
	// hit as apperrors.ErrInsufficientBalance. Nothing is visible to readers
	// until the caller commits.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, entries []domain.JournalEntry) error

	// PostJournalInTx transitions a DRAFT journal to POSTED inside tx,
	// re-running the balance guard against its entries.
	PostJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, entries []domain.JournalEntry, userID string, now time.Time) error

	// UpdateJournalStatus updates a journal's status.
	UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, updatedByUserID string, updatedAt time.Time) error

	// LinkReversalInTx records reversingJournalID on the original journal
	// inside tx, so the reversal insert and the back-link commit together.
	// Only a POSTED, not-yet-reversed journal accepts the link; anything else
	// surfaces as apperrors.ErrConflict, which makes a concurrent second
	// reversal lose cleanly.
	LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalJournalID string, reversingJournalID string, updatedByUserID string, updatedAt time.Time) error
}

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntriesByJournalID retrieves all entries of one journal in their
	// creation order.
	FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryReader
}

// JournalRepositoryWithTx extends the facade with transaction management.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
