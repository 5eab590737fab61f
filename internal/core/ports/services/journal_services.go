package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/dto"
)

// JournalSvcFacade is the journal factory and its surrounding operations.
type JournalSvcFacade interface {
	// CreateJournal validates and atomically persists a journal with its
	// entries. See CreateJournalInTx for the semantics; this variant manages
	// its own transaction.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// CreateJournalInTx is the factory primitive: entries non-empty, amounts
	// positive and quantized to 2 digits half-up, accounts resolved and
	// active, debits equal to credits, all-or-nothing persistence inside the
	// caller's transaction. With AutoPost the journal is POSTED (balance
	// guard included) in the same atomic unit, otherwise left DRAFT.
	CreateJournalInTx(ctx context.Context, tx pgx.Tx, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// PostJournal transitions a DRAFT journal to POSTED, running the balance
	// guard against its entries.
	PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)

	// VoidJournal discards a DRAFT journal. POSTED journals are immutable.
	VoidJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)

	// ReverseJournal posts a new journal offsetting a POSTED one. The
	// original stays POSTED; corrections are never edits.
	ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)

	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	GetJournalBySourceRef(ctx context.Context, ref domain.SourceReference) (*domain.Journal, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}
