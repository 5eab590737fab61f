package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kudipay/payledger/internal/apperrors"
	"github.com/kudipay/payledger/internal/core/domain"
	portsrepo "github.com/kudipay/payledger/internal/core/ports/repositories"
	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
	"github.com/kudipay/payledger/internal/dto"
	"github.com/kudipay/payledger/internal/middleware"
	"github.com/kudipay/payledger/internal/platform/metrics"
	"github.com/kudipay/payledger/internal/utils/accounting"
)

// journalService is the journal factory: the single entry point through which
// journals and their entries come into existence.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal validates and atomically persists a journal with its entries,
// managing its own transaction.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	journal, err := s.CreateJournalInTx(ctx, tx, req, creatorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if journal.Status == domain.Posted {
		metrics.JournalsPosted.Inc()
	}
	return journal, nil
}

// CreateJournalInTx is the factory primitive. It validates the request,
// resolves account numbers, and persists the journal header and all entries
// inside the caller's transaction, all-or-nothing. With AutoPost the journal
// is created POSTED and the store's balance guard runs in the same atomic
// unit; otherwise it is left in DRAFT.
func (s *journalService) CreateJournalInTx(ctx context.Context, tx pgx.Tx, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: journal requires at least one entry", apperrors.ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}

	// Quantize everything up front; the balance check and all persisted
	// amounts see the same 2-digit half-up figures.
	specs := make([]domain.EntrySpec, len(req.Entries))
	for i, e := range req.Entries {
		specs[i] = domain.EntrySpec{
			AccountNumber: e.AccountNumber,
			EntryType:     e.EntryType,
			Amount:        accounting.Quantize(e.Amount),
			Memo:          e.Memo,
		}
	}

	if err := accounting.ValidateBalance(specs); err != nil {
		if errors.Is(err, apperrors.ErrUnbalancedJournal) {
			metrics.PostingFailures.WithLabelValues("unbalanced").Inc()
		}
		return nil, err
	}

	accounts, err := s.resolveAccounts(ctx, specs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	status := domain.Draft
	if req.AutoPost {
		status = domain.Posted
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entries := make([]domain.JournalEntry, len(specs))
	debitTotal := decimal.Zero
	for i, spec := range specs {
		account := accounts[spec.AccountNumber]
		entries[i] = domain.JournalEntry{
			EntryID:     uuid.NewString(),
			JournalID:   journalID,
			AccountID:   account.AccountID,
			EntryType:   spec.EntryType,
			Amount:      spec.Amount,
			Memo:        spec.Memo,
			AuditFields: audit,
		}
		if spec.EntryType == domain.Debit {
			debitTotal = debitTotal.Add(spec.Amount)
		}
	}

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: req.Date,
		Description: req.Description,
		Status:      status,
		Amount:      debitTotal,
		AuditFields: audit,
	}
	if req.SourceRef != nil {
		journal.SourceRef = &domain.SourceReference{Kind: req.SourceRef.Kind, ID: req.SourceRef.ID}
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, entries); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			metrics.PostingFailures.WithLabelValues("insufficient_balance").Inc()
		case errors.Is(err, apperrors.ErrDuplicatePosting):
			metrics.PostingFailures.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	logger.Info("Journal created",
		slog.String("journal_id", journalID),
		slog.String("status", string(status)),
		slog.Int("entry_count", len(entries)),
	)
	journal.Entries = entries
	return &journal, nil
}

// resolveAccounts maps the specs' account numbers to active accounts.
func (s *journalService) resolveAccounts(ctx context.Context, specs []domain.EntrySpec) (map[string]domain.Account, error) {
	numbers := make([]string, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if _, ok := seen[spec.AccountNumber]; !ok {
			seen[spec.AccountNumber] = struct{}{}
			numbers = append(numbers, spec.AccountNumber)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByNumbers(ctx, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for _, number := range numbers {
		account, found := accounts[number]
		if !found {
			return nil, fmt.Errorf("%w: account number %s", apperrors.ErrInvalidAccount, number)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidAccount, number)
		}
	}
	return accounts, nil
}

// PostJournal transitions a DRAFT journal to POSTED. The balance guard runs
// against the journal's entries inside the posting transaction.
func (s *journalService) PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal status is %s, expected DRAFT", apperrors.ErrConflict, journal.Status)
	}

	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}

	now := time.Now().UTC()
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.journalRepo.PostJournalInTx(ctx, tx, *journal, entries, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			metrics.PostingFailures.WithLabelValues("insufficient_balance").Inc()
		}
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.JournalsPosted.Inc()
	logger.Info("Journal posted", slog.String("journal_id", journalID))

	journal.Status = domain.Posted
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID
	journal.Entries = entries
	return journal, nil
}

// VoidJournal discards a DRAFT journal. POSTED journals are immutable and can
// only be corrected by a reversing journal.
func (s *journalService) VoidJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: only DRAFT journals can be voided, status is %s", apperrors.ErrConflict, journal.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.Void, userID, now); err != nil {
		return nil, fmt.Errorf("failed to void journal: %w", err)
	}

	logger.Info("Journal voided", slog.String("journal_id", journalID))
	journal.Status = domain.Void
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID
	return journal, nil
}

// ReverseJournal posts a new journal whose entries mirror a POSTED journal
// with debit and credit flipped. The original journal remains POSTED; the two
// are linked through OriginalJournalID/ReversingJournalID.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}
	if original.ReversingJournalID != nil {
		return nil, fmt.Errorf("%w: journal is already reversed by %s", apperrors.ErrConflict, *original.ReversingJournalID)
	}

	originalEntries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}

	now := time.Now().UTC()
	newJournalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversingEntries := make([]domain.JournalEntry, len(originalEntries))
	for i, orig := range originalEntries {
		flipped := domain.Credit
		if orig.EntryType == domain.Credit {
			flipped = domain.Debit
		}
		reversingEntries[i] = domain.JournalEntry{
			EntryID:     uuid.NewString(),
			JournalID:   newJournalID,
			AccountID:   orig.AccountID,
			EntryType:   flipped,
			Amount:      orig.Amount,
			Memo:        orig.Memo,
			AuditFields: audit,
		}
	}

	reversingJournal := domain.Journal{
		JournalID:         newJournalID,
		JournalDate:       original.JournalDate,
		Description:       fmt.Sprintf("Reversal of: %s", original.Description),
		Status:            domain.Posted,
		Amount:            original.Amount,
		OriginalJournalID: &original.JournalID,
		AuditFields:       audit,
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, reversingJournal, reversingEntries); err != nil {
		logger.Error("Failed to save reversing journal", slog.String("error", err.Error()), slog.String("original_journal_id", journalID))
		return nil, err
	}
	// Link the original inside the same tx; the insert and the back-link
	// commit or roll back together, and a concurrent second reversal loses
	// on the link guard instead of double-posting.
	if err := s.journalRepo.LinkReversalInTx(ctx, tx, original.JournalID, newJournalID, userID, now); err != nil {
		logger.Warn("Reversal refused", slog.String("error", err.Error()), slog.String("journal_id", original.JournalID))
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.JournalsPosted.Inc()
	logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversing_journal_id", newJournalID))
	reversingJournal.Entries = reversingEntries
	return &reversingJournal, nil
}

// GetJournalByID retrieves a journal with its entries.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journalID, err)
	}
	journal.Entries = entries
	return journal, nil
}

// GetJournalBySourceRef retrieves the journal attached to a business event.
func (s *journalService) GetJournalBySourceRef(ctx context.Context, ref domain.SourceReference) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalBySourceRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journal.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for journal %s: %w", journal.JournalID, err)
	}
	journal.Entries = entries
	return journal, nil
}

// ListJournals retrieves a page of journals, newest first.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		responses[i] = dto.ToJournalResponse(&journals[i])
	}
	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}
