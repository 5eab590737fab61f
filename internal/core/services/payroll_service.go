package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kudipay/payledger/internal/apperrors"
	"github.com/kudipay/payledger/internal/core/domain"
	portsrepo "github.com/kudipay/payledger/internal/core/ports/repositories"
	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
	"github.com/kudipay/payledger/internal/dto"
	"github.com/kudipay/payledger/internal/middleware"
	"github.com/kudipay/payledger/internal/platform/metrics"
)

// SourceKindPayrollRun is the source reference kind for payroll run journals.
const SourceKindPayrollRun = "payroll_run"

// payrollService bridges payroll run closure to the ledger: it derives the
// run's entries, posts one journal per run, and records the journal back on
// the run, idempotently.
type payrollService struct {
	txm         portsrepo.TransactionManager
	payrollRepo portsrepo.PayrollRepositoryFacade
	journalSvc  portssvc.JournalSvcFacade
	accounts    PostingAccounts
	notifier    portssvc.PostingNotifier
}

// NewPayrollService creates the event-to-ledger bridge. The posting account
// targets come in as explicit configuration; notifier may be nil when no
// downstream dispatch is wired.
func NewPayrollService(
	txm portsrepo.TransactionManager,
	payrollRepo portsrepo.PayrollRepositoryFacade,
	journalSvc portssvc.JournalSvcFacade,
	accounts PostingAccounts,
	notifier portssvc.PostingNotifier,
) (portssvc.PayrollSvcFacade, error) {
	if err := accounts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid posting accounts: %w", err)
	}
	return &payrollService{
		txm:         txm,
		payrollRepo: payrollRepo,
		journalSvc:  journalSvc,
		accounts:    accounts,
		notifier:    notifier,
	}, nil
}

// ClosePayrollRun drives OPEN -> CLOSING -> CLOSED for one run. The run row
// lock, the journal write with its balance guard, and the CLOSED transition
// share one storage transaction: a failed close leaves the run OPEN with no
// journal, and no reader ever observes a partial state. Re-closing a CLOSED
// run returns the stored journal without recomputing anything.
func (s *payrollService) ClosePayrollRun(ctx context.Context, runID string, userID string) (*portssvc.CloseRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.payrollRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status == domain.RunClosed {
		return s.alreadyClosedResult(ctx, run)
	}

	tx, err := s.txm.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txm.Rollback(ctx, tx)

	// Lock the run row; a concurrent close serializes here and re-reads the
	// winner's CLOSED state.
	run, err = s.payrollRepo.ClaimRunForCloseInTx(ctx, tx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status == domain.RunClosed {
		return s.alreadyClosedResult(ctx, run)
	}

	runEntries, err := s.payrollRepo.FindRunEntriesInTx(ctx, tx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to read run entries for %s: %w", runID, err)
	}

	now := time.Now().UTC()
	specs := DeriveRunEntries(*run, runEntries, s.accounts)

	// A run with no eligible participants closes with no journal at all:
	// a no-op, not an error and not a zero-amount journal.
	if len(specs) == 0 {
		if err := s.payrollRepo.MarkRunClosedInTx(ctx, tx, runID, nil, userID, now); err != nil {
			return nil, err
		}
		if err := s.txm.Commit(ctx, tx); err != nil {
			return nil, err
		}
		metrics.RunsClosed.Inc()
		logger.Info("Payroll run closed with no participants", slog.String("run_id", runID))
		run.Status = domain.RunClosed
		return &portssvc.CloseRunResult{Run: run, NoOp: true}, nil
	}

	req := dto.CreateJournalRequest{
		Date:        run.PeriodEnd,
		Description: fmt.Sprintf("Payroll %s to %s", run.PeriodStart.Format("2006-01-02"), run.PeriodEnd.Format("2006-01-02")),
		AutoPost:    true,
		SourceRef:   &dto.SourceReferenceRequest{Kind: SourceKindPayrollRun, ID: runID},
		Entries:     entrySpecsToRequests(specs),
	}

	journal, err := s.journalSvc.CreateJournalInTx(ctx, tx, req, userID)
	if err != nil {
		// Losing a race on the (kind, id) uniqueness means another request
		// already posted this run's journal: surface it as already-closed,
		// not as a failure.
		if errors.Is(err, apperrors.ErrDuplicatePosting) {
			s.txm.Rollback(ctx, tx)
			logger.Info("Close raced an existing posting, returning it", slog.String("run_id", runID))
			existing, findErr := s.payrollRepo.FindRunByID(ctx, runID)
			if findErr != nil {
				return nil, findErr
			}
			return s.alreadyClosedResult(ctx, existing)
		}
		logger.Warn("Payroll close rejected, run left open",
			slog.String("run_id", runID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.payrollRepo.MarkRunClosedInTx(ctx, tx, runID, &journal.JournalID, userID, now); err != nil {
		return nil, err
	}
	if err := s.txm.Commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.JournalsPosted.Inc()
	metrics.RunsClosed.Inc()
	logger.Info("Payroll run closed",
		slog.String("run_id", runID),
		slog.String("journal_id", journal.JournalID),
		slog.String("amount", journal.Amount.StringFixed(2)),
	)

	// Notification is fire-and-forget and strictly post-commit: its failure
	// must never unwind a committed posting.
	s.notifyPosted(ctx, runID, journal)

	run.Status = domain.RunClosed
	run.JournalID = &journal.JournalID
	run.LastUpdatedAt = now
	run.LastUpdatedBy = userID
	return &portssvc.CloseRunResult{Run: run, Journal: journal}, nil
}

// alreadyClosedResult builds the idempotence-hit result for a CLOSED run.
func (s *payrollService) alreadyClosedResult(ctx context.Context, run *domain.PayrollRun) (*portssvc.CloseRunResult, error) {
	result := &portssvc.CloseRunResult{Run: run, AlreadyClosed: true}
	if run.JournalID == nil {
		// Closed as a zero-participant no-op.
		result.NoOp = true
		return result, nil
	}
	journal, err := s.journalSvc.GetJournalByID(ctx, *run.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal %s for closed run %s: %w", *run.JournalID, run.RunID, err)
	}
	result.Journal = journal
	return result, nil
}

func (s *payrollService) notifyPosted(ctx context.Context, runID string, journal *domain.Journal) {
	if s.notifier == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	n := portssvc.PostingNotification{
		EventKind:   SourceKindPayrollRun,
		EventID:     runID,
		JournalID:   journal.JournalID,
		TotalAmount: journal.Amount,
	}
	if err := s.notifier.NotifyJournalPosted(ctx, n); err != nil {
		logger.Warn("Failed to enqueue posting notification",
			slog.String("run_id", runID), slog.String("error", err.Error()))
		return
	}
	metrics.NotificationsEnqueued.Inc()
}

func entrySpecsToRequests(specs []domain.EntrySpec) []dto.CreateEntryRequest {
	reqs := make([]dto.CreateEntryRequest, len(specs))
	for i, spec := range specs {
		reqs[i] = dto.CreateEntryRequest{
			AccountNumber: spec.AccountNumber,
			EntryType:     spec.EntryType,
			Amount:        spec.Amount,
			Memo:          spec.Memo,
		}
	}
	return reqs
}

// CreatePayrollRun registers an already-computed run with the ledger.
func (s *payrollService) CreatePayrollRun(ctx context.Context, req dto.CreatePayrollRunRequest, creatorUserID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	run := domain.PayrollRun{
		RunID:        uuid.NewString(),
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		PayFrequency: req.PayFrequency,
		Status:       domain.RunOpen,
		AuditFields:  audit,
	}

	if err := s.payrollRepo.SaveRun(ctx, run); err != nil {
		logger.Error("Failed to save payroll run", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payroll run: %w", err)
	}

	if len(req.Entries) > 0 {
		entries := make([]domain.PayrollRunEntry, len(req.Entries))
		for i, e := range req.Entries {
			entries[i] = domain.PayrollRunEntry{
				RunEntryID:      uuid.NewString(),
				RunID:           run.RunID,
				EmployeeID:      e.EmployeeID,
				EmployeeName:    e.EmployeeName,
				NetPay:          e.NetPay,
				PAYE:            e.PAYE,
				PensionEmployer: e.PensionEmployer,
				PensionEmployee: e.PensionEmployee,
				NHF:             e.NHF,
				Health:          e.Health,
				AllowanceTotal:  e.AllowanceTotal,
				DeductionTotal:  e.DeductionTotal,
				IOURecovery:     e.IOURecovery,
				AuditFields:     audit,
			}
		}
		if err := s.payrollRepo.SaveRunEntries(ctx, entries); err != nil {
			logger.Error("Failed to save payroll run entries", slog.String("error", err.Error()), slog.String("run_id", run.RunID))
			return nil, fmt.Errorf("failed to save run entries: %w", err)
		}
	}

	logger.Info("Payroll run created", slog.String("run_id", run.RunID), slog.Int("entry_count", len(req.Entries)))
	return &run, nil
}

// GetPayrollRun retrieves a payroll run by its identifier.
func (s *payrollService) GetPayrollRun(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	return s.payrollRepo.FindRunByID(ctx, runID)
}

// GetRunEntries retrieves a run's employee entries.
func (s *payrollService) GetRunEntries(ctx context.Context, runID string) ([]domain.PayrollRunEntry, error) {
	if _, err := s.payrollRepo.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}
	return s.payrollRepo.FindRunEntriesByRunID(ctx, runID)
}

// ListPayrollRuns retrieves payroll runs newest-first.
func (s *payrollService) ListPayrollRuns(ctx context.Context, limit int, offset int) ([]domain.PayrollRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.payrollRepo.ListRuns(ctx, limit, offset)
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)
