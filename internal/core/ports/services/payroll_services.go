package services

import (
	"context"

	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/dto"
)

// CloseRunResult is the outcome of a close request.
type CloseRunResult struct {
	Run *domain.PayrollRun
	// Journal is nil when the run closed with no eligible participants.
	Journal *domain.Journal
	// AlreadyClosed marks an idempotence hit: the run was CLOSED before this
	// request and the stored journal is returned unchanged.
	AlreadyClosed bool
	// NoOp marks a close that produced no journal.
	NoOp bool
}

// PayrollSvcFacade is the event-to-ledger bridge for payroll runs.
type PayrollSvcFacade interface {
	// ClosePayrollRun drives OPEN -> CLOSING -> CLOSED: derives entries from
	// the run's final figures, posts one journal for the whole run, and
	// attaches the journal reference to the run, all in one atomic unit.
	// Re-closing a CLOSED run returns the existing journal without
	// recomputation. Any posting failure leaves the run OPEN.
	ClosePayrollRun(ctx context.Context, runID string, userID string) (*CloseRunResult, error)

	CreatePayrollRun(ctx context.Context, req dto.CreatePayrollRunRequest, creatorUserID string) (*domain.PayrollRun, error)
	GetPayrollRun(ctx context.Context, runID string) (*domain.PayrollRun, error)
	GetRunEntries(ctx context.Context, runID string) ([]domain.PayrollRunEntry, error)
	ListPayrollRuns(ctx context.Context, limit int, offset int) ([]domain.PayrollRun, error)
}
