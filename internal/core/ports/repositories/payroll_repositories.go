package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kudipay/payledger/internal/core/domain"
)

// PayrollRunReader defines read operations for payroll run data.
type PayrollRunReader interface {
	// FindRunByID retrieves a payroll run by its identifier.
	FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// FindRunEntriesByRunID retrieves a run's employee entries in stable
	// (employee_id) order.
	FindRunEntriesByRunID(ctx context.Context, runID string) ([]domain.PayrollRunEntry, error)

	// ListRuns retrieves payroll runs newest-first.
	ListRuns(ctx context.Context, limit int, offset int) ([]domain.PayrollRun, error)
}

// PayrollRunWriter defines write operations for payroll run data.
type PayrollRunWriter interface {
	// SaveRun persists a new payroll run.
	SaveRun(ctx context.Context, run domain.PayrollRun) error

	// SaveRunEntries persists a run's employee entries.
	SaveRunEntries(ctx context.Context, entries []domain.PayrollRunEntry) error
}

// PayrollCloseSupport defines the operations the close path uses inside the
// posting transaction.
type PayrollCloseSupport interface {
	// ClaimRunForCloseInTx locks the run row FOR UPDATE inside tx and returns
	// its current state. Concurrent close attempts on the same run serialize
	// here; the loser re-reads a CLOSED run.
	ClaimRunForCloseInTx(ctx context.Context, tx pgx.Tx, runID string) (*domain.PayrollRun, error)

	// FindRunEntriesInTx reads the run's employee entries inside tx so the
	// derived journal reflects the figures at the moment of closing.
	FindRunEntriesInTx(ctx context.Context, tx pgx.Tx, runID string) ([]domain.PayrollRunEntry, error)

	// MarkRunClosedInTx transitions the run to CLOSED inside tx and stores the
	// journal reference (nil for a zero-participant close).
	MarkRunClosedInTx(ctx context.Context, tx pgx.Tx, runID string, journalID *string, userID string, now time.Time) error
}

// PayrollRepositoryFacade combines all payroll repository interfaces.
type PayrollRepositoryFacade interface {
	PayrollRunReader
	PayrollRunWriter
	PayrollCloseSupport
}
