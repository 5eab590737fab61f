package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kudipay/payledger/internal/apperrors"
	"github.com/kudipay/payledger/internal/core/domain"
	portsrepo "github.com/kudipay/payledger/internal/core/ports/repositories"
	"github.com/kudipay/payledger/internal/models"
	"github.com/kudipay/payledger/internal/utils/mapping"
)

const runColumns = `run_id, period_start, period_end, pay_frequency, status, journal_id, created_at, created_by, last_updated_at, last_updated_by`

const runEntryColumns = `run_entry_id, run_id, employee_id, employee_name, net_pay, paye, pension_employer, pension_employee, nhf, health, allowance_total, deduction_total, iou_recovery, created_at, created_by, last_updated_at, last_updated_by`

// PgxPayrollRepository persists payroll runs and their employee entries.
type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll run data.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

// SaveRun persists a new payroll run.
func (r *PgxPayrollRepository) SaveRun(ctx context.Context, run domain.PayrollRun) error {
	m := mapping.ToModelPayrollRun(run)
	query := `
		INSERT INTO payroll_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RunID,
		m.PeriodStart,
		m.PeriodEnd,
		m.PayFrequency,
		m.Status,
		m.JournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "payroll run "+m.RunID+" already exists", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to save payroll run "+m.RunID, err)
	}
	return nil
}

// SaveRunEntries persists a run's employee entries.
func (r *PgxPayrollRepository) SaveRunEntries(ctx context.Context, entries []domain.PayrollRunEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO payroll_run_entries (` + runEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, entry := range entries {
		e := mapping.ToModelRunEntry(entry)
		batch.Queue(query,
			e.RunEntryID,
			e.RunID,
			e.EmployeeID,
			e.EmployeeName,
			e.NetPay,
			e.PAYE,
			e.PensionEmployer,
			e.PensionEmployee,
			e.NHF,
			e.Health,
			e.AllowanceTotal,
			e.DeductionTotal,
			e.IOURecovery,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to save payroll run entries", err)
		}
	}
	return nil
}

// FindRunByID retrieves a payroll run by its identifier.
func (r *PgxPayrollRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE run_id = $1;`
	m, err := scanRun(r.Pool.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll run "+runID, err)
	}
	run := mapping.ToDomainPayrollRun(m)
	return &run, nil
}

// FindRunEntriesByRunID retrieves a run's employee entries.
func (r *PgxPayrollRepository) FindRunEntriesByRunID(ctx context.Context, runID string) ([]domain.PayrollRunEntry, error) {
	rows, err := r.Pool.Query(ctx, runEntriesQuery, runID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for run "+runID, err)
	}
	return collectRunEntries(rows)
}

const runEntriesQuery = `SELECT ` + runEntryColumns + ` FROM payroll_run_entries WHERE run_id = $1 ORDER BY employee_id;`

// FindRunEntriesInTx retrieves a run's employee entries inside tx.
func (r *PgxPayrollRepository) FindRunEntriesInTx(ctx context.Context, tx pgx.Tx, runID string) ([]domain.PayrollRunEntry, error) {
	rows, err := tx.Query(ctx, runEntriesQuery, runID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for run "+runID, err)
	}
	return collectRunEntries(rows)
}

// ListRuns retrieves payroll runs newest-first.
func (r *PgxPayrollRepository) ListRuns(ctx context.Context, limit int, offset int) ([]domain.PayrollRun, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs ORDER BY period_end DESC, created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payroll runs", err)
	}
	defer rows.Close()

	runs := []domain.PayrollRun{}
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll run row", err)
		}
		runs = append(runs, mapping.ToDomainPayrollRun(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll run rows", err)
	}
	return runs, nil
}

// ClaimRunForCloseInTx locks the run row FOR UPDATE and, when still OPEN,
// moves it to CLOSING. The CLOSING state exists only inside the transaction;
// a rollback reverts the run to OPEN.
func (r *PgxPayrollRepository) ClaimRunForCloseInTx(ctx context.Context, tx pgx.Tx, runID string) (*domain.PayrollRun, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE run_id = $1 FOR UPDATE;`
	m, err := scanRun(tx.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock payroll run "+runID, err)
	}

	if m.Status == string(domain.RunOpen) {
		update := `UPDATE payroll_runs SET status = $2 WHERE run_id = $1;`
		if _, err := tx.Exec(ctx, update, runID, string(domain.RunClosing)); err != nil {
			return nil, apperrors.NewAppError(500, "failed to claim payroll run "+runID, err)
		}
		m.Status = string(domain.RunClosing)
	}

	run := mapping.ToDomainPayrollRun(m)
	return &run, nil
}

// MarkRunClosedInTx transitions the run to CLOSED and records its journal.
func (r *PgxPayrollRepository) MarkRunClosedInTx(ctx context.Context, tx pgx.Tx, runID string, journalID *string, userID string, now time.Time) error {
	query := `
		UPDATE payroll_runs
		SET status = $2, journal_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE run_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, runID, string(domain.RunClosed), journalID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close payroll run "+runID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payroll run " + runID + " not found for close")
	}
	return nil
}

func collectRunEntries(rows pgx.Rows) ([]domain.PayrollRunEntry, error) {
	defer rows.Close()

	entries := []models.PayrollRunEntry{}
	for rows.Next() {
		var e models.PayrollRunEntry
		err := rows.Scan(
			&e.RunEntryID,
			&e.RunID,
			&e.EmployeeID,
			&e.EmployeeName,
			&e.NetPay,
			&e.PAYE,
			&e.PensionEmployer,
			&e.PensionEmployee,
			&e.NHF,
			&e.Health,
			&e.AllowanceTotal,
			&e.DeductionTotal,
			&e.IOURecovery,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll run entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll run entry rows", err)
	}
	return mapping.ToDomainRunEntrySlice(entries), nil
}

func scanRun(row pgx.Row) (models.PayrollRun, error) {
	var m models.PayrollRun
	err := row.Scan(
		&m.RunID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.PayFrequency,
		&m.Status,
		&m.JournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
