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
	"github.com/kudipay/payledger/internal/utils/pagination"
)

const journalColumns = `journal_id, journal_date, description, status, source_kind, source_id, amount, original_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, journal_id, account_id, entry_type, amount, memo, created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository persists journals and their entries. Posting-time
// account locking and balance checks are delegated to the account adapter so
// both share one definition of the history-derived balance.
type PgxJournalRepository struct {
	BaseRepository
	accounts portsrepo.AccountPostingSupport
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool, accounts portsrepo.AccountPostingSupport) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accounts:       accounts,
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournalInTx persists a journal header and its entries inside tx. When
// the journal is POSTED the entries become part of account history the moment
// the transaction commits, so the non-negative balance guard runs here, after
// the inserts, under FOR UPDATE account locks.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, entries []domain.JournalEntry) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.JournalDate,
		m.Description,
		m.Status,
		m.SourceKind,
		m.SourceID,
		m.Amount,
		m.OriginalJournalID,
		m.ReversingJournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		// The partial unique index on (source_kind, source_id) is the only
		// unique constraint an insert here can trip besides the primary key.
		if isUniqueViolation(err) && m.SourceKind != nil {
			return apperrors.ErrDuplicatePosting
		}
		return apperrors.NewAppError(500, "failed to save journal "+m.JournalID, err)
	}

	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}

	if journal.Status == domain.Posted {
		return r.checkBalanceGuard(ctx, tx, journal.JournalDate, entries)
	}
	return nil
}

// PostJournalInTx transitions a DRAFT journal to POSTED inside tx and
// re-runs the balance guard against its entries.
func (r *PgxJournalRepository) PostJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, entries []domain.JournalEntry, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, journal.JournalID, string(domain.Posted), now, userID, string(domain.Draft))
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal "+journal.JournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal "+journal.JournalID+" is not in DRAFT status", apperrors.ErrConflict)
	}
	return r.checkBalanceGuard(ctx, tx, journal.JournalDate, entries)
}

func (r *PgxJournalRepository) insertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, entry := range entries {
		e := mapping.ToModelEntry(entry)
		batch.Queue(query,
			e.EntryID,
			e.JournalID,
			e.AccountID,
			e.EntryType,
			e.Amount,
			e.Memo,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to save journal entries", err)
		}
	}
	return nil
}

// checkBalanceGuard locks the touched accounts and recomputes each balance-
// constrained account's history-derived balance as of the journal date, with
// the new entries already inserted. Any negative result fails the whole
// transaction.
func (r *PgxJournalRepository) checkBalanceGuard(ctx context.Context, tx pgx.Tx, journalDate time.Time, entries []domain.JournalEntry) error {
	seen := make(map[string]struct{}, len(entries))
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}
		accountIDs = append(accountIDs, e.AccountID)
	}

	locked, err := r.accounts.LockAccountsForPosting(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	for _, id := range accountIDs {
		account := locked[id]
		if !account.IsBalanceConstrained() {
			continue
		}
		balance, err := r.accounts.PostedBalanceInTx(ctx, tx, id, journalDate)
		if err != nil {
			return err
		}
		if balance.IsNegative() {
			return apperrors.NewAppError(422,
				"posting would overdraw account "+account.AccountNumber+" to "+balance.StringFixed(2),
				apperrors.ErrInsufficientBalance)
		}
	}
	return nil
}

// FindJournalByID retrieves a journal header by its identifier.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// FindJournalBySourceRef retrieves the journal attached to a business event.
func (r *PgxJournalRepository) FindJournalBySourceRef(ctx context.Context, ref domain.SourceReference) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE source_kind = $1 AND source_id = $2 AND status <> $3;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, ref.Kind, ref.ID, string(domain.Void)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal for "+ref.Kind+"/"+ref.ID, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves journals newest-first using (journal_date,
// created_at) cursor pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + journalColumns + ` FROM journals`
	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (journal_date, created_at) < ($2, $3)`
		args = append(args, journalDate, createdAt)
	}
	query += ` ORDER BY journal_date DESC, created_at DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journals", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	var token *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		t := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &t
	}
	return journals, token, nil
}

// FindEntriesByJournalID retrieves a journal's entries in creation order.
func (r *PgxJournalRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE journal_id = $1 ORDER BY created_at, entry_id;`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for journal "+journalID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		err := rows.Scan(
			&e.EntryID,
			&e.JournalID,
			&e.AccountID,
			&e.EntryType,
			&e.Amount,
			&e.Memo,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// UpdateJournalStatus updates a journal's status.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, journalID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journalID + " not found for update")
	}
	return nil
}

// LinkReversalInTx records the reversal back-link on the original journal
// inside tx. The guard on reversing_journal_id makes the second of two racing
// reversals hit zero rows and abort, so an original can never end up reversed
// twice.
func (r *PgxJournalRepository) LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalJournalID string, reversingJournalID string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journals
		SET reversing_journal_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1 AND status = $5 AND reversing_journal_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, originalJournalID, reversingJournalID, updatedAt, updatedByUserID, string(domain.Posted))
	if err != nil {
		return apperrors.NewAppError(500, "failed to link reversal for journal "+originalJournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal "+originalJournalID+" is already reversed or not POSTED", apperrors.ErrConflict)
	}
	return nil
}

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Description,
		&m.Status,
		&m.SourceKind,
		&m.SourceID,
		&m.Amount,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
