package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kudipay/payledger/internal/apperrors"
	"github.com/kudipay/payledger/internal/core/domain"
	portsrepo "github.com/kudipay/payledger/internal/core/ports/repositories"
	"github.com/kudipay/payledger/internal/models"
	"github.com/kudipay/payledger/internal/utils/mapping"
)

const accountColumns = `account_id, account_number, name, account_type, description, enforce_non_negative, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository persists the chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account. A duplicate account number surfaces as
// apperrors.ErrConflict.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.Name,
		m.AccountType,
		m.Description,
		m.EnforceNonNegative,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "account number "+m.AccountNumber+" already exists", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its internal identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, `WHERE account_id = $1`, accountID)
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return r.findAccount(ctx, `WHERE account_number = $1`, accountNumber)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ` + where + `;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByNumbers retrieves multiple accounts keyed by account number.
// Missing numbers are simply absent from the map; callers decide whether that
// is an error.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountNumbers))
	if len(accountNumbers) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by numbers", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts retrieves accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_number LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccount updates an account's mutable details. Account number and type
// are deliberately not touched here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2,
		    description = $3,
		    enforce_non_negative = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.EnforceNonNegative,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + m.AccountID + " not found for update")
	}
	return nil
}

// DeactivateAccount marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found for deactivation")
	}
	return nil
}

// HasEntries reports whether any journal entry references the account.
func (r *PgxAccountRepository) HasEntries(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE account_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check entries for account "+accountID, err)
	}
	return exists, nil
}

// postedBalanceQuery derives an account's running balance from the entry
// history of POSTED journals, signed by account type convention. The balance
// is never cached; this query is the single source of truth.
const postedBalanceQuery = `
	SELECT COALESCE(SUM(
		CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE -e.amount END *
		CASE WHEN a.account_type IN ('ASSET', 'EXPENSE') THEN 1 ELSE -1 END
	), 0)
	FROM journal_entries e
	JOIN journals j ON e.journal_id = j.journal_id
	JOIN accounts a ON e.account_id = a.account_id
	WHERE e.account_id = $1 AND j.status = 'POSTED' AND j.journal_date <= $2;
`

// PostedBalance computes the running balance as of the given date.
func (r *PgxAccountRepository) PostedBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, postedBalanceQuery, accountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return balance, nil
}

// PostedBalanceInTx computes the running balance inside the caller's
// transaction, so the balance guard sees its own journal's entries.
func (r *PgxAccountRepository) PostedBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, asOf time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, postedBalanceQuery, accountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return balance, nil
}

// LockAccountsForPosting selects the accounts FOR UPDATE in a stable order so
// concurrent postings touching the same accounts serialize instead of
// deadlocking.
func (r *PgxAccountRepository) LockAccountsForPosting(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for posting", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}

	for _, id := range ids {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewNotFoundError("account " + id + " not found for locking")
		}
	}
	return result, nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.Name,
		&m.AccountType,
		&m.Description,
		&m.EnforceNonNegative,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
