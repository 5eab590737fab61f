package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its internal identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its stable account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by account number.
	FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by account number.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// HasEntries reports whether any journal entry references the account.
	HasEntries(ctx context.Context, accountID string) (bool, error)

	// PostedBalance computes the account's running balance from the entry
	// history of POSTED journals dated at or before asOf, signed by account
	// type convention. The balance is always derived, never cached.
	PostedBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountPostingSupport defines operations the posting path uses inside a
// storage transaction.
type AccountPostingSupport interface {
	// LockAccountsForPosting selects the given accounts FOR UPDATE inside tx,
	// serializing concurrent postings that touch the same accounts.
	LockAccountsForPosting(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// PostedBalanceInTx is PostedBalance evaluated inside tx, so the guard
	// reads the same snapshot the posting writes into.
	PostedBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountPostingSupport
}
