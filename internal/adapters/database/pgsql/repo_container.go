package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kudipay/payledger/internal/core/ports/repositories"
)

// RepositoryContainer holds all pgx-backed repository implementations.
type RepositoryContainer struct {
	Account portsrepo.AccountRepositoryFacade
	Journal portsrepo.JournalRepositoryWithTx
	Payroll portsrepo.PayrollRepositoryFacade
}

// NewRepositoryContainer wires the repositories over one connection pool. The
// journal repository borrows the account repository's locking and balance
// queries for its posting-time guard.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	accountRepo := newPgxAccountRepository(pool)
	return &RepositoryContainer{
		Account: accountRepo,
		Journal: newPgxJournalRepository(pool, accountRepo),
		Payroll: newPgxPayrollRepository(pool),
	}
}
