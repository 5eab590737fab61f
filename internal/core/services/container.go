package services

import (
	"github.com/kudipay/payledger/internal/adapters/database/pgsql"
	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
)

// NewServiceContainer wires the service layer over the repository container.
func NewServiceContainer(repos *pgsql.RepositoryContainer, accounts PostingAccounts, notifier portssvc.PostingNotifier) (*portssvc.ServiceContainer, error) {
	accountSvc := NewAccountService(repos.Account)
	journalSvc := NewJournalService(repos.Journal, accountSvc)
	payrollSvc, err := NewPayrollService(repos.Journal, repos.Payroll, journalSvc, accounts, notifier)
	if err != nil {
		return nil, err
	}
	return &portssvc.ServiceContainer{
		Account: accountSvc,
		Journal: journalSvc,
		Payroll: payrollSvc,
	}, nil
}
