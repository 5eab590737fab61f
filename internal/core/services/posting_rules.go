package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/utils/accounting"
)

// PostingAccounts names the chart-of-accounts targets of payroll postings.
// It is explicit configuration handed to the bridge at construction time,
// never ambient state.
type PostingAccounts struct {
	SalaryExpense    string // EXPENSE: full employer cost
	CashBank         string // ASSET: net pay disbursement
	PAYEPayable      string // LIABILITY: income tax withheld
	PensionPayable   string // LIABILITY: employer and withheld employee pension
	NHFPayable       string // LIABILITY: national housing fund
	HealthPayable    string // LIABILITY: employee health contribution
	OtherDeductions  string // LIABILITY: misc deductions withheld
	EmployeeAdvances string // ASSET: IOU receivable, reduced by recoveries
}

// Validate checks that every posting target is configured.
func (p PostingAccounts) Validate() error {
	targets := map[string]string{
		"salary expense":    p.SalaryExpense,
		"cash/bank":         p.CashBank,
		"PAYE payable":      p.PAYEPayable,
		"pension payable":   p.PensionPayable,
		"NHF payable":       p.NHFPayable,
		"health payable":    p.HealthPayable,
		"other deductions":  p.OtherDeductions,
		"employee advances": p.EmployeeAdvances,
	}
	for name, number := range targets {
		if number == "" {
			return fmt.Errorf("posting account for %s is not configured", name)
		}
	}
	return nil
}

// employerCost is the per-employee breakdown the rule engine works from, with
// every component already quantized and statutory amounts scaled per period.
type employerCost struct {
	net      decimal.Decimal
	paye     decimal.Decimal
	pension  decimal.Decimal
	nhf      decimal.Decimal
	health   decimal.Decimal
	misc     decimal.Decimal
	recovery decimal.Decimal
}

func (c employerCost) total() decimal.Decimal {
	return c.net.Add(c.paye).Add(c.pension).Add(c.nhf).Add(c.health).Add(c.misc).Add(c.recovery)
}

// DeriveRunEntries maps a payroll run's final figures to the ordered entry
// specs of one journal covering the whole run. The mapping is deterministic:
// employees in run-entry order within each group, groups emitted as salary
// expense debits, then the cash disbursement credits, then liability credits
// (PAYE, pension, NHF, health, other deductions), then asset credits
// (employee advances). Each employee's expense debit is the sum of every
// credit raised for that employee, so the journal balances by construction.
// Employees whose figures are all zero contribute nothing; an empty result
// means no journal should be created.
func DeriveRunEntries(run domain.PayrollRun, runEntries []domain.PayrollRunEntry, accounts PostingAccounts) []domain.EntrySpec {
	periods := run.PayFrequency.PeriodsPerYear()

	var (
		expenseDebits []domain.EntrySpec
		cashCredits   []domain.EntrySpec
		payeCredits   []domain.EntrySpec
		pensionCreds  []domain.EntrySpec
		nhfCredits    []domain.EntrySpec
		healthCredits []domain.EntrySpec
		miscCredits   []domain.EntrySpec
		advanceCreds  []domain.EntrySpec
	)

	for _, e := range runEntries {
		// Both pension shares land on the same payable: the employer share is
		// a cost on top, the employee share was withheld from gross and owed
		// to the same fund.
		cost := employerCost{
			net:      accounting.Quantize(e.NetPay),
			paye:     accounting.Quantize(e.PAYE),
			pension:  accounting.PerPeriod(e.PensionEmployer, periods).Add(accounting.PerPeriod(e.PensionEmployee, periods)),
			nhf:      accounting.PerPeriod(e.NHF, periods),
			health:   accounting.PerPeriod(e.Health, periods),
			misc:     accounting.Quantize(e.DeductionTotal),
			recovery: accounting.Quantize(e.IOURecovery),
		}

		total := cost.total()
		if total.IsZero() {
			continue
		}

		who := e.EmployeeName
		if who == "" {
			who = e.EmployeeID
		}

		expenseDebits = append(expenseDebits, domain.EntrySpec{
			AccountNumber: accounts.SalaryExpense,
			EntryType:     domain.Debit,
			Amount:        total,
			Memo:          fmt.Sprintf("Salary cost - %s", who),
		})
		if cost.net.IsPositive() {
			cashCredits = append(cashCredits, domain.EntrySpec{
				AccountNumber: accounts.CashBank,
				EntryType:     domain.Credit,
				Amount:        cost.net,
				Memo:          fmt.Sprintf("Net pay - %s", who),
			})
		}
		if cost.paye.IsPositive() {
			payeCredits = append(payeCredits, domain.EntrySpec{
				AccountNumber: accounts.PAYEPayable,
				EntryType:     domain.Credit,
				Amount:        cost.paye,
				Memo:          fmt.Sprintf("PAYE withheld - %s", who),
			})
		}
		if cost.pension.IsPositive() {
			pensionCreds = append(pensionCreds, domain.EntrySpec{
				AccountNumber: accounts.PensionPayable,
				EntryType:     domain.Credit,
				Amount:        cost.pension,
				Memo:          fmt.Sprintf("Pension contribution - %s", who),
			})
		}
		if cost.nhf.IsPositive() {
			nhfCredits = append(nhfCredits, domain.EntrySpec{
				AccountNumber: accounts.NHFPayable,
				EntryType:     domain.Credit,
				Amount:        cost.nhf,
				Memo:          fmt.Sprintf("NHF contribution - %s", who),
			})
		}
		if cost.health.IsPositive() {
			healthCredits = append(healthCredits, domain.EntrySpec{
				AccountNumber: accounts.HealthPayable,
				EntryType:     domain.Credit,
				Amount:        cost.health,
				Memo:          fmt.Sprintf("Health contribution - %s", who),
			})
		}
		if cost.misc.IsPositive() {
			miscCredits = append(miscCredits, domain.EntrySpec{
				AccountNumber: accounts.OtherDeductions,
				EntryType:     domain.Credit,
				Amount:        cost.misc,
				Memo:          fmt.Sprintf("Deductions withheld - %s", who),
			})
		}
		if cost.recovery.IsPositive() {
			advanceCreds = append(advanceCreds, domain.EntrySpec{
				AccountNumber: accounts.EmployeeAdvances,
				EntryType:     domain.Credit,
				Amount:        cost.recovery,
				Memo:          fmt.Sprintf("Advance recovery - %s", who),
			})
		}
	}

	specs := make([]domain.EntrySpec, 0,
		len(expenseDebits)+len(cashCredits)+len(payeCredits)+len(pensionCreds)+
			len(nhfCredits)+len(healthCredits)+len(miscCredits)+len(advanceCreds))
	specs = append(specs, expenseDebits...)
	specs = append(specs, cashCredits...)
	specs = append(specs, payeCredits...)
	specs = append(specs, pensionCreds...)
	specs = append(specs, nhfCredits...)
	specs = append(specs, healthCredits...)
	specs = append(specs, miscCredits...)
	specs = append(specs, advanceCreds...)
	return specs
}
