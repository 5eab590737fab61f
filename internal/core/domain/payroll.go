package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus is the lifecycle of a payroll run with respect to the ledger.
// OPEN runs accept changes; CLOSING is transient while the journal is being
// posted; CLOSED runs are immutable and carry their journal reference.
type RunStatus string

const (
	RunOpen    RunStatus = "OPEN"
	RunClosing RunStatus = "CLOSING"
	RunClosed  RunStatus = "CLOSED"
)

// PayFrequency determines how annual statutory amounts are scaled per period.
type PayFrequency string

const (
	Weekly    PayFrequency = "WEEKLY"
	Biweekly  PayFrequency = "BIWEEKLY"
	Monthly   PayFrequency = "MONTHLY"
	Quarterly PayFrequency = "QUARTERLY"
	Annually  PayFrequency = "ANNUALLY"
)

// PeriodsPerYear returns the number of pay periods in a year for the frequency.
// Unknown frequencies fall back to monthly.
func (f PayFrequency) PeriodsPerYear() int64 {
	switch f {
	case Weekly:
		return 52
	case Biweekly:
		return 26
	case Quarterly:
		return 4
	case Annually:
		return 1
	default:
		return 12
	}
}

// PayrollRun is the business event the ledger bridge consumes. Gross/net
// computation happens upstream; the run arrives with final figures.
type PayrollRun struct {
	RunID        string       `json:"runID"` // Primary Key (UUID)
	PeriodStart  time.Time    `json:"periodStart"`
	PeriodEnd    time.Time    `json:"periodEnd"`
	PayFrequency PayFrequency `json:"payFrequency"`
	Status       RunStatus    `json:"status"`
	// JournalID is set when the run is closed with a posted journal. A run
	// closed with no eligible participants has no journal.
	JournalID *string `json:"journalID,omitempty"`
	AuditFields
}

// PayrollRunEntry holds one employee's final monetary figures for the period.
// Statutory contributions (pension, NHF, health) are annual amounts and are
// scaled by the run's pay frequency when posted.
type PayrollRunEntry struct {
	RunEntryID      string          `json:"runEntryID"` // Primary Key (UUID)
	RunID           string          `json:"runID"`      // FK -> PayrollRun
	EmployeeID      string          `json:"employeeID"`
	EmployeeName    string          `json:"employeeName"`
	NetPay          decimal.Decimal `json:"netPay"`
	PAYE            decimal.Decimal `json:"paye"`
	PensionEmployer decimal.Decimal `json:"pensionEmployer"` // annual
	PensionEmployee decimal.Decimal `json:"pensionEmployee"` // annual
	NHF             decimal.Decimal `json:"nhf"`             // annual
	Health          decimal.Decimal `json:"health"`          // annual
	AllowanceTotal  decimal.Decimal `json:"allowanceTotal"`
	DeductionTotal  decimal.Decimal `json:"deductionTotal"`  // misc deductions, excl. IOU recoveries
	IOURecovery     decimal.Decimal `json:"iouRecovery"`     // advance repayments this period
	AuditFields
}
