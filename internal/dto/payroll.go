package dto

import (
	"time"

	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRunEntryRequest is one employee's final figures for a payroll run.
// Statutory contributions are annual amounts; the posting rules scale them.
type CreateRunEntryRequest struct {
	EmployeeID      string          `json:"employeeID" binding:"required"`
	EmployeeName    string          `json:"employeeName"`
	NetPay          decimal.Decimal `json:"netPay"`
	PAYE            decimal.Decimal `json:"paye"`
	PensionEmployer decimal.Decimal `json:"pensionEmployer"`
	PensionEmployee decimal.Decimal `json:"pensionEmployee"`
	NHF             decimal.Decimal `json:"nhf"`
	Health          decimal.Decimal `json:"health"`
	AllowanceTotal  decimal.Decimal `json:"allowanceTotal"`
	DeductionTotal  decimal.Decimal `json:"deductionTotal"`
	IOURecovery     decimal.Decimal `json:"iouRecovery"`
}

// CreatePayrollRunRequest registers an already-computed payroll run with the
// ledger so it can later be closed.
type CreatePayrollRunRequest struct {
	PeriodStart  time.Time               `json:"periodStart" binding:"required"`
	PeriodEnd    time.Time               `json:"periodEnd" binding:"required"`
	PayFrequency domain.PayFrequency     `json:"payFrequency" binding:"required,oneof=WEEKLY BIWEEKLY MONTHLY QUARTERLY ANNUALLY"`
	Entries      []CreateRunEntryRequest `json:"entries" binding:"dive"`
}

// PayrollRunResponse is the API representation of a payroll run.
type PayrollRunResponse struct {
	RunID        string              `json:"runID"`
	PeriodStart  time.Time           `json:"periodStart"`
	PeriodEnd    time.Time           `json:"periodEnd"`
	PayFrequency domain.PayFrequency `json:"payFrequency"`
	Status       domain.RunStatus    `json:"status"`
	JournalID    *string             `json:"journalID,omitempty"`
}

// RunEntryResponse is the API representation of one employee's run figures.
type RunEntryResponse struct {
	RunEntryID      string          `json:"runEntryID"`
	EmployeeID      string          `json:"employeeID"`
	EmployeeName    string          `json:"employeeName,omitempty"`
	NetPay          decimal.Decimal `json:"netPay"`
	PAYE            decimal.Decimal `json:"paye"`
	PensionEmployer decimal.Decimal `json:"pensionEmployer"`
	PensionEmployee decimal.Decimal `json:"pensionEmployee"`
	NHF             decimal.Decimal `json:"nhf"`
	Health          decimal.Decimal `json:"health"`
	AllowanceTotal  decimal.Decimal `json:"allowanceTotal"`
	DeductionTotal  decimal.Decimal `json:"deductionTotal"`
	IOURecovery     decimal.Decimal `json:"iouRecovery"`
}

// ToRunEntryResponse converts a domain PayrollRunEntry to its API representation.
func ToRunEntryResponse(e *domain.PayrollRunEntry) RunEntryResponse {
	return RunEntryResponse{
		RunEntryID:      e.RunEntryID,
		EmployeeID:      e.EmployeeID,
		EmployeeName:    e.EmployeeName,
		NetPay:          e.NetPay,
		PAYE:            e.PAYE,
		PensionEmployer: e.PensionEmployer,
		PensionEmployee: e.PensionEmployee,
		NHF:             e.NHF,
		Health:          e.Health,
		AllowanceTotal:  e.AllowanceTotal,
		DeductionTotal:  e.DeductionTotal,
		IOURecovery:     e.IOURecovery,
	}
}

// CloseRunResponse is the result of a close request. AlreadyClosed marks an
// idempotence hit; NoOp marks a zero-participant close with no journal.
type CloseRunResponse struct {
	Run           PayrollRunResponse `json:"run"`
	Journal       *JournalResponse   `json:"journal,omitempty"`
	AlreadyClosed bool               `json:"alreadyClosed"`
	NoOp          bool               `json:"noOp"`
}

// ToPayrollRunResponse converts a domain PayrollRun to its API representation.
func ToPayrollRunResponse(r *domain.PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		RunID:        r.RunID,
		PeriodStart:  r.PeriodStart,
		PeriodEnd:    r.PeriodEnd,
		PayFrequency: r.PayFrequency,
		Status:       r.Status,
		JournalID:    r.JournalID,
	}
}
