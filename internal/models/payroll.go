package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRun is the storage representation of a payroll run event.
type PayrollRun struct {
	RunID        string    `db:"run_id"`
	PeriodStart  time.Time `db:"period_start"`
	PeriodEnd    time.Time `db:"period_end"`
	PayFrequency string    `db:"pay_frequency"`
	Status       string    `db:"status"`
	JournalID    *string   `db:"journal_id"`
	AuditFields
}

// PayrollRunEntry is the storage representation of one employee's figures.
type PayrollRunEntry struct {
	RunEntryID      string          `db:"run_entry_id"`
	RunID           string          `db:"run_id"`
	EmployeeID      string          `db:"employee_id"`
	EmployeeName    string          `db:"employee_name"`
	NetPay          decimal.Decimal `db:"net_pay"`
	PAYE            decimal.Decimal `db:"paye"`
	PensionEmployer decimal.Decimal `db:"pension_employer"`
	PensionEmployee decimal.Decimal `db:"pension_employee"`
	NHF             decimal.Decimal `db:"nhf"`
	Health          decimal.Decimal `db:"health"`
	AllowanceTotal  decimal.Decimal `db:"allowance_total"`
	DeductionTotal  decimal.Decimal `db:"deduction_total"`
	IOURecovery     decimal.Decimal `db:"iou_recovery"`
	AuditFields
}
