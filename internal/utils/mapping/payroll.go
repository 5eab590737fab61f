package mapping

import (
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/models"
)

// ToDomainPayrollRun converts a storage model PayrollRun to the domain type.
func ToDomainPayrollRun(m models.PayrollRun) domain.PayrollRun {
	return domain.PayrollRun{
		RunID:        m.RunID,
		PeriodStart:  m.PeriodStart,
		PeriodEnd:    m.PeriodEnd,
		PayFrequency: domain.PayFrequency(m.PayFrequency),
		Status:       domain.RunStatus(m.Status),
		JournalID:    m.JournalID,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToModelPayrollRun converts a domain PayrollRun to its storage model.
func ToModelPayrollRun(d domain.PayrollRun) models.PayrollRun {
	return models.PayrollRun{
		RunID:        d.RunID,
		PeriodStart:  d.PeriodStart,
		PeriodEnd:    d.PeriodEnd,
		PayFrequency: string(d.PayFrequency),
		Status:       string(d.Status),
		JournalID:    d.JournalID,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainRunEntry converts a storage model PayrollRunEntry to the domain type.
func ToDomainRunEntry(m models.PayrollRunEntry) domain.PayrollRunEntry {
	return domain.PayrollRunEntry{
		RunEntryID:      m.RunEntryID,
		RunID:           m.RunID,
		EmployeeID:      m.EmployeeID,
		EmployeeName:    m.EmployeeName,
		NetPay:          m.NetPay,
		PAYE:            m.PAYE,
		PensionEmployer: m.PensionEmployer,
		PensionEmployee: m.PensionEmployee,
		NHF:             m.NHF,
		Health:          m.Health,
		AllowanceTotal:  m.AllowanceTotal,
		DeductionTotal:  m.DeductionTotal,
		IOURecovery:     m.IOURecovery,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToModelRunEntry converts a domain PayrollRunEntry to its storage model.
func ToModelRunEntry(d domain.PayrollRunEntry) models.PayrollRunEntry {
	return models.PayrollRunEntry{
		RunEntryID:      d.RunEntryID,
		RunID:           d.RunID,
		EmployeeID:      d.EmployeeID,
		EmployeeName:    d.EmployeeName,
		NetPay:          d.NetPay,
		PAYE:            d.PAYE,
		PensionEmployer: d.PensionEmployer,
		PensionEmployee: d.PensionEmployee,
		NHF:             d.NHF,
		Health:          d.Health,
		AllowanceTotal:  d.AllowanceTotal,
		DeductionTotal:  d.DeductionTotal,
		IOURecovery:     d.IOURecovery,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainRunEntrySlice converts model run entries to domain run entries.
func ToDomainRunEntrySlice(ms []models.PayrollRunEntry) []domain.PayrollRunEntry {
	ds := make([]domain.PayrollRunEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRunEntry(m)
	}
	return ds
}
