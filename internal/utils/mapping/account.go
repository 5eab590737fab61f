package mapping

import (
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/models"
)

// ToModelAccount converts a domain Account to its storage model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		AccountNumber:      d.AccountNumber,
		Name:               d.Name,
		AccountType:        string(d.AccountType),
		Description:        d.Description,
		EnforceNonNegative: d.EnforceNonNegative,
		IsActive:           d.IsActive,
		AuditFields:        toModelAudit(d.AuditFields),
	}
}

// ToDomainAccount converts a storage model Account to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		AccountNumber:      m.AccountNumber,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		Description:        m.Description,
		EnforceNonNegative: m.EnforceNonNegative,
		IsActive:           m.IsActive,
		AuditFields:        toDomainAudit(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
