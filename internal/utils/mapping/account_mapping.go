package mapping

import (
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/daybookhq/bookkeeping_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		CodeBase:     d.CodeBase,
		CodeSeq:      d.CodeSeq,
		Name:         d.Name,
		IsNeedOffset: d.IsNeedOffset,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		CodeBase:     m.CodeBase,
		CodeSeq:      m.CodeSeq,
		Name:         m.Name,
		IsNeedOffset: m.IsNeedOffset,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
