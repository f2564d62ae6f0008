package services

import (
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
)

// ContainerConfig carries the knobs the service layer needs beyond its
// repositories.
type ContainerConfig struct {
	// CashAccountCodeBase designates the account used for implicit cash
	// legs in cash receipt/disbursement entries.
	CashAccountCodeBase int
}

// NewServiceContainer wires all services from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo, cfg.CashAccountCodeBase)
	currencySvc := NewCurrencyService(repos.CurrencyRepo)

	return &portssvc.ServiceContainer{
		Account:      accountSvc,
		Currency:     currencySvc,
		JournalEntry: NewJournalEntryService(repos.JournalEntryRepo, accountSvc, currencySvc),
		Sequence:     NewSequenceService(repos.JournalEntryRepo),
		OffsetMatch:  NewOffsetMatcherService(repos.JournalEntryRepo, accountSvc),
	}
}
