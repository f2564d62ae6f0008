package services

import (
	"context"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
)

// AccountReaderSvc defines read operations of the account registry
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs, keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindByCode retrieves an account by display code ("152" or "152-2").
	FindByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, opCtx domain.OperationContext, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountClassifierSvc exposes the settlement classification of accounts
type AccountClassifierSvc interface {
	// Classify derives the settlement class from the account's base code
	// digit and its needs-offset flag. Pure; no side effects.
	Classify(account domain.Account) domain.AccountClass

	// CashAccount resolves the designated cash account used for implicit
	// cash-leg synthesis.
	CashAccount(ctx context.Context) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountClassifierSvc
}
