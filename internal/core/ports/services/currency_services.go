package services

import (
	"context"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
)

// CurrencySvcFacade defines operations for currency reference data
type CurrencySvcFacade interface {
	// CreateCurrency registers a new supported currency.
	CreateCurrency(ctx context.Context, opCtx domain.OperationContext, req dto.CreateCurrencyRequest) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
