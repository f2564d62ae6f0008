package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
)

// currencyService manages currency reference data.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new supported currency.
func (s *currencyService) CreateCurrency(ctx context.Context, opCtx domain.OperationContext, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields:  domain.NewAuditFields(opCtx),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, req.CurrencyCode)
		}
		logger.Error("Failed to save currency", slog.String("error", err.Error()), slog.String("code", req.CurrencyCode))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	logger.Info("Currency created", slog.String("code", currency.CurrencyCode))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all supported currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
