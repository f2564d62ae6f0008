package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
)

var (
	ErrAccountCodeInvalid = errors.New("account code is invalid")
	ErrCashAccountMissing = errors.New("designated cash account is not registered")
)

// accountService is the account registry: lookup and settlement
// classification of accounts.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	cashCodeBase int
}

// NewAccountService creates a new account service. cashCodeBase is the
// base code of the account used for implicit cash legs.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, cashCodeBase int) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		cashCodeBase: cashCodeBase,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after validating its code shape.
func (s *accountService) CreateAccount(ctx context.Context, opCtx domain.OperationContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	base, seq, err := domain.ParseAccountCode(req.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountCodeInvalid, req.Code)
	}

	account := domain.Account{
		AccountID:    uuid.NewString(),
		CodeBase:     base,
		CodeSeq:      seq,
		Name:         req.Name,
		IsNeedOffset: req.IsNeedOffset,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(opCtx),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code()))
	return &account, nil
}

// GetAccountByID retrieves an account by its identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// FindByCode resolves a display code like "152" or "152-2".
func (s *accountService) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	base, seq, err := domain.ParseAccountCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountCodeInvalid, code)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, base, seq)
	if err != nil {
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated account list.
func (s *accountService) ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error) {
	return s.accountRepo.ListAccounts(ctx, limit, nextToken)
}

// Classify derives the settlement class of an account: receivable-like
// for needs-offset asset accounts, payable-like for needs-offset
// liability accounts, none otherwise.
func (s *accountService) Classify(account domain.Account) domain.AccountClass {
	if !account.IsNeedOffset {
		return domain.ClassNone
	}
	switch account.Type() {
	case domain.Asset:
		return domain.ReceivableLike
	case domain.Liability:
		return domain.PayableLike
	default:
		return domain.ClassNone
	}
}

// CashAccount resolves the designated cash account for cash-leg synthesis.
func (s *accountService) CashAccount(ctx context.Context) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, s.cashCodeBase, 0)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCashAccountMissing
		}
		return nil, fmt.Errorf("failed to resolve cash account: %w", err)
	}
	return account, nil
}
