package services_test

import (
	"context"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, codeBase int, codeSeq int) (*domain.Account, error) {
	args := m.Called(ctx, codeBase, codeSeq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return accounts, token, args.Error(2)
}

// MockCurrencyRepository is a mock type for the CurrencyRepositoryFacade interface
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// MockJournalEntryRepository is a mock type for the JournalEntryRepositoryFacade interface
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindEntriesByDate(ctx context.Context, date time.Time, excludeEntryID *string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, date, excludeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntries(ctx context.Context, from *time.Time, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, from, to, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalEntryRepository) FindLineItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLineItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLineItem), args.Error(1)
}

func (m *MockJournalEntryRepository) FindPostedLineItemsByIDs(ctx context.Context, lineItemIDs []string) (map[string]domain.PostedLineItem, error) {
	args := m.Called(ctx, lineItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PostedLineItem), args.Error(1)
}

func (m *MockJournalEntryRepository) FindOffsetsByOriginalIDs(ctx context.Context, originalIDs []string) (map[string][]domain.JournalEntryLineItem, error) {
	args := m.Called(ctx, originalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalEntryLineItem), args.Error(1)
}

func (m *MockJournalEntryRepository) FindOffsetHolderDates(ctx context.Context, entryID string) ([]time.Time, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockJournalEntryRepository) FindOriginalLineItems(ctx context.Context, accountID string, side domain.Side) ([]domain.PostedLineItem, error) {
	args := m.Called(ctx, accountID, side)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLineItem), args.Error(1)
}

func (m *MockJournalEntryRepository) FindUnmatchedSettlements(ctx context.Context, accountID string, side domain.Side) ([]domain.PostedLineItem, error) {
	args := m.Called(ctx, accountID, side)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLineItem), args.Error(1)
}

func (m *MockJournalEntryRepository) CountOffsetsReferencingEntry(ctx context.Context, entryID string) (int, error) {
	args := m.Called(ctx, entryID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, params portsrepo.SaveEntryParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string, renumberOps []portsrepo.EntryNumberUpdate, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, renumberOps, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateEntryNumbers(ctx context.Context, updates []portsrepo.EntryNumberUpdate, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, updates, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) LinkOffsets(ctx context.Context, links []domain.MatchPair, updatedBy string, updatedAt time.Time) (int, error) {
	args := m.Called(ctx, links, updatedBy, updatedAt)
	return args.Int(0), args.Error(1)
}

// testOpCtx returns an operation context fixed at the given instant.
func testOpCtx(at time.Time) domain.OperationContext {
	return domain.NewOperationContext("user-1", at, "en")
}

// strPtr and similar helpers shared across the service tests.
func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func submittedRow(code, amount string) dto.SubmittedLineItem {
	return dto.SubmittedLineItem{AccountCode: code, Amount: dec(amount)}
}
