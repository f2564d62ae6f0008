package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OffsetMatcherServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockJournalEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.OffsetMatcherSvcFacade
	account         *domain.Account
}

func (suite *OffsetMatcherServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockJournalEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo, 101)
	suite.service = services.NewOffsetMatcherService(suite.mockEntryRepo, accountSvc)

	// A receivable-like account: debit-natured, offsets sit on the credit side.
	suite.account = &domain.Account{
		AccountID:    "acc-ar",
		CodeBase:     152,
		Name:         "Accounts Receivable",
		IsNeedOffset: true,
		IsActive:     true,
	}
}

func (suite *OffsetMatcherServiceTestSuite) expectAccount() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-ar").Return(suite.account, nil)
}

func posted(id string, side domain.Side, day int, entryNo int, amount string, desc *string) domain.PostedLineItem {
	return domain.PostedLineItem{
		JournalEntryLineItem: domain.JournalEntryLineItem{
			LineItemID:   id,
			EntryID:      "entry-of-" + id,
			Side:         side,
			CurrencyCode: "USD",
			AccountID:    "acc-ar",
			Description:  desc,
			Amount:       decimal.RequireFromString(amount),
		},
		EntryDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		EntryNo:   entryNo,
	}
}

func (suite *OffsetMatcherServiceTestSuite) TestRun_MatchesFirstLaterCandidate() {
	ctx := context.Background()
	suite.expectAccount()

	inv := strPtr("INV-1")
	original := posted("li-orig", domain.Debit, 1, 1, "100.00", inv)

	// Same date and position: not strictly later, never a candidate.
	sameSlot := posted("li-same", domain.Credit, 1, 1, "100.00", inv)
	// Later but wrong amount.
	wrongAmount := posted("li-part", domain.Credit, 3, 1, "40.00", inv)
	// Later, exact amount, matching description: the match.
	exact := posted("li-exact", domain.Credit, 5, 1, "100.00", inv)

	suite.mockEntryRepo.On("FindOriginalLineItems", ctx, "acc-ar", domain.Debit).
		Return([]domain.PostedLineItem{original}, nil).Once()
	suite.mockEntryRepo.On("FindOffsetsByOriginalIDs", ctx, []string{"li-orig"}).
		Return(map[string][]domain.JournalEntryLineItem{}, nil).Once()
	suite.mockEntryRepo.On("FindUnmatchedSettlements", ctx, "acc-ar", domain.Credit).
		Return([]domain.PostedLineItem{sameSlot, wrongAmount, exact}, nil).Once()

	run, err := suite.service.Run(ctx, "acc-ar")

	suite.Require().NoError(err)
	suite.Equal("acc-ar", run.AccountID)
	suite.Equal(1, run.TotalUnapplied)
	suite.Require().Len(run.Pairs, 1)
	suite.Equal("li-orig", run.Pairs[0].OriginalLineItemID)
	suite.Equal("li-exact", run.Pairs[0].OffsetLineItemID)
	suite.True(run.Pairs[0].Amount.Equal(decimal.RequireFromString("100.00")))

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *OffsetMatcherServiceTestSuite) TestRun_AmountMustEqualNetBalance() {
	ctx := context.Background()
	suite.expectAccount()

	original := posted("li-orig", domain.Debit, 1, 1, "100.00", nil)
	// A stored offset already settled 60, so only a 40.00 candidate matches.
	storedOffset := domain.JournalEntryLineItem{
		LineItemID: "li-stored", Side: domain.Credit, CurrencyCode: "USD",
		AccountID: "acc-ar", Amount: decimal.RequireFromString("60.00"),
		OriginalLineItemID: strPtr("li-orig"),
	}

	fullAmount := posted("li-full", domain.Credit, 4, 1, "100.00", nil)
	remainder := posted("li-rest", domain.Credit, 5, 1, "40.00", nil)

	suite.mockEntryRepo.On("FindOriginalLineItems", ctx, "acc-ar", domain.Debit).
		Return([]domain.PostedLineItem{original}, nil).Once()
	suite.mockEntryRepo.On("FindOffsetsByOriginalIDs", ctx, []string{"li-orig"}).
		Return(map[string][]domain.JournalEntryLineItem{"li-orig": {storedOffset}}, nil).Once()
	suite.mockEntryRepo.On("FindUnmatchedSettlements", ctx, "acc-ar", domain.Credit).
		Return([]domain.PostedLineItem{fullAmount, remainder}, nil).Once()

	run, err := suite.service.Run(ctx, "acc-ar")

	suite.Require().NoError(err)
	suite.Require().Len(run.Pairs, 1)
	suite.Equal("li-rest", run.Pairs[0].OffsetLineItemID)
	suite.True(run.Pairs[0].Amount.Equal(decimal.RequireFromString("40.00")))
}

func (suite *OffsetMatcherServiceTestSuite) TestRun_DescriptionAndCurrencyMustMatch() {
	ctx := context.Background()
	suite.expectAccount()

	original := posted("li-orig", domain.Debit, 1, 1, "100.00", strPtr("INV-1"))

	otherDesc := posted("li-desc", domain.Credit, 3, 1, "100.00", strPtr("INV-2"))
	nilDesc := posted("li-nil", domain.Credit, 4, 1, "100.00", nil)
	otherCurrency := posted("li-eur", domain.Credit, 5, 1, "100.00", strPtr("INV-1"))
	otherCurrency.CurrencyCode = "EUR"

	suite.mockEntryRepo.On("FindOriginalLineItems", ctx, "acc-ar", domain.Debit).
		Return([]domain.PostedLineItem{original}, nil).Once()
	suite.mockEntryRepo.On("FindOffsetsByOriginalIDs", ctx, []string{"li-orig"}).
		Return(map[string][]domain.JournalEntryLineItem{}, nil).Once()
	suite.mockEntryRepo.On("FindUnmatchedSettlements", ctx, "acc-ar", domain.Credit).
		Return([]domain.PostedLineItem{otherDesc, nilDesc, otherCurrency}, nil).Once()

	run, err := suite.service.Run(ctx, "acc-ar")

	suite.Require().NoError(err)
	suite.Empty(run.Pairs, "no candidate shares currency and description")
	suite.Equal(1, run.TotalUnapplied)
}

func (suite *OffsetMatcherServiceTestSuite) TestRun_GreedyFirstFitIsDeterministic() {
	ctx := context.Background()
	suite.expectAccount()

	// Two identical originals compete for two identical candidates: the
	// earlier original takes the earlier candidate, every run.
	o1 := posted("li-o1", domain.Debit, 1, 1, "50.00", nil)
	o2 := posted("li-o2", domain.Debit, 1, 2, "50.00", nil)
	c1 := posted("li-c1", domain.Credit, 2, 1, "50.00", nil)
	c2 := posted("li-c2", domain.Credit, 3, 1, "50.00", nil)

	suite.mockEntryRepo.On("FindOriginalLineItems", ctx, "acc-ar", domain.Debit).
		Return([]domain.PostedLineItem{o1, o2}, nil).Twice()
	suite.mockEntryRepo.On("FindOffsetsByOriginalIDs", ctx, []string{"li-o1", "li-o2"}).
		Return(map[string][]domain.JournalEntryLineItem{}, nil).Twice()
	suite.mockEntryRepo.On("FindUnmatchedSettlements", ctx, "acc-ar", domain.Credit).
		Return([]domain.PostedLineItem{c1, c2}, nil).Twice()

	first, err := suite.service.Run(ctx, "acc-ar")
	suite.Require().NoError(err)
	second, err := suite.service.Run(ctx, "acc-ar")
	suite.Require().NoError(err)

	suite.Equal(first, second, "runs are pure and repeatable")
	suite.Require().Len(first.Pairs, 2)
	suite.Equal("li-c1", first.Pairs[0].OffsetLineItemID)
	suite.Equal("li-o1", first.Pairs[0].OriginalLineItemID)
	suite.Equal("li-c2", first.Pairs[1].OffsetLineItemID)
	suite.Equal("li-o2", first.Pairs[1].OriginalLineItemID)
}

func (suite *OffsetMatcherServiceTestSuite) TestRun_SettledOriginalsAreSkipped() {
	ctx := context.Background()
	suite.expectAccount()

	settled := posted("li-done", domain.Debit, 1, 1, "100.00", nil)
	storedOffset := domain.JournalEntryLineItem{
		LineItemID: "li-stored", Side: domain.Credit, CurrencyCode: "USD",
		AccountID: "acc-ar", Amount: decimal.RequireFromString("100.00"),
		OriginalLineItemID: strPtr("li-done"),
	}

	suite.mockEntryRepo.On("FindOriginalLineItems", ctx, "acc-ar", domain.Debit).
		Return([]domain.PostedLineItem{settled}, nil).Once()
	suite.mockEntryRepo.On("FindOffsetsByOriginalIDs", ctx, []string{"li-done"}).
		Return(map[string][]domain.JournalEntryLineItem{"li-done": {storedOffset}}, nil).Once()
	suite.mockEntryRepo.On("FindUnmatchedSettlements", ctx, "acc-ar", domain.Credit).
		Return([]domain.PostedLineItem{}, nil).Once()

	run, err := suite.service.Run(ctx, "acc-ar")

	suite.Require().NoError(err)
	suite.Zero(run.TotalUnapplied)
	suite.Empty(run.Pairs)
}

func (suite *OffsetMatcherServiceTestSuite) TestUnapplied() {
	ctx := context.Background()
	suite.expectAccount()

	open := posted("li-open", domain.Debit, 1, 1, "100.00", nil)
	noOffsets := posted("li-none", domain.Debit, 2, 1, "30.00", nil)
	settled := posted("li-done", domain.Debit, 3, 1, "50.00", nil)
	settledOffset := domain.JournalEntryLineItem{
		LineItemID: "li-s", Side: domain.Credit, CurrencyCode: "USD",
		AccountID: "acc-ar", Amount: decimal.RequireFromString("50.00"),
		OriginalLineItemID: strPtr("li-done"),
	}
	partialOffset := domain.JournalEntryLineItem{
		LineItemID: "li-p", Side: domain.Credit, CurrencyCode: "USD",
		AccountID: "acc-ar", Amount: decimal.RequireFromString("60.00"),
		OriginalLineItemID: strPtr("li-open"),
	}

	suite.mockEntryRepo.On("FindOriginalLineItems", ctx, "acc-ar", domain.Debit).
		Return([]domain.PostedLineItem{open, noOffsets, settled}, nil).Once()
	suite.mockEntryRepo.On("FindOffsetsByOriginalIDs", ctx, []string{"li-open", "li-none", "li-done"}).
		Return(map[string][]domain.JournalEntryLineItem{
			"li-open": {partialOffset},
			"li-done": {settledOffset},
		}, nil).Once()

	unapplied, err := suite.service.Unapplied(ctx, "acc-ar")

	suite.Require().NoError(err)
	suite.Require().Len(unapplied, 2)
	suite.Equal("li-open", unapplied[0].LineItemID, "partially settled stays open")
	suite.Equal("li-none", unapplied[1].LineItemID, "zero offsets always lists")
}

func (suite *OffsetMatcherServiceTestSuite) TestRun_RejectsNonOffsettableAccount() {
	ctx := context.Background()
	plain := &domain.Account{AccountID: "acc-cash", CodeBase: 101, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-cash").Return(plain, nil).Once()

	run, err := suite.service.Run(ctx, "acc-cash")

	suite.Require().Error(err)
	suite.Nil(run)
	suite.ErrorIs(err, services.ErrAccountNotOffsettable)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindOriginalLineItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OffsetMatcherServiceTestSuite) TestCommit() {
	ctx := context.Background()
	opCtx := testOpCtx(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	run := &domain.MatchRun{
		AccountID: "acc-ar",
		Pairs: []domain.MatchPair{
			{OriginalLineItemID: "li-o1", OffsetLineItemID: "li-c1", Amount: dec("50.00")},
			{OriginalLineItemID: "li-o2", OffsetLineItemID: "li-c2", Amount: dec("50.00")},
		},
	}

	// One candidate was linked concurrently; only one row is written.
	suite.mockEntryRepo.On("LinkOffsets", ctx, run.Pairs, opCtx.ActingUserID, opCtx.Now()).
		Return(1, nil).Once()

	linked, err := suite.service.Commit(ctx, opCtx, run)

	suite.Require().NoError(err)
	suite.Equal(1, linked)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *OffsetMatcherServiceTestSuite) TestCommit_EmptyRunWritesNothing() {
	ctx := context.Background()
	opCtx := testOpCtx(time.Now())

	linked, err := suite.service.Commit(ctx, opCtx, &domain.MatchRun{AccountID: "acc-ar"})

	suite.Require().NoError(err)
	suite.Zero(linked)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "LinkOffsets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOffsetMatcherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OffsetMatcherServiceTestSuite))
}
