package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/core/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
	opCtx    domain.OperationContext
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
	suite.opCtx = testOpCtx(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "EUR", Symbol: "€", Name: "Euro"}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "EUR" && c.Symbol == "€" && c.CreatedBy == suite.opCtx.ActingUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, suite.opCtx, req)

	suite.Require().NoError(err)
	suite.Equal("EUR", currency.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}

	suite.mockRepo.On("SaveCurrency", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCurrency(ctx, suite.opCtx, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCurrencyByCode(ctx, "XXX")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies() {
	ctx := context.Background()
	expected := []domain.Currency{{CurrencyCode: "JPY"}, {CurrencyCode: "USD"}}
	suite.mockRepo.On("ListCurrencies", ctx).Return(expected, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, currencies)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
