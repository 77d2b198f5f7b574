package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/core/services"
	"github.com/SscSPs/loan_application_app/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type LoanApplicationServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockLoanApplicationRepository
	mockConverter *MockConverter
	metrics       *metrics.Metrics
	service       portssvc.LoanApplicationSvcFacade
	now           time.Time
	ctx           context.Context
}

func (suite *LoanApplicationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLoanApplicationRepository)
	suite.mockConverter = new(MockConverter)
	suite.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()

	suite.service = services.NewLoanApplicationService(
		suite.mockRepo,
		suite.mockConverter,
		domain.GBP,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithLoanApplicationMetrics(suite.metrics),
	)
}

func (suite *LoanApplicationServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func stampEntity(id string, at time.Time) func(domain.LoanApplication) domain.LoanApplication {
	return func(l domain.LoanApplication) domain.LoanApplication {
		return l.WithEntity(domain.Entity{ID: id, CreatedAt: at, UpdatedAt: at})
	}
}

func (suite *LoanApplicationServiceTestSuite) TestInsertOne_ConvertsForeignCurrency() {
	amount := decimal.NewFromInt(1000)
	suite.mockConverter.On("ConvertAmount", suite.ctx, amount, domain.USD, domain.GBP).
		Return(amount.Mul(decimal.RequireFromString("0.8")), nil).Once()
	suite.mockRepo.On("InsertOne", suite.ctx, mock.AnythingOfType("domain.LoanApplication")).
		Return(stampEntity("generated-id", suite.now), nil).Once()

	loan, err := suite.service.InsertOne(suite.ctx, loanRequest("1000", domain.USD))

	suite.Require().NoError(err)
	suite.Equal("generated-id", loan.ID)
	suite.Equal("Ada Lovelace", loan.Name)
	suite.Equal(24, loan.LoanTerm)
	suite.Equal(domain.USD, loan.Currency)
	suite.Equal(suite.now, loan.SubmissionDate)
	suite.Require().Len(loan.ConvertedLoanAmount, 1)
	suite.True(decimal.NewFromInt(800).Equal(loan.ConvertedLoanAmount[domain.GBP]))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.LoanApplicationsTotal.WithLabelValues("USD")))
}

func (suite *LoanApplicationServiceTestSuite) TestInsertOne_ReferenceCurrencySkipsConversion() {
	suite.mockRepo.On("InsertOne", suite.ctx, mock.MatchedBy(func(l domain.LoanApplication) bool {
		return l.ID == "" && l.Currency == domain.GBP
	})).Return(stampEntity("gbp-id", suite.now), nil).Once()

	loan, err := suite.service.InsertOne(suite.ctx, loanRequest("500", domain.GBP))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(500).Equal(loan.ConvertedLoanAmount[domain.GBP]))
	suite.Len(loan.ConvertedLoanAmount, 1)
	suite.mockConverter.AssertNotCalled(suite.T(), "ConvertAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanApplicationServiceTestSuite) TestInsertOne_ConversionFailureStoresNothing() {
	convErr := fmt.Errorf("%w: rate for GBP not found in response", apperrors.ErrUpstreamData)
	suite.mockConverter.On("ConvertAmount", suite.ctx, mock.Anything, domain.EUR, domain.GBP).
		Return(decimal.Zero, convErr).Once()

	_, err := suite.service.InsertOne(suite.ctx, loanRequest("10", domain.EUR))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstreamData)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertOne", mock.Anything, mock.Anything)
	suite.Zero(testutil.ToFloat64(suite.metrics.LoanApplicationsTotal.WithLabelValues("EUR")))
}

func (suite *LoanApplicationServiceTestSuite) TestInsertOne_StorageFailurePropagates() {
	storageErr := fmt.Errorf("%w: connection reset", apperrors.ErrStorage)
	suite.mockRepo.On("InsertOne", suite.ctx, mock.Anything).Return(nil, storageErr).Once()

	_, err := suite.service.InsertOne(suite.ctx, loanRequest("10", domain.GBP))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorage)
}

func (suite *LoanApplicationServiceTestSuite) TestInsertOne_UnsupportedCurrency() {
	_, err := suite.service.InsertOne(suite.ctx, loanRequest("10", domain.Currency("XYZ")))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanApplicationServiceTestSuite) TestFindAll_DelegatesOptions() {
	opts := domain.NewQueryOptions(domain.LoanApplicationSortableFields, "loanAmount", "asc", "2", "3")
	page := domain.PagedResult[domain.LoanApplication]{
		Items: []domain.LoanApplication{{Name: "a"}, {Name: "b"}},
		Total: 10,
	}
	suite.mockRepo.On("FindAll", suite.ctx, opts).Return(page, nil).Once()

	got, err := suite.service.FindAll(suite.ctx, opts)

	suite.Require().NoError(err)
	suite.Equal(page, got)
}

func (suite *LoanApplicationServiceTestSuite) TestFindAll_StorageFailure() {
	suite.mockRepo.On("FindAll", suite.ctx, mock.Anything).
		Return(domain.PagedResult[domain.LoanApplication]{}, fmt.Errorf("%w: timeout", apperrors.ErrStorage)).Once()

	_, err := suite.service.FindAll(suite.ctx, &domain.QueryOptions{})

	suite.ErrorIs(err, apperrors.ErrStorage)
}

// Run the test suite
func TestLoanApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanApplicationServiceTestSuite))
}
