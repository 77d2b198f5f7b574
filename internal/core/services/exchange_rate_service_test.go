package services_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/core/services"
	"github.com/SscSPs/loan_application_app/internal/metrics"
	"github.com/SscSPs/loan_application_app/internal/middleware"
	"github.com/SscSPs/loan_application_app/internal/platform/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	usdToGBPURL   = "https://api.test/v3/latest?apikey=test-key&base_currency=USD&currencies=GBP"
	currenciesURL = "https://api.test/v3/currencies?apikey=test-key"
	usdToGBPBody  = `{"data":{"GBP":{"code":"GBP","value":0.8}}}`
)

func testCurrencyAPIConfig() config.CurrencyAPIConfig {
	return config.CurrencyAPIConfig{
		APIKey:        "test-key",
		BaseURL:       "https://api.test/v3",
		ExchangeURI:   "/latest",
		CurrenciesURI: "/currencies",
		ExchangeTTL:   time.Hour,
		CurrenciesTTL: 24 * time.Hour,
		Timeout:       time.Second,
	}
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	cache   *fakeCache
	client  *MockRateSourceClient
	metrics *metrics.Metrics
	service portssvc.ExchangeRateSvcFacade
	ctx     context.Context
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.cache = newFakeCache()
	suite.client = new(MockRateSourceClient)
	suite.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	suite.ctx = context.Background()

	svc, err := services.NewExchangeRateService(testCurrencyAPIConfig(), suite.cache, suite.client, services.WithExchangeRateMetrics(suite.metrics))
	suite.Require().NoError(err)
	suite.service = svc
}

func (suite *ExchangeRateServiceTestSuite) TearDownTest() {
	suite.client.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestNewExchangeRateService_InvalidConfig() {
	cfg := testCurrencyAPIConfig()
	cfg.APIKey = ""

	svc, err := services.NewExchangeRateService(cfg, suite.cache, suite.client)

	suite.Require().Error(err)
	suite.Nil(svc)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_SameCurrencyIsNoop() {
	amount := decimal.NewFromInt(500)

	got, err := suite.service.ConvertAmount(suite.ctx, amount, domain.GBP, domain.GBP)

	suite.Require().NoError(err)
	suite.True(amount.Equal(got))
	suite.Zero(suite.cache.gets)
	suite.client.AssertNotCalled(suite.T(), "GetJSON", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_CacheHit() {
	suite.cache.entries["exchange_rate_USD_GBP"] = cacheEntry{value: "0.75"}

	got, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(100), domain.USD, domain.GBP)

	suite.Require().NoError(err)
	suite.Equal("75", got.String())
	suite.client.AssertNotCalled(suite.T(), "GetJSON", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheExchangeRate, metrics.ResultHit)))
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_MissFetchesOnceThenCaches() {
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).Return(usdToGBPBody, nil).Once()

	first, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(1000), domain.USD, domain.GBP)
	suite.Require().NoError(err)
	second, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(1000), domain.USD, domain.GBP)
	suite.Require().NoError(err)

	suite.True(decimal.NewFromInt(800).Equal(first))
	suite.True(first.Equal(second))
	suite.client.AssertNumberOfCalls(suite.T(), "GetJSON", 1)

	entry, ok := suite.cache.entries["exchange_rate_USD_GBP"]
	suite.Require().True(ok)
	suite.Equal("0.8", entry.value)
	suite.Equal(time.Hour, entry.ttl)

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheExchangeRate, metrics.ResultMiss)))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheExchangeRate, metrics.ResultHit)))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.UpstreamRequestsTotal.WithLabelValues("exchange", metrics.OutcomeSuccess)))
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_MissingTargetCurrency() {
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).
		Return(`{"data":{"EUR":{"code":"EUR","value":0.9}}}`, nil).Once()

	got, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(10), domain.USD, domain.GBP)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstreamData)
	suite.Contains(err.Error(), "GBP")
	suite.True(got.IsZero())
	suite.Zero(suite.cache.sets)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_UpstreamUnavailable() {
	upstreamErr := fmt.Errorf("%w: status 503", apperrors.ErrUpstreamUnavailable)
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).Return("", upstreamErr).Once()

	_, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(10), domain.USD, domain.GBP)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstreamUnavailable)
	suite.Zero(suite.cache.sets)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.UpstreamRequestsTotal.WithLabelValues("exchange", metrics.OutcomeError)))
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_UnparsableCachedRateIsMiss() {
	suite.cache.entries["exchange_rate_USD_GBP"] = cacheEntry{value: "not-a-number"}
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).Return(usdToGBPBody, nil).Once()

	got, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(10), domain.USD, domain.GBP)

	suite.Require().NoError(err)
	suite.Equal("8", got.String())
	suite.Equal("0.8", suite.cache.entries["exchange_rate_USD_GBP"].value)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_UnparsableCachedRateIsEvicted() {
	suite.cache.entries["exchange_rate_USD_GBP"] = cacheEntry{value: "not-a-number"}
	upstreamErr := fmt.Errorf("%w: status 503", apperrors.ErrUpstreamUnavailable)
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).Return("", upstreamErr).Once()

	_, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(10), domain.USD, domain.GBP)

	suite.Require().ErrorIs(err, apperrors.ErrUpstreamUnavailable)
	suite.NotContains(suite.cache.entries, "exchange_rate_USD_GBP")
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_CacheReadErrorIsMiss() {
	suite.cache.getErr = errors.New("connection refused")
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).Return(usdToGBPBody, nil).Once()

	got, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(10), domain.USD, domain.GBP)

	suite.Require().NoError(err)
	suite.Equal("8", got.String())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_CacheWriteErrorIsIgnored() {
	suite.cache.setErr = errors.New("read only replica")
	suite.client.On("GetJSON", suite.ctx, usdToGBPURL, mock.Anything).Return(usdToGBPBody, nil).Once()

	got, err := suite.service.ConvertAmount(suite.ctx, decimal.NewFromInt(10), domain.USD, domain.GBP)

	suite.Require().NoError(err)
	suite.Equal("8", got.String())
	suite.Equal(1, suite.cache.sets)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrencies_LogsRefreshWithRequestLogger() {
	var buf bytes.Buffer
	ctx := middleware.WithLogger(suite.ctx, slog.New(slog.NewJSONHandler(&buf, nil)))
	body := `{"data":{"USD":{"code":"USD"},"GBP":{"code":"GBP"}}}`
	suite.client.On("GetJSON", mock.Anything, currenciesURL, mock.Anything).Return(body, nil).Once()

	_, err := suite.service.GetCurrencies(ctx)

	suite.Require().NoError(err)
	suite.Contains(buf.String(), `"level":"INFO"`)
	suite.Contains(buf.String(), `"msg":"Refreshed currency list"`)
	suite.Contains(buf.String(), `"count":2`)
	suite.NotContains(buf.String(), "test-key")
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrencies_PreservesUpstreamOrderAndCaches() {
	body := `{"data":{"USD":{"code":"USD"},"EUR":{"code":"EUR"},"AUD":{"code":"AUD"}}}`
	suite.client.On("GetJSON", suite.ctx, currenciesURL, mock.Anything).Return(body, nil).Once()

	first, err := suite.service.GetCurrencies(suite.ctx)
	suite.Require().NoError(err)
	second, err := suite.service.GetCurrencies(suite.ctx)
	suite.Require().NoError(err)

	suite.Equal([]string{"USD", "EUR", "AUD"}, first)
	suite.Equal(first, second)
	suite.client.AssertNumberOfCalls(suite.T(), "GetJSON", 1)

	entry := suite.cache.entries["currency_list"]
	suite.JSONEq(`["USD","EUR","AUD"]`, entry.value)
	suite.Equal(24*time.Hour, entry.ttl)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrencies_NonArrayCacheIsMiss() {
	suite.cache.entries["currency_list"] = cacheEntry{value: `{"USD":true}`}
	suite.client.On("GetJSON", suite.ctx, currenciesURL, mock.Anything).Return(`{"data":{"JPY":{}}}`, nil).Once()

	got, err := suite.service.GetCurrencies(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal([]string{"JPY"}, got)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrencies_DataNotAnObject() {
	suite.client.On("GetJSON", suite.ctx, currenciesURL, mock.Anything).Return(`{"data":["USD"]}`, nil).Once()

	got, err := suite.service.GetCurrencies(suite.ctx)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUpstreamData)
	suite.Zero(suite.cache.sets)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrencies_DataMissing() {
	suite.client.On("GetJSON", suite.ctx, currenciesURL, mock.Anything).Return(`{"message":"quota"}`, nil).Once()

	_, err := suite.service.GetCurrencies(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrUpstreamData)
}

// Run the test suite
func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
