package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/metrics"
	"github.com/SscSPs/loan_application_app/internal/platform/config"
	"github.com/shopspring/decimal"
)

const (
	exchangeRateKeyPrefix = "exchange_rate_"
	currencyListKey       = "currency_list"

	endpointExchange   = "exchange"
	endpointCurrencies = "currencies"
)

// rateResponse is the body returned by the exchange endpoint.
type rateResponse struct {
	Data map[string]rateEntry `json:"data"`
}

type rateEntry struct {
	Code  string          `json:"code"`
	Value decimal.Decimal `json:"value"`
}

// currenciesResponse keeps data raw so the key order of the object survives.
type currenciesResponse struct {
	Data json.RawMessage `json:"data"`
}

// exchangeRateService converts amounts with rates from the currency API,
// caching each rate and the currency list.
type exchangeRateService struct {
	BaseService
	cfg     config.CurrencyAPIConfig
	cache   portsrepo.Cache
	client  portsrepo.RateSourceClient
	metrics *metrics.Metrics
}

// ExchangeRateOption is a functional option for configuring the exchange rate service
type ExchangeRateOption func(*exchangeRateService)

// WithExchangeRateMetrics records cache and upstream counters on m.
func WithExchangeRateMetrics(m *metrics.Metrics) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// NewExchangeRateService creates the exchange rate service. It fails with
// apperrors.ErrConfiguration when cfg is incomplete.
func NewExchangeRateService(cfg config.CurrencyAPIConfig, cache portsrepo.Cache, client portsrepo.RateSourceClient, options ...ExchangeRateOption) (portssvc.ExchangeRateSvcFacade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	svc := &exchangeRateService{
		cfg:    cfg,
		cache:  cache,
		client: client,
	}
	for _, option := range options {
		option(svc)
	}
	return svc, nil
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func exchangeRateKey(from, to domain.Currency) string {
	return exchangeRateKeyPrefix + string(from) + "_" + string(to)
}

// ConvertAmount multiplies amount by the from→to rate, looking the rate up in
// the cache first and in the currency API on a miss.
func (s *exchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	key := exchangeRateKey(from, to)
	if rate, ok := s.cachedRate(ctx, key); ok {
		return amount.Mul(rate), nil
	}

	rate, err := s.fetchRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.cache.Set(ctx, key, rate.String(), s.cfg.ExchangeTTL); err != nil {
		s.LogWarn(ctx, err, "Failed to cache exchange rate", slog.String("key", key))
	}

	return amount.Mul(rate), nil
}

func (s *exchangeRateService) cachedRate(ctx context.Context, key string) (decimal.Decimal, bool) {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.LogWarn(ctx, err, "Exchange rate cache read failed, treating as miss", slog.String("key", key))
		found = false
	}
	if !found {
		s.metrics.ObserveCacheLookup(metrics.CacheExchangeRate, false)
		return decimal.Zero, false
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		s.LogWarn(ctx, fmt.Errorf("%w: %q under %s: %v", apperrors.ErrCacheDecode, raw, key, err), "Ignoring unparsable cached exchange rate")
		s.evict(ctx, key)
		s.metrics.ObserveCacheLookup(metrics.CacheExchangeRate, false)
		return decimal.Zero, false
	}

	s.metrics.ObserveCacheLookup(metrics.CacheExchangeRate, true)
	return rate, true
}

func (s *exchangeRateService) fetchRate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("apikey", s.cfg.APIKey)
	query.Set("base_currency", string(from))
	query.Set("currencies", string(to))

	resp, err := portsrepo.FetchJSON[rateResponse](ctx, s.client, s.endpoint(s.cfg.ExchangeURI, query))
	s.metrics.ObserveUpstreamRequest(endpointExchange, err)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rate",
			slog.String("from", string(from)),
			slog.String("to", string(to)))
		return decimal.Zero, fmt.Errorf("failed to fetch %s→%s rate: %w", from, to, err)
	}

	entry, ok := resp.Data[string(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: rate for %s not found in response", apperrors.ErrUpstreamData, to)
	}

	s.LogDebug(ctx, "Fetched exchange rate",
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("rate", entry.Value.String()))
	return entry.Value, nil
}

// GetCurrencies returns the currency codes the currency API supports, in the
// order it lists them.
func (s *exchangeRateService) GetCurrencies(ctx context.Context) ([]string, error) {
	if codes, ok := s.cachedCurrencies(ctx); ok {
		return codes, nil
	}

	query := url.Values{}
	query.Set("apikey", s.cfg.APIKey)

	resp, err := portsrepo.FetchJSON[currenciesResponse](ctx, s.client, s.endpoint(s.cfg.CurrenciesURI, query))
	s.metrics.ObserveUpstreamRequest(endpointCurrencies, err)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch currency list")
		return nil, fmt.Errorf("failed to fetch currency list: %w", err)
	}

	codes, err := objectKeys(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: currency list: %v", apperrors.ErrUpstreamData, err)
	}
	s.LogInfo(ctx, "Refreshed currency list", slog.Int("count", len(codes)))

	encoded, err := json.Marshal(codes)
	if err == nil {
		err = s.cache.Set(ctx, currencyListKey, string(encoded), s.cfg.CurrenciesTTL)
	}
	if err != nil {
		s.LogWarn(ctx, err, "Failed to cache currency list")
	}

	return codes, nil
}

func (s *exchangeRateService) cachedCurrencies(ctx context.Context) ([]string, bool) {
	raw, found, err := s.cache.Get(ctx, currencyListKey)
	if err != nil {
		s.LogWarn(ctx, err, "Currency list cache read failed, treating as miss")
		found = false
	}
	if !found {
		s.metrics.ObserveCacheLookup(metrics.CacheCurrencyList, false)
		return nil, false
	}

	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil || codes == nil {
		s.LogWarn(ctx, fmt.Errorf("%w: %s", apperrors.ErrCacheDecode, currencyListKey), "Ignoring unparsable cached currency list")
		s.evict(ctx, currencyListKey)
		s.metrics.ObserveCacheLookup(metrics.CacheCurrencyList, false)
		return nil, false
	}

	s.metrics.ObserveCacheLookup(metrics.CacheCurrencyList, true)
	return codes, true
}

// evict drops an entry that can no longer be decoded so a failed refetch
// does not leave it in place until its TTL runs out.
func (s *exchangeRateService) evict(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, key); err != nil {
		s.LogWarn(ctx, err, "Failed to evict cache entry", slog.String("key", key))
	}
}

func (s *exchangeRateService) endpoint(uri string, query url.Values) string {
	return s.cfg.BaseURL + uri + "?" + query.Encode()
}

var errNotObject = errors.New("data is not a JSON object")

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, errors.New("data is missing")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	keys := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

