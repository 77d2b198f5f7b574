package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	"github.com/SscSPs/loan_application_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateSourceClient ---
type MockRateSourceClient struct {
	mock.Mock
}

func (m *MockRateSourceClient) GetJSON(ctx context.Context, url string, dst any) error {
	args := m.Called(ctx, url, dst)
	if body, ok := args.Get(0).(string); ok && body != "" {
		if err := json.Unmarshal([]byte(body), dst); err != nil {
			return err
		}
	}
	return args.Error(1)
}

// --- In-memory Cache ---
type cacheEntry struct {
	value string
	ttl   time.Duration
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	gets    int
	sets    int
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]cacheEntry{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return "", false, c.getErr
	}
	e, ok := c.entries[key]
	return e.value, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = cacheEntry{value: value, ttl: ttl}
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// --- Mock CurrencyConverterSvc ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock LoanApplicationRepository ---
type MockLoanApplicationRepository struct {
	mock.Mock
}

// InsertOne returns the first return value as is, or applies it when it is a
// func(domain.LoanApplication) domain.LoanApplication.
func (m *MockLoanApplicationRepository) InsertOne(ctx context.Context, entity domain.LoanApplication) (domain.LoanApplication, error) {
	args := m.Called(ctx, entity)
	if fn, ok := args.Get(0).(func(domain.LoanApplication) domain.LoanApplication); ok {
		return fn(entity), args.Error(1)
	}
	if args.Get(0) == nil {
		return domain.LoanApplication{}, args.Error(1)
	}
	return args.Get(0).(domain.LoanApplication), args.Error(1)
}

func (m *MockLoanApplicationRepository) FindAll(ctx context.Context, opts *domain.QueryOptions) (domain.PagedResult[domain.LoanApplication], error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(domain.PagedResult[domain.LoanApplication]), args.Error(1)
}

func loanRequest(amount string, currency domain.Currency) dto.CreateLoanApplicationRequest {
	return dto.CreateLoanApplicationRequest{
		Name:       "Ada Lovelace",
		LoanAmount: decimal.RequireFromString(amount),
		LoanTerm:   24,
		Currency:   currency,
	}
}
