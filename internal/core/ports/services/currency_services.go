package services

import (
	"context"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverterSvc converts amounts between currencies using live rates.
type CurrencyConverterSvc interface {
	// ConvertAmount converts amount from one currency to another.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}

// CurrencyListerSvc lists the currencies the rate source supports.
type CurrencyListerSvc interface {
	// GetCurrencies returns currency codes in the order the rate source reports them.
	GetCurrencies(ctx context.Context) ([]string, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	CurrencyConverterSvc
	CurrencyListerSvc
}
