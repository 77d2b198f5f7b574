package domain

import "strings"

// Currency is an ISO 4217 currency code.
type Currency string

const (
	AUD Currency = "AUD"
	BRL Currency = "BRL"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
	CNY Currency = "CNY"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	HKD Currency = "HKD"
	INR Currency = "INR"
	JPY Currency = "JPY"
	MXN Currency = "MXN"
	NOK Currency = "NOK"
	NZD Currency = "NZD"
	SEK Currency = "SEK"
	SGD Currency = "SGD"
	USD Currency = "USD"
	ZAR Currency = "ZAR"
)

var supportedCurrencies = map[Currency]struct{}{
	AUD: {}, BRL: {}, CAD: {}, CHF: {}, CNY: {}, EUR: {}, GBP: {}, HKD: {}, INR: {},
	JPY: {}, MXN: {}, NOK: {}, NZD: {}, SEK: {}, SGD: {}, USD: {}, ZAR: {},
}

// IsSupported reports whether c is one of the currencies loan applications may use.
func (c Currency) IsSupported() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

func (c Currency) String() string {
	return string(c)
}

// ParseCurrency normalizes code and checks it against the supported set.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	return c, c.IsSupported()
}
