package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvertedLoanAmount maps a currency to the loan amount expressed in it.
// It always holds at least the reference currency entry.
type ConvertedLoanAmount map[Currency]decimal.Decimal

// LoanApplication is a submitted request for a loan.
type LoanApplication struct {
	Entity
	Name                string              `json:"name"`
	LoanAmount          decimal.Decimal     `json:"loanAmount"`
	ConvertedLoanAmount ConvertedLoanAmount `json:"convertedLoanAmount"`
	LoanTerm            int                 `json:"loanTerm"` // months
	Currency            Currency            `json:"currency"`
	SubmissionDate      time.Time           `json:"submissionDate"`
}

// WithEntity implements Record.
func (l LoanApplication) WithEntity(e Entity) LoanApplication {
	l.Entity = e
	return l
}

// Sortable field names accepted for loan application listings.
const (
	LoanApplicationSortLoanAmount     = "loanAmount"
	LoanApplicationSortLoanTerm       = "loanTerm"
	LoanApplicationSortSubmissionDate = "submissionDate"
)

// LoanApplicationSortableFields is the listing sort allow-list.
var LoanApplicationSortableFields = NewSortableFields(
	LoanApplicationSortLoanAmount,
	LoanApplicationSortLoanTerm,
	LoanApplicationSortSubmissionDate,
)

var _ Record[LoanApplication] = LoanApplication{}
