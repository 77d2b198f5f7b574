package dto

import (
	"time"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanApplicationRequest defines the data needed to submit a loan application.
type CreateLoanApplicationRequest struct {
	Name       string          `json:"name" binding:"required,max=200"`
	LoanAmount decimal.Decimal `json:"loanAmount" binding:"required,gt=0"`
	LoanTerm   int             `json:"loanTerm" binding:"required,gt=0"` // months
	Currency   domain.Currency `json:"currency" binding:"required,currency"`
}

// ListLoanApplicationsParams holds the raw listing query. Values are parsed
// leniently by domain.NewQueryOptions, so they stay strings here.
type ListLoanApplicationsParams struct {
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
	Skip   string `form:"skip"`
	Take   string `form:"take"`
}

// ToQueryOptions converts the params using the loan application sort allow-list.
func (p ListLoanApplicationsParams) ToQueryOptions() *domain.QueryOptions {
	return domain.NewQueryOptions(domain.LoanApplicationSortableFields, p.SortBy, p.Order, p.Skip, p.Take)
}

// LoanApplicationResponse defines the data returned for a loan application.
type LoanApplicationResponse struct {
	ID                  string                     `json:"id"`
	Name                string                     `json:"name"`
	LoanAmount          decimal.Decimal            `json:"loanAmount"`
	ConvertedLoanAmount map[string]decimal.Decimal `json:"convertedLoanAmount"`
	LoanTerm            int                        `json:"loanTerm"`
	Currency            string                     `json:"currency"`
	SubmissionDate      time.Time                  `json:"submissionDate"`
	CreatedAt           time.Time                  `json:"createdAt"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}

// ListLoanApplicationsResponse wraps a page of loan applications with the collection total.
type ListLoanApplicationsResponse struct {
	Docs  []LoanApplicationResponse `json:"docs"`
	Total int64                     `json:"total"`
}

// ToLoanApplicationResponse converts a domain.LoanApplication to LoanApplicationResponse DTO
func ToLoanApplicationResponse(l *domain.LoanApplication) LoanApplicationResponse {
	converted := make(map[string]decimal.Decimal, len(l.ConvertedLoanAmount))
	for c, amount := range l.ConvertedLoanAmount {
		converted[string(c)] = amount
	}
	return LoanApplicationResponse{
		ID:                  l.ID,
		Name:                l.Name,
		LoanAmount:          l.LoanAmount,
		ConvertedLoanAmount: converted,
		LoanTerm:            l.LoanTerm,
		Currency:            string(l.Currency),
		SubmissionDate:      l.SubmissionDate,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

// ToListLoanApplicationsResponse converts a page of loan applications.
func ToListLoanApplicationsResponse(page domain.PagedResult[domain.LoanApplication]) ListLoanApplicationsResponse {
	docs := make([]LoanApplicationResponse, len(page.Items))
	for i := range page.Items {
		docs[i] = ToLoanApplicationResponse(&page.Items[i])
	}
	return ListLoanApplicationsResponse{Docs: docs, Total: page.Total}
}
