package pgsql

import (
	"time"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var loanApplicationColumns = []string{
	"name", "loan_amount", "converted_loan_amount", "loan_term", "currency", "submission_date",
}

var loanApplicationSortColumns = map[string]string{
	domain.LoanApplicationSortLoanAmount:     "loan_amount",
	domain.LoanApplicationSortLoanTerm:       "loan_term",
	domain.LoanApplicationSortSubmissionDate: "submission_date",
}

// loanApplicationSchema maps domain.LoanApplication onto the loan_applications table.
type loanApplicationSchema struct{}

var _ Schema[domain.LoanApplication] = loanApplicationSchema{}

func (loanApplicationSchema) Table() string     { return "loan_applications" }
func (loanApplicationSchema) Columns() []string { return loanApplicationColumns }

func (loanApplicationSchema) Values(l domain.LoanApplication) ([]any, error) {
	// converted_loan_amount is JSONB keyed by currency code
	converted := make(map[string]decimal.Decimal, len(l.ConvertedLoanAmount))
	for c, amount := range l.ConvertedLoanAmount {
		converted[string(c)] = amount
	}
	return []any{l.Name, l.LoanAmount, converted, l.LoanTerm, string(l.Currency), l.SubmissionDate}, nil
}

func (loanApplicationSchema) Scan(row pgx.Row) (domain.LoanApplication, error) {
	var (
		l         domain.LoanApplication
		converted map[string]decimal.Decimal
		currency  string
		submitted time.Time
	)
	err := row.Scan(
		&l.ID, &l.CreatedAt, &l.UpdatedAt,
		&l.Name, &l.LoanAmount, &converted, &l.LoanTerm, &currency, &submitted,
	)
	if err != nil {
		return domain.LoanApplication{}, err
	}
	l.Currency = domain.Currency(currency)
	l.SubmissionDate = submitted.UTC()
	l.ConvertedLoanAmount = make(domain.ConvertedLoanAmount, len(converted))
	for code, amount := range converted {
		l.ConvertedLoanAmount[domain.Currency(code)] = amount
	}
	return l, nil
}

func (loanApplicationSchema) SortColumn(field string) (string, bool) {
	col, ok := loanApplicationSortColumns[field]
	return col, ok
}

// newPgxLoanApplicationRepository creates a new repository for loan application data.
func newPgxLoanApplicationRepository(db DBTX) portsrepo.LoanApplicationRepositoryFacade {
	return NewEntityRepository[domain.LoanApplication](db, loanApplicationSchema{})
}
