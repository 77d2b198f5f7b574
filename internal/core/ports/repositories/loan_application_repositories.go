package repositories

import "github.com/SscSPs/loan_application_app/internal/core/domain"

// LoanApplicationRepositoryFacade is the storage contract for loan applications.
type LoanApplicationRepositoryFacade interface {
	Repository[domain.LoanApplication]
}
