package services

import (
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	"github.com/SscSPs/loan_application_app/internal/dto"
)

// LoanApplicationSvcFacade is the entity service for loan applications.
type LoanApplicationSvcFacade interface {
	EntitySvcFacade[domain.LoanApplication, dto.CreateLoanApplicationRequest]
}
