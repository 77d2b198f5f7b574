package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/dto"
	"github.com/SscSPs/loan_application_app/internal/metrics"
)

// loanApplicationBuilder turns a submission into a LoanApplication with the
// amount converted into the reference currency.
type loanApplicationBuilder struct {
	BaseService
	converter portssvc.CurrencyConverterSvc
	reference domain.Currency
	now       func() time.Time
}

var _ portssvc.EntityBuilder[domain.LoanApplication, dto.CreateLoanApplicationRequest] = (*loanApplicationBuilder)(nil)

func (b *loanApplicationBuilder) CreateEntityFromDTO(ctx context.Context, req dto.CreateLoanApplicationRequest) (domain.LoanApplication, error) {
	if !req.Currency.IsSupported() {
		return domain.LoanApplication{}, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrValidation, req.Currency)
	}

	converted := req.LoanAmount
	if req.Currency != b.reference {
		var err error
		converted, err = b.converter.ConvertAmount(ctx, req.LoanAmount, req.Currency, b.reference)
		if err != nil {
			b.LogError(ctx, err, "Failed to convert loan amount",
				slog.String("from", string(req.Currency)),
				slog.String("to", string(b.reference)))
			return domain.LoanApplication{}, err
		}
	}

	return domain.LoanApplication{
		Name:                req.Name,
		LoanAmount:          req.LoanAmount,
		ConvertedLoanAmount: domain.ConvertedLoanAmount{b.reference: converted},
		LoanTerm:            req.LoanTerm,
		Currency:            req.Currency,
		SubmissionDate:      b.now(),
	}, nil
}

// loanApplicationService is the generic entity service specialized for loan
// applications. It only adds a submission counter on top.
type loanApplicationService struct {
	portssvc.EntitySvcFacade[domain.LoanApplication, dto.CreateLoanApplicationRequest]
	metrics *metrics.Metrics
}

var _ portssvc.LoanApplicationSvcFacade = (*loanApplicationService)(nil)

func (s *loanApplicationService) InsertOne(ctx context.Context, req dto.CreateLoanApplicationRequest) (domain.LoanApplication, error) {
	stored, err := s.EntitySvcFacade.InsertOne(ctx, req)
	if err != nil {
		return stored, err
	}
	s.metrics.ObserveLoanApplication(string(stored.Currency))
	return stored, nil
}

// LoanApplicationOption is a functional option for configuring the loan application service
type LoanApplicationOption func(*loanApplicationService, *loanApplicationBuilder)

// WithClock overrides the source of submission dates.
func WithClock(now func() time.Time) LoanApplicationOption {
	return func(_ *loanApplicationService, b *loanApplicationBuilder) {
		b.now = now
	}
}

// WithLoanApplicationMetrics counts stored applications on m.
func WithLoanApplicationMetrics(m *metrics.Metrics) LoanApplicationOption {
	return func(s *loanApplicationService, _ *loanApplicationBuilder) {
		s.metrics = m
	}
}

// NewLoanApplicationService creates the loan application service. Amounts are
// converted into reference with converter unless already expressed in it.
func NewLoanApplicationService(
	repo portsrepo.LoanApplicationRepositoryFacade,
	converter portssvc.CurrencyConverterSvc,
	reference domain.Currency,
	options ...LoanApplicationOption,
) portssvc.LoanApplicationSvcFacade {
	builder := &loanApplicationBuilder{
		converter: converter,
		reference: reference,
		now:       func() time.Time { return time.Now().UTC() },
	}
	svc := &loanApplicationService{}
	for _, option := range options {
		option(svc, builder)
	}
	svc.EntitySvcFacade = NewEntityService[domain.LoanApplication, dto.CreateLoanApplicationRequest](repo, builder)
	return svc
}
