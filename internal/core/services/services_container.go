package services

import (
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/metrics"
	"github.com/SscSPs/loan_application_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	cache portsrepo.Cache,
	rateClient portsrepo.RateSourceClient,
	m *metrics.Metrics,
) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	// Exchange rates first since loan applications convert through them
	exchangeRate, err := NewExchangeRateService(cfg.CurrencyAPI, cache, rateClient, WithExchangeRateMetrics(m))
	if err != nil {
		return nil, err
	}
	container.ExchangeRate = exchangeRate

	container.LoanApplication = NewLoanApplicationService(
		repos.LoanApplicationRepo,
		container.ExchangeRate,
		cfg.ReferenceCurrency,
		WithLoanApplicationMetrics(m),
	)

	return container, nil
}
