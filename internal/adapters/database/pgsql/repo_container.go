package pgsql

import (
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every PostgreSQL-backed repository on db,
// usually a *pgxpool.Pool.
func NewRepositoryProvider(db DBTX) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanApplicationRepo: newPgxLoanApplicationRepository(db),
	}
}
