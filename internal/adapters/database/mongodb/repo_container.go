package mongodb

import (
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewRepositoryProvider builds every MongoDB-backed repository on db.
func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanApplicationRepo: newMongoLoanApplicationRepository(db.Collection(loanApplicationsCollection)),
	}
}
