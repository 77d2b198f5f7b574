package mongodb

import (
	"context"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_application_app/internal/models"
	"github.com/SscSPs/loan_application_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const loanApplicationsCollection = "loanapplications"

var loanApplicationSortKeys = map[string]string{
	domain.LoanApplicationSortLoanAmount:     "loanAmount",
	domain.LoanApplicationSortLoanTerm:       "loanTerm",
	domain.LoanApplicationSortSubmissionDate: "submissionDate",
}

// loanApplicationSchema maps domain.LoanApplication onto models.LoanApplication documents.
type loanApplicationSchema struct{}

var _ Schema[domain.LoanApplication] = loanApplicationSchema{}

func (loanApplicationSchema) Collection() string { return loanApplicationsCollection }

func (loanApplicationSchema) ToDocument(l domain.LoanApplication) (any, error) {
	return mapping.ToModelLoanApplication(l)
}

func (loanApplicationSchema) Decode(raw bson.Raw) (domain.LoanApplication, error) {
	var doc models.LoanApplication
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return domain.LoanApplication{}, err
	}
	return mapping.ToDomainLoanApplication(doc)
}

func (loanApplicationSchema) SortKey(field string) (string, bool) {
	key, ok := loanApplicationSortKeys[field]
	return key, ok
}

func (loanApplicationSchema) Indexes() []mongo.IndexModel {
	indexes := make([]mongo.IndexModel, 0, len(loanApplicationSortKeys))
	for _, key := range []string{"loanAmount", "loanTerm", "submissionDate"} {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetName(key + "_1"),
		})
	}
	return indexes
}

// newMongoLoanApplicationRepository creates a new repository for loan application data.
func newMongoLoanApplicationRepository(coll Collection) portsrepo.LoanApplicationRepositoryFacade {
	return NewEntityRepository[domain.LoanApplication](coll, loanApplicationSchema{})
}

// EnsureLoanApplicationIndexes creates the sort indexes of the loan application collection.
func EnsureLoanApplicationIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureIndexes[domain.LoanApplication](ctx, db.Collection(loanApplicationsCollection), loanApplicationSchema{})
}
