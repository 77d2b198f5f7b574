package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditFields are the timestamps every stored document carries.
type AuditFields struct {
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// LoanApplication is the stored form of a loan application. Amounts are
// Decimal128 so range queries and sorts compare numerically.
type LoanApplication struct {
	ID                  primitive.ObjectID              `bson:"_id,omitempty"`
	Name                string                          `bson:"name"`
	LoanAmount          primitive.Decimal128            `bson:"loanAmount"`
	ConvertedLoanAmount map[string]primitive.Decimal128 `bson:"convertedLoanAmount"`
	LoanTerm            int                             `bson:"loanTerm"`
	Currency            string                          `bson:"currency"`
	SubmissionDate      time.Time                       `bson:"submissionDate"`
	AuditFields         `bson:",inline"`
}
