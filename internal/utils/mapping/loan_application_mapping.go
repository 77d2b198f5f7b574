package mapping

import (
	"fmt"
	"math/big"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	"github.com/SscSPs/loan_application_app/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decimal128Digits is the coefficient size of an IEEE 754 decimal128.
const decimal128Digits = 34

// ToDecimal128 converts a decimal to its BSON form. Values with more than 34
// significant digits are rounded half away from zero to fit; everything else
// is stored exactly.
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d = roundToDecimal128(d)
	out, ok := primitive.ParseDecimal128FromBigInt(d.Coefficient(), int(d.Exponent()))
	if !ok {
		return primitive.Decimal128{}, fmt.Errorf("decimal %s is out of Decimal128 range", d)
	}
	return out, nil
}

func roundToDecimal128(d decimal.Decimal) decimal.Decimal {
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	if digits <= decimal128Digits {
		return d
	}
	return d.Round(-d.Exponent() - int32(digits-decimal128Digits))
}

// FromDecimal128 converts a BSON decimal back.
func FromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	coef, exp, err := d.BigInt()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(coef, int32(exp)), nil
}

// ToModelLoanApplication converts a domain LoanApplication to a model LoanApplication.
// The id is left empty so the driver generates one.
func ToModelLoanApplication(d domain.LoanApplication) (models.LoanApplication, error) {
	amount, err := ToDecimal128(d.LoanAmount)
	if err != nil {
		return models.LoanApplication{}, err
	}
	converted := make(map[string]primitive.Decimal128, len(d.ConvertedLoanAmount))
	for c, v := range d.ConvertedLoanAmount {
		if converted[string(c)], err = ToDecimal128(v); err != nil {
			return models.LoanApplication{}, err
		}
	}
	return models.LoanApplication{
		Name:                d.Name,
		LoanAmount:          amount,
		ConvertedLoanAmount: converted,
		LoanTerm:            d.LoanTerm,
		Currency:            string(d.Currency),
		SubmissionDate:      d.SubmissionDate,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}, nil
}

// ToDomainLoanApplication converts a model LoanApplication to a domain LoanApplication
func ToDomainLoanApplication(m models.LoanApplication) (domain.LoanApplication, error) {
	amount, err := FromDecimal128(m.LoanAmount)
	if err != nil {
		return domain.LoanApplication{}, fmt.Errorf("loanAmount: %w", err)
	}
	converted := make(domain.ConvertedLoanAmount, len(m.ConvertedLoanAmount))
	for code, v := range m.ConvertedLoanAmount {
		if converted[domain.Currency(code)], err = FromDecimal128(v); err != nil {
			return domain.LoanApplication{}, fmt.Errorf("convertedLoanAmount.%s: %w", code, err)
		}
	}
	return domain.LoanApplication{
		Entity: domain.Entity{
			ID:        m.ID.Hex(),
			CreatedAt: m.CreatedAt.UTC(),
			UpdatedAt: m.UpdatedAt.UTC(),
		},
		Name:                m.Name,
		LoanAmount:          amount,
		ConvertedLoanAmount: converted,
		LoanTerm:            m.LoanTerm,
		Currency:            domain.Currency(m.Currency),
		SubmissionDate:      m.SubmissionDate.UTC(),
	}, nil
}
