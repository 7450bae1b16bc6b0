package entity

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"rate_audit/internal/domain"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// MaxInstallmentCount bounds the term at 100 years of monthly payments.
const MaxInstallmentCount = 1200

// LoanQuery is the contract data typed by the borrower.
type LoanQuery struct {
	Category          value.Category
	Principal         float64 `validate:"gt=0"`
	InstallmentAmount float64 `validate:"gt=0"`
	InstallmentCount  int     `validate:"gte=1,lte=1200"`
	InstallmentsPaid  int     `validate:"gte=0,ltefield=InstallmentCount"`
}

// Validate enforces principal > 0, 1 <= installmentCount <= MaxInstallmentCount and
// 0 <= installmentsPaid <= installmentCount.
func (q LoanQuery) Validate() error {
	if !q.Category.Valid() {
		return domain.NewError(errcodes.InvalidCategory, fmt.Sprintf("unknown loan category %q", q.Category))
	}

	if err := validate.Struct(q); err != nil {
		return domain.WrapError(err, errcodes.InvalidLoanQuery, "invalid loan query")
	}

	return nil
}

// RemainingInstallments is the number of installments still to be paid.
func (q LoanQuery) RemainingInstallments() int {
	return q.InstallmentCount - q.InstallmentsPaid
}
