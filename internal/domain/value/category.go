package value

import (
	"fmt"
	"strings"

	"rate_audit/internal/domain"
	"rate_audit/pkg/errcodes"
)

// Category is the loan category selected by the borrower.
type Category string

const (
	CategoryPersonal                Category = "personal"
	CategoryVehicle                 Category = "vehicle"
	CategoryMortgage                Category = "mortgage"
	CategoryHomeImprovement         Category = "home-improvement"
	CategoryPayrollDeduction        Category = "payroll-deduction"
	CategoryPrivatePayrollDeduction Category = "private-payroll-deduction"
)

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{
		CategoryPersonal,
		CategoryVehicle,
		CategoryMortgage,
		CategoryHomeImprovement,
		CategoryPayrollDeduction,
		CategoryPrivatePayrollDeduction,
	}
}

// Portuguese labels accepted on input.
var categoryAliases = map[string]Category{ //nolint:gochecknoglobals
	"pessoal":            CategoryPersonal,
	"veicular":           CategoryVehicle,
	"imobiliario":        CategoryMortgage,
	"imobiliário":        CategoryMortgage,
	"reforma":            CategoryHomeImprovement,
	"consignado":         CategoryPayrollDeduction,
	"consignado-privado": CategoryPrivatePayrollDeduction,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}

	return false
}

// ParseCategory accepts either the canonical identifier or its Portuguese
// alias, case-insensitively.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	if c := Category(normalized); c.Valid() {
		return c, nil
	}

	if c, ok := categoryAliases[normalized]; ok {
		return c, nil
	}

	return "", domain.NewError(errcodes.InvalidCategory, fmt.Sprintf("unknown loan category %q", s))
}
