package evaluation

import (
	"strconv"

	"golang.org/x/text/language"

	"rate_audit/internal/domain/entity"
	"rate_audit/pkg/money"
)

// Report holds the display strings of an evaluation.
type Report struct {
	ReferenceRate         string
	ImpliedRate           string
	Verdict               string
	OriginalInstallment   string
	FairInstallment       string
	RemainingInstallments string
	ProjectedSavings      string
}

func NewReport(tag language.Tag, query entity.LoanQuery, result entity.EvaluationResult) Report {
	return Report{
		ReferenceRate:         money.FormatPercent(tag, result.ReferenceRate),
		ImpliedRate:           money.FormatPercent(tag, result.ImpliedRate),
		Verdict:               VerdictLabel(tag, result.Verdict),
		OriginalInstallment:   money.FormatCurrency(tag, query.InstallmentAmount),
		FairInstallment:       money.FormatCurrency(tag, result.FairInstallment),
		RemainingInstallments: strconv.Itoa(result.RemainingInstallments),
		ProjectedSavings:      money.FormatCurrency(tag, result.ProjectedSavings),
	}
}

func VerdictLabel(tag language.Tag, verdict entity.Verdict) string {
	portuguese := money.IsPortuguese(tag)

	switch {
	case verdict == entity.VerdictAbusive && portuguese:
		return "POSSÍVEL ABUSO"
	case verdict == entity.VerdictAbusive:
		return "POSSIBLE ABUSE"
	case portuguese:
		return "Dentro da média"
	default:
		return "Within average"
	}
}
