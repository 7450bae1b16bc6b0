package server

import (
	"fmt"
	"time"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/evaluation"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/rest"
)

func newRESTCategory(category value.Category, source entity.RateSource) rest.Category {
	return rest.Category{
		Name:             category.String(),
		Source:           string(source.Kind),
		SeriesID:         source.SeriesID,
		FixedMonthlyRate: source.MonthlyRate,
	}
}

func newRESTReferenceRate(rate entity.ReferenceRate) rest.ReferenceRate {
	result := rest.ReferenceRate{
		Category:    rate.Category.String(),
		Source:      string(rate.Source.Kind),
		MonthlyRate: rate.MonthlyRate,
		AnnualRate:  rate.AnnualRate,
	}

	if !rate.ObservedAt.IsZero() {
		result.ObservedAt = rate.ObservedAt.Format(time.DateOnly)
	}

	return result
}

func newRESTEvaluation(
	result entity.EvaluationResult,
	rate entity.ReferenceRate,
	report evaluation.Report,
) rest.EvaluationResponse {
	return rest.EvaluationResponse{
		ImpliedRate:           result.ImpliedRate,
		ReferenceRate:         newRESTReferenceRate(rate),
		FairInstallment:       result.FairInstallment,
		RemainingInstallments: result.RemainingInstallments,
		ProjectedSavings:      result.ProjectedSavings,
		Verdict:               result.Verdict.String(),
		RateConverged:         result.RateConverged,
		SolverIterations:      result.SolverIterations,
		Display: rest.Display{
			ReferenceRate:         report.ReferenceRate,
			ImpliedRate:           report.ImpliedRate,
			Verdict:               report.Verdict,
			OriginalInstallment:   report.OriginalInstallment,
			FairInstallment:       report.FairInstallment,
			RemainingInstallments: report.RemainingInstallments,
			ProjectedSavings:      report.ProjectedSavings,
		},
	}
}

func newDomainLoanQuery(request rest.EvaluationRequest) (entity.LoanQuery, error) {
	category, err := value.ParseCategory(request.Category)
	if err != nil {
		return entity.LoanQuery{}, fmt.Errorf("value.ParseCategory: %w", err)
	}

	return entity.LoanQuery{
		Category:          category,
		Principal:         request.Principal,
		InstallmentAmount: request.InstallmentAmount,
		InstallmentCount:  request.InstallmentCount,
		InstallmentsPaid:  request.InstallmentsPaid,
	}, nil
}
