// Package evaluation compares a loan contract with the market reference rate
// of its category.
package evaluation

import (
	"context"
	"fmt"
	"log/slog"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/finance"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/contextx"
	"rate_audit/pkg/logx"
	"rate_audit/pkg/metrics"
)

// AbuseTolerance is the absolute band (one percentage point per month) the
// implied rate may exceed the reference rate by before the contract is
// flagged.
const AbuseTolerance = 0.01

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type RateProvider interface {
	GetReferenceRate(ctx context.Context, category value.Category) (entity.ReferenceRate, error)
}

// Evaluate prices the query against referenceRate. The query must already be
// valid. opts tune the implied-rate solver.
func Evaluate(query entity.LoanQuery, referenceRate float64, opts ...finance.SolveOption) entity.EvaluationResult {
	solved := finance.SolveRate(query.Principal, query.InstallmentAmount, query.InstallmentCount, opts...)
	fair := finance.FairInstallment(query.Principal, referenceRate, query.InstallmentCount)
	remaining := query.RemainingInstallments()

	var savings float64
	if fair < query.InstallmentAmount {
		savings = (query.InstallmentAmount - fair) * float64(remaining)
	}

	return entity.EvaluationResult{
		ImpliedRate:           solved.Rate,
		ReferenceRate:         referenceRate,
		FairInstallment:       fair,
		RemainingInstallments: remaining,
		ProjectedSavings:      savings,
		Verdict:               Classify(solved.Rate, referenceRate),
		RateConverged:         solved.Converged,
		SolverIterations:      solved.Iterations,
	}
}

// Classify flags a contract as abusive when its implied rate is strictly
// above the reference rate plus AbuseTolerance.
func Classify(impliedRate, referenceRate float64) entity.Verdict {
	if impliedRate > referenceRate+AbuseTolerance {
		return entity.VerdictAbusive
	}

	return entity.VerdictNormal
}

type Service struct {
	rates      RateProvider
	solverOpts []finance.SolveOption
}

func NewService(rates RateProvider) *Service {
	return &Service{rates: rates}
}

func (s *Service) WithSolverOptions(opts ...finance.SolveOption) *Service {
	s.solverOpts = append(s.solverOpts, opts...)
	return s
}

// EvaluateQuery validates query, resolves the reference rate of its category
// and evaluates it. When the reference rate is unavailable nothing is
// computed and the provider error is returned.
func (s *Service) EvaluateQuery(ctx context.Context, query entity.LoanQuery) (entity.EvaluationResult, entity.ReferenceRate, error) {
	if err := query.Validate(); err != nil {
		return entity.EvaluationResult{}, entity.ReferenceRate{}, fmt.Errorf("query.Validate: %w", err)
	}

	ref, err := s.rates.GetReferenceRate(ctx, query.Category)
	if err != nil {
		return entity.EvaluationResult{}, entity.ReferenceRate{}, fmt.Errorf("rates.GetReferenceRate: %w", err)
	}

	result := Evaluate(query, ref.MonthlyRate, s.solverOpts...)

	log := logger(ctx).With(slog.String(logx.FieldCategory, query.Category.String()))

	if !result.RateConverged {
		metrics.ObserveSolverNotConverged()
		log.Warn("implied rate did not converge",
			slog.Float64(logx.FieldRate, result.ImpliedRate),
			slog.Int(logx.FieldIterations, result.SolverIterations),
		)
	}

	metrics.ObserveEvaluation(query.Category.String(), result.Verdict.String())
	log.Info("loan evaluated",
		slog.String(logx.FieldVerdict, result.Verdict.String()),
		slog.Float64(logx.FieldImpliedRate, result.ImpliedRate),
		slog.Float64(logx.FieldReferenceRate, result.ReferenceRate),
	)

	return result, ref, nil
}
