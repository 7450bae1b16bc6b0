package server

import (
	"context"
	"fmt"
	"net/http"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/evaluation"
	"rate_audit/internal/domain/service/finance"
	"rate_audit/pkg/httpx/reply"
	"rate_audit/pkg/httpx/req"
	"rate_audit/pkg/money"
	"rate_audit/pkg/rest"
)

type evaluationService interface {
	EvaluateQuery(context.Context, entity.LoanQuery) (entity.EvaluationResult, entity.ReferenceRate, error)
}

type EvaluationServer struct {
	evaluationService evaluationService
}

func NewEvaluationServer(evaluationService evaluationService) EvaluationServer {
	return EvaluationServer{
		evaluationService: evaluationService,
	}
}

func (s EvaluationServer) postV1Evaluations(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.EvaluationRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	query, err := newDomainLoanQuery(request)
	if err != nil {
		return fmt.Errorf("newDomainLoanQuery: %w", err)
	}

	result, rate, err := s.evaluationService.EvaluateQuery(ctx, query)
	if err != nil {
		return fmt.Errorf("evaluationService.EvaluateQuery: %w", err)
	}

	report := evaluation.NewReport(money.ParseLocale(request.Locale), query, result)

	reply.JSON(ctx, w, http.StatusOK, newRESTEvaluation(result, rate, report))

	return nil
}

func (s EvaluationServer) postV1ImpliedRate(w http.ResponseWriter, r *http.Request) error {
	var request rest.ImpliedRateRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	solved := finance.SolveRate(request.Principal, request.InstallmentAmount, request.InstallmentCount)

	reply.JSON(r.Context(), w, http.StatusOK, rest.ImpliedRateResponse{
		MonthlyRate: solved.Rate,
		Converged:   solved.Converged,
		Iterations:  solved.Iterations,
	})

	return nil
}

func (s EvaluationServer) postV1FairInstallment(w http.ResponseWriter, r *http.Request) error {
	var request rest.FairInstallmentRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.FairInstallmentResponse{
		InstallmentAmount: finance.FairInstallment(request.Principal, request.MonthlyRate, request.InstallmentCount),
	})

	return nil
}
