package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"rate_audit/internal/domain"
	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/evaluation"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/errcodes"
)

type fixedRate struct {
	monthly float64
	err     error
}

func (f fixedRate) GetReferenceRate(_ context.Context, category value.Category) (entity.ReferenceRate, error) {
	if f.err != nil {
		return entity.ReferenceRate{}, f.err
	}

	return entity.ReferenceRate{Category: category, MonthlyRate: f.monthly}, nil
}

func TestEvaluate(t *testing.T) {
	rq := require.New(t)

	query := entity.LoanQuery{
		Category:          value.CategoryPayrollDeduction,
		Principal:         10000,
		InstallmentAmount: 1100,
		InstallmentCount:  12,
		InstallmentsPaid:  4,
	}

	var buf bytes.Buffer

	err := evaluate(context.Background(), evaluation.NewService(fixedRate{monthly: 0.018}), query, language.BrazilianPortuguese, &buf)
	rq.NoError(err)

	rq.Equal(
		"Taxa de referência (a.m.): 1,80%\n"+
			"Taxa do contrato (a.m.): 4,55%\n"+
			"Resultado: POSSÍVEL ABUSO\n"+
			"Parcela atual: R$ 1.100,00\n"+
			"Parcela justa: R$ 934,02\n"+
			"Parcelas restantes: 8\n"+
			"Economia projetada: R$ 1.327,84\n",
		buf.String(),
	)
}

func TestEvaluateUnavailableRate(t *testing.T) {
	rq := require.New(t)

	svc := evaluation.NewService(fixedRate{
		err: domain.WrapError(errors.New("boom"), errcodes.ReferenceRateUnavailable, "reference rate unavailable"),
	})

	var buf bytes.Buffer

	err := evaluate(context.Background(), svc, entity.LoanQuery{
		Category:          value.CategoryPersonal,
		Principal:         10000,
		InstallmentAmount: 966.64,
		InstallmentCount:  12,
	}, language.AmericanEnglish, &buf)
	rq.True(domain.HasCode(err, errcodes.ReferenceRateUnavailable))
	rq.Empty(buf.String())
}

func TestPrintReportNotConverged(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	printReport(&buf, language.AmericanEnglish, evaluation.Report{Verdict: "Within average"}, false)

	rq.Contains(buf.String(), "Verdict: Within average\n")
	rq.Contains(buf.String(), "the solver did not converge")
}

func TestNewQuery(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		category string
		count    int
		paid     int
		code     string
	}{
		{name: "Valid", category: "consignado", count: 12, paid: 4},
		{name: "Longest term", category: "imobiliario", count: entity.MaxInstallmentCount},
		{name: "Term above limit", category: "mortgage", count: entity.MaxInstallmentCount + 1, code: errcodes.InvalidLoanQuery.String()},
		{name: "Paid exceeds count", category: "personal", count: 12, paid: 13, code: errcodes.InvalidLoanQuery.String()},
		{name: "Unknown category", category: "boat", count: 12, code: errcodes.InvalidCategory.String()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			query, err := newQuery(tc.category, 10000, 966.64, tc.count, tc.paid)
			if tc.code == "" {
				rq.NoError(err)
				rq.Equal(tc.count, query.InstallmentCount)

				return
			}

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
		})
	}
}
