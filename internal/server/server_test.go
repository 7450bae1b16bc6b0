package server_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"rate_audit/internal/domain/service/evaluation"
	"rate_audit/internal/domain/service/finance"
	"rate_audit/internal/domain/service/rates"
	"rate_audit/internal/infrastructure/bcb"
	"rate_audit/internal/server"
	"rate_audit/pkg/errcodes"
	"rate_audit/pkg/middlewarex"
	"rate_audit/pkg/rest"
	"rate_audit/pkg/tests"
)

// newTestAPI serves the API against a fake SGS upstream: the personal series
// answers 52,31% a.a., every other series fails.
func newTestAPI(t *testing.T) tests.APIClient {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, fmt.Sprintf("bcdata.sgs.%d/", rates.SeriesPersonal)) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"data":"01/09/2025","valor":"52,31"}]`))

			return
		}

		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(upstream.Close)

	provider := rates.NewProvider(
		rates.DefaultSources(0.018, 0.028),
		bcb.NewClient(upstream.URL, upstream.Client()),
	)

	srv := server.NewServer(
		server.NewEvaluationServer(evaluation.NewService(provider)),
		server.NewRateServer(provider),
	)

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Recovery)
	srv.RegisterRoutes(router)

	api := httptest.NewServer(router)
	t.Cleanup(api.Close)

	return tests.NewAPIClient(api.URL, api.Client())
}

func TestGetCategories(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)

	var categories []rest.Category

	resp, err := api.Get(context.Background(), "/v1/categories", &categories, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(categories, 6)
	rq.Equal(rest.Category{Name: "personal", Source: "series", SeriesID: rates.SeriesPersonal}, categories[0])
	rq.Equal(rest.Category{Name: "payroll-deduction", Source: "fixed", FixedMonthlyRate: 0.018}, categories[4])
}

func TestGetReferenceRate(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		category string
		status   int
		code     string
		monthly  float64
	}{
		{name: "Series category", category: "personal", status: http.StatusOK, monthly: 0.035684},
		{name: "Portuguese alias", category: "pessoal", status: http.StatusOK, monthly: 0.035684},
		{name: "Fixed category", category: "consignado-privado", status: http.StatusOK, monthly: 0.028},
		{name: "Upstream failure", category: "vehicle", status: http.StatusServiceUnavailable, code: errcodes.ReferenceRateUnavailable.String()},
		{name: "Unknown category", category: "boat", status: http.StatusBadRequest, code: errcodes.InvalidCategory.String()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var (
				rate    rest.ReferenceRate
				restErr rest.Error
			)

			resp, err := api.Get(ctx, "/v1/reference-rates/"+tc.category, &rate, &restErr)
			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)

			if tc.code != "" {
				rq.Equal(tc.code, string(restErr.Code))
				rq.NotEmpty(restErr.SupportID)

				return
			}

			rq.InDelta(tc.monthly, rate.MonthlyRate, 1e-6)
		})
	}
}

func TestGetReferenceRateSeriesFields(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)

	var rate rest.ReferenceRate

	_, err := api.Get(context.Background(), "/v1/reference-rates/personal", &rate, nil)
	rq.NoError(err)

	rq.Equal("personal", rate.Category)
	rq.Equal("series", rate.Source)
	rq.InDelta(0.5231, rate.AnnualRate, 1e-12)
	rq.Equal("2025-09-01", rate.ObservedAt)
}

func TestPostEvaluations(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)

	var response rest.EvaluationResponse

	resp, err := api.Post(context.Background(), "/v1/evaluations", rest.EvaluationRequest{
		Category:          "consignado",
		Principal:         10000,
		InstallmentAmount: 1100,
		InstallmentCount:  12,
		InstallmentsPaid:  4,
	}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.True(response.RateConverged)
	rq.InDelta(0.0455, response.ImpliedRate, 0.0001)
	rq.InDelta(0.018, response.ReferenceRate.MonthlyRate, 0)
	rq.Equal("payroll-deduction", response.ReferenceRate.Category)
	rq.InDelta(934.02, response.FairInstallment, 0.01)
	rq.Equal(8, response.RemainingInstallments)
	rq.InDelta(1327.84, response.ProjectedSavings, 0.01)
	rq.Equal("abusive", response.Verdict)

	rq.Equal(rest.Display{
		ReferenceRate:         "1,80%",
		ImpliedRate:           "4,55%",
		Verdict:               "POSSÍVEL ABUSO",
		OriginalInstallment:   "R$ 1.100,00",
		FairInstallment:       "R$ 934,02",
		RemainingInstallments: "8",
		ProjectedSavings:      "R$ 1.327,84",
	}, response.Display)
}

func TestPostEvaluationsEnglishDisplay(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)

	var response rest.EvaluationResponse

	_, err := api.Post(context.Background(), "/v1/evaluations", rest.EvaluationRequest{
		Category:          "personal",
		Principal:         10000,
		InstallmentAmount: 966.64,
		InstallmentCount:  12,
		Locale:            "en-US",
	}, &response, nil)
	rq.NoError(err)

	rq.Equal("normal", response.Verdict)
	rq.Zero(response.ProjectedSavings)
	rq.Equal("Within average", response.Display.Verdict)
	rq.Equal("3.57%", response.Display.ReferenceRate)
}

func TestPostEvaluationsErrors(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "Reference rate unavailable",
			body:   `{"category":"vehicle","principal":10000,"installmentAmount":966.64,"installmentCount":12}`,
			status: http.StatusServiceUnavailable,
			code:   errcodes.ReferenceRateUnavailable.String(),
		},
		{
			name:   "Unknown category",
			body:   `{"category":"boat","principal":10000,"installmentAmount":966.64,"installmentCount":12}`,
			status: http.StatusBadRequest,
			code:   errcodes.InvalidCategory.String(),
		},
		{
			name:   "More installments paid than exist",
			body:   `{"category":"personal","principal":10000,"installmentAmount":966.64,"installmentCount":12,"installmentsPaid":13}`,
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name:   "Term above limit",
			body:   `{"category":"personal","principal":10000,"installmentAmount":966.64,"installmentCount":1201}`,
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name:   "Zero principal",
			body:   `{"category":"personal","principal":0,"installmentAmount":966.64,"installmentCount":12}`,
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name:   "Malformed JSON",
			body:   `{"category":`,
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var (
				response rest.EvaluationResponse
				restErr  rest.Error
			)

			resp, err := api.PostJSON(ctx, "/v1/evaluations", tc.body, &response, &restErr)
			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)
			rq.Equal(tc.code, string(restErr.Code))
			rq.Equal(rest.EvaluationResponse{}, response)
		})
	}
}

func TestImpliedRateRoundTrip(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)
	ctx := context.Background()
	random := tests.NewRandomizer()

	for range 20 {
		principal, rate, count := random.Principal(), random.MonthlyRate(), random.InstallmentCount()

		var fair rest.FairInstallmentResponse

		_, err := api.Post(ctx, "/v1/fair-installment", rest.FairInstallmentRequest{
			Principal:        principal,
			MonthlyRate:      rate,
			InstallmentCount: count,
		}, &fair, nil)
		rq.NoError(err)
		rq.InDelta(finance.FairInstallment(principal, rate, count), fair.InstallmentAmount, 1e-9)

		var implied rest.ImpliedRateResponse

		_, err = api.Post(ctx, "/v1/implied-rate", rest.ImpliedRateRequest{
			Principal:         principal,
			InstallmentAmount: fair.InstallmentAmount,
			InstallmentCount:  count,
		}, &implied, nil)
		rq.NoError(err)
		rq.True(implied.Converged, "principal %.2f rate %f count %d", principal, rate, count)
		rq.InDelta(rate, implied.MonthlyRate, 0.0001)
	}
}

func TestComputeValidation(t *testing.T) {
	rq := require.New(t)
	api := newTestAPI(t)
	ctx := context.Background()

	testCases := []struct {
		name string
		path string
		body string
	}{
		{
			name: "Negative rate",
			path: "/v1/fair-installment",
			body: `{"principal":1000,"monthlyRate":-1,"installmentCount":12}`,
		},
		{
			name: "Fair installment term above limit",
			path: "/v1/fair-installment",
			body: `{"principal":1000,"monthlyRate":0.01,"installmentCount":1201}`,
		},
		{
			name: "Implied rate term above limit",
			path: "/v1/implied-rate",
			body: `{"principal":1000,"installmentAmount":1,"installmentCount":20000}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var restErr rest.Error

			resp, err := api.PostJSON(ctx, tc.path, tc.body, nil, &restErr)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(errcodes.ValidationError.String(), string(restErr.Code))
		})
	}
}
