// Package rest holds the wire models of the public HTTP API.
package rest

// Category Loan category and where its reference rate comes from
type Category struct {
	// Name Category identifier (personal, vehicle, ...)
	Name string `json:"name"`

	// Source series | fixed
	Source string `json:"source"`

	// SeriesID SGS series code, only for series sources
	SeriesID int `json:"seriesId,omitempty"`

	// FixedMonthlyRate Monthly fraction, only for fixed sources
	FixedMonthlyRate float64 `json:"fixedMonthlyRate,omitempty"`
}

// ReferenceRate Market reference rate for a category
type ReferenceRate struct {
	Category string `json:"category"`
	Source   string `json:"source"`

	// MonthlyRate Monthly fraction (0.0236 = 2.36% a.m.)
	MonthlyRate float64 `json:"monthlyRate"`

	// AnnualRate Annual fraction as published by the series, 0 for fixed sources
	AnnualRate float64 `json:"annualRate,omitempty"`

	// ObservedAt Series observation date (YYYY-MM-DD)
	ObservedAt string `json:"observedAt,omitempty"`
}

// EvaluationRequest Contract data typed by the borrower
type EvaluationRequest struct {
	Category          string  `json:"category" validate:"required"`
	Principal         float64 `json:"principal" validate:"gt=0"`
	InstallmentAmount float64 `json:"installmentAmount" validate:"gt=0"`
	InstallmentCount  int     `json:"installmentCount" validate:"gte=1,lte=1200"`
	InstallmentsPaid  int     `json:"installmentsPaid" validate:"gte=0,ltefield=InstallmentCount"`

	// Locale BCP 47 tag for the display block, pt-BR by default
	Locale string `json:"locale,omitempty"`
}

// EvaluationResponse Outcome of a contract evaluation
type EvaluationResponse struct {
	ImpliedRate           float64       `json:"impliedRate"`
	ReferenceRate         ReferenceRate `json:"referenceRate"`
	FairInstallment       float64       `json:"fairInstallment"`
	RemainingInstallments int           `json:"remainingInstallments"`
	ProjectedSavings      float64       `json:"projectedSavings"`
	Verdict               string        `json:"verdict"`
	RateConverged         bool          `json:"rateConverged"`
	SolverIterations      int           `json:"solverIterations"`
	Display               Display       `json:"display"`
}

// Display Localized strings ready to be shown as is
type Display struct {
	ReferenceRate         string `json:"referenceRate"`
	ImpliedRate           string `json:"impliedRate"`
	Verdict               string `json:"verdict"`
	OriginalInstallment   string `json:"originalInstallment"`
	FairInstallment       string `json:"fairInstallment"`
	RemainingInstallments string `json:"remainingInstallments"`
	ProjectedSavings      string `json:"projectedSavings"`
}

// ImpliedRateRequest Payment stream to recover the rate from
type ImpliedRateRequest struct {
	Principal         float64 `json:"principal" validate:"gt=0"`
	InstallmentAmount float64 `json:"installmentAmount" validate:"gt=0"`
	InstallmentCount  int     `json:"installmentCount" validate:"gte=1,lte=1200"`
}

// ImpliedRateResponse Solver outcome
type ImpliedRateResponse struct {
	MonthlyRate float64 `json:"monthlyRate"`
	Converged   bool    `json:"converged"`
	Iterations  int     `json:"iterations"`
}

// FairInstallmentRequest Loan priced at a given monthly rate
type FairInstallmentRequest struct {
	Principal        float64 `json:"principal" validate:"gt=0"`
	MonthlyRate      float64 `json:"monthlyRate" validate:"gt=-1"`
	InstallmentCount int     `json:"installmentCount" validate:"gte=1,lte=1200"`
}

// FairInstallmentResponse Installment for a FairInstallmentRequest
type FairInstallmentResponse struct {
	InstallmentAmount float64 `json:"installmentAmount"`
}

// Error Error response body
type Error struct {
	// Code Machine-readable error code
	Code ErrorCode `json:"code"`

	// Message Human-readable description
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Error code
type ErrorCode string
