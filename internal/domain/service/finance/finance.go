// Package finance holds the pricing math of fixed-installment loans: the
// implied-rate solver and the fair-installment formula. All rates are
// periodic (monthly) fractions.
package finance

import "math"

const (
	DefaultInitialRate   = 0.01
	DefaultTolerance     = 0.00001
	DefaultMaxIterations = 1000

	// rateFloor keeps 1+rate strictly positive while iterating.
	rateFloor = -0.99
)

// SolveResult is the outcome of SolveRate. When Converged is false, Rate is
// the last iterate: a best-effort estimate the caller may still display.
type SolveResult struct {
	Rate       float64
	Converged  bool
	Iterations int
}

type solverOptions struct {
	initialRate   float64
	tolerance     float64
	maxIterations int
}

type SolveOption func(*solverOptions)

func WithInitialRate(rate float64) SolveOption {
	return func(o *solverOptions) {
		o.initialRate = rate
	}
}

// WithTolerance sets the accepted absolute pricing error, in currency units.
func WithTolerance(tolerance float64) SolveOption {
	return func(o *solverOptions) {
		o.tolerance = tolerance
	}
}

func WithMaxIterations(n int) SolveOption {
	return func(o *solverOptions) {
		o.maxIterations = n
	}
}

// SolveRate recovers the periodic rate at which count equal installments are
// worth principal today.
//
// Each step measures the pricing error principal − PV(rate) and corrects the
// rate by error / PV'(rate), where
//
//	PV(r)  = Σ installment / (1+r)^i,             i = 1..count
//	PV'(r) = −Σ i · installment / (1+r)^(i+1)
//
// Iteration stops once |error| < tolerance. A step that lands where PV
// overflows is halved. Inputs must be positive; for
// anything else the zero result is returned unconverged.
func SolveRate(principal, installment float64, count int, opts ...SolveOption) SolveResult {
	o := solverOptions{
		initialRate:   DefaultInitialRate,
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if principal <= 0 || installment <= 0 || count < 1 {
		return SolveResult{}
	}

	rate := math.Max(o.initialRate, rateFloor)
	prev := rate

	for iter := 0; iter < o.maxIterations; iter++ {
		pv, slope := presentValueAndSlope(installment, rate, count)

		// Overshot into a region where the discounting overflows: retreat
		// halfway towards the last finite iterate.
		if !isFinite(pv) || !isFinite(slope) {
			if iter == 0 {
				return SolveResult{Rate: rate, Converged: false, Iterations: 1}
			}

			rate = prev + (rate-prev)/2

			continue
		}

		pricingErr := principal - pv

		if math.Abs(pricingErr) < o.tolerance {
			return SolveResult{Rate: rate, Converged: true, Iterations: iter + 1}
		}

		next := math.Max(rate+pricingErr/slope, rateFloor)
		if !isFinite(next) {
			return SolveResult{Rate: rate, Converged: false, Iterations: iter + 1}
		}

		prev, rate = rate, next
	}

	return SolveResult{Rate: rate, Converged: false, Iterations: o.maxIterations}
}

// PresentValue discounts count equal installments at rate.
func PresentValue(installment, rate float64, count int) float64 {
	pv, _ := presentValueAndSlope(installment, rate, count)
	return pv
}

func presentValueAndSlope(installment, rate float64, count int) (float64, float64) {
	var pv, slope float64

	discount := 1.0
	base := 1 + rate

	for i := 1; i <= count; i++ {
		discount /= base
		pv += installment * discount
		slope -= float64(i) * installment * discount / base
	}

	return pv, slope
}

// FairInstallment is the fixed installment that amortizes principal over
// count periods at rate. A rate of exactly zero splits the principal evenly.
func FairInstallment(principal, rate float64, count int) float64 {
	if rate == 0 {
		return principal / float64(count)
	}

	// 1-(1+rate)^-count, kept non-zero when 1+rate rounds to 1.
	denominator := -math.Expm1(-float64(count) * math.Log1p(rate))

	return principal * rate / denominator
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AnnualToMonthly converts an effective annual rate into the equivalent
// effective monthly rate.
func AnnualToMonthly(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}
