package entity

type Verdict string

const (
	VerdictAbusive Verdict = "abusive"
	VerdictNormal  Verdict = "normal"
)

func (v Verdict) String() string {
	return string(v)
}

// EvaluationResult is produced once per evaluation and never mutated.
type EvaluationResult struct {
	ImpliedRate           float64
	ReferenceRate         float64
	FairInstallment       float64
	RemainingInstallments int
	ProjectedSavings      float64
	Verdict               Verdict

	// RateConverged is false when the solver ran out of iterations and
	// ImpliedRate is only a best-effort estimate.
	RateConverged    bool
	SolverIterations int
}
