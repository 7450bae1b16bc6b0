package tests

import (
	"math/rand"
	"time"
)

// Randomizer draws plausible loan parameters for property-style tests.
type Randomizer struct {
	random *rand.Rand
}

func NewRandomizer() Randomizer {
	return Randomizer{
		random: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // for tests
	}
}

// Principal returns an amount between 500 and 500000 with cent precision.
func (r Randomizer) Principal() float64 {
	cents := 50_000 + r.random.Int63n(50_000_000-50_000)
	return float64(cents) / 100
}

// MonthlyRate returns a rate between 0 and 10% per month.
func (r Randomizer) MonthlyRate() float64 {
	return r.random.Float64() * 0.1
}

// InstallmentCount returns a term between 1 and 420 months.
func (r Randomizer) InstallmentCount() int {
	return 1 + r.random.Intn(420) //nolint:mnd // skip
}
