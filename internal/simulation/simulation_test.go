// internal/simulation/simulation_test.go
package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Amortization
// ==========================

func TestAmortize_ZeroInputs(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		payment   float64
		rate      float64
	}{
		{"zero principal", 0, 200, 0.01},
		{"negative principal", -100, 200, 0.01},
		{"zero payment", 5000, 0, 0.01},
		{"negative payment", 5000, -50, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amortize(tt.principal, tt.payment, tt.rate)
			assert.Equal(t, AmortizationResult{}, got)
		})
	}
}

func TestAmortize_PaysOffWithinHorizon(t *testing.T) {
	got := Amortize(5000, 200, 0.01)

	assert.Greater(t, got.Months, 0)
	assert.Less(t, got.Months, HorizonCap)
	assert.Greater(t, got.TotalInterest, 0.0)
}

func TestAmortize_ZeroRate(t *testing.T) {
	got := Amortize(1200, 100, 0)

	assert.Equal(t, 12, got.Months)
	assert.Equal(t, 0.0, got.TotalInterest)
}

func TestAmortize_MonotonicInPayment(t *testing.T) {
	low := Amortize(5000, 200, 0.01)
	high := Amortize(5000, 300, 0.01)

	assert.LessOrEqual(t, high.Months, low.Months)
	assert.LessOrEqual(t, high.TotalInterest, low.TotalInterest)
}

func TestAmortize_NonConvergentSentinel(t *testing.T) {
	// First-period interest is 20, payment 15 never reduces principal.
	got := Amortize(1000, 15, 0.02)

	assert.Equal(t, HorizonCap, got.Months)
	assert.InDelta(t, 20.0*HorizonCap, got.TotalInterest, 1e-9)
}

func TestAmortize_HorizonCapBoundsLongLoans(t *testing.T) {
	// Payment barely above first-period interest: converges on paper
	// but far beyond 50 years.
	got := Amortize(1000000, 5001, 0.005)

	assert.LessOrEqual(t, got.Months, HorizonCap)
}

// ==========================
// Compound growth
// ==========================

func TestProjectGrowth_ZeroRateIsExact(t *testing.T) {
	got := ProjectGrowth(0, 100, 12, 0, 10)

	assert.Equal(t, 12000.0, got.FutureValue)
}

func TestProjectGrowth_PrincipalOnly(t *testing.T) {
	got := ProjectGrowth(1000, 0, 1, 0.05, 1)

	assert.InDelta(t, 1050.0, got.FutureValue, 1e-9)
}

func TestProjectGrowth_ContributionsCompound(t *testing.T) {
	flat := ProjectGrowth(0, 100, 12, 0, 10)
	grown := ProjectGrowth(0, 100, 12, 0.05, 10)

	assert.Greater(t, grown.FutureValue, flat.FutureValue)
}

func TestProjectGrowth_DefaultsPeriodsPerYear(t *testing.T) {
	got := ProjectGrowth(0, 100, 0, 0, 1)

	assert.Equal(t, 1200.0, got.FutureValue)
}

// ==========================
// Milestone solver
// ==========================

func TestSolveMilestone_ImmediateReturns(t *testing.T) {
	tests := []struct {
		name         string
		start        float64
		contribution float64
		target       float64
	}{
		{"zero contribution", 100, 0, 5000},
		{"negative contribution", 100, -10, 5000},
		{"target already reached", 6000, 100, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, SolveMilestone(tt.start, tt.contribution, 0.05, tt.target))
		})
	}
}

func TestSolveMilestone_ZeroRate(t *testing.T) {
	// 100 per month toward 1200 from zero: exactly 12 months.
	assert.Equal(t, 12, SolveMilestone(0, 100, 0, 1200))
}

func TestSolveMilestone_GrowthShortensTimeline(t *testing.T) {
	flat := SolveMilestone(0, 100, 0, 10000)
	compounded := SolveMilestone(0, 100, 0.06, 10000)

	assert.LessOrEqual(t, compounded, flat)
}

func TestSolveMilestone_HorizonCap(t *testing.T) {
	// 1 per month toward a million: capped, not unbounded.
	assert.Equal(t, HorizonCap, SolveMilestone(0, 1, 0, 1_000_000))
}
