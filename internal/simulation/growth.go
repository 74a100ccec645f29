// internal/simulation/growth.go
package simulation

import "math"

// GrowthProjection is the future value of a principal plus periodic
// contributions compounded at a fixed rate.
type GrowthProjection struct {
	Years       float64 `json:"years"`
	Rate        float64 `json:"rate"`
	FutureValue float64 `json:"futureValue"`
}

// ProjectGrowth compounds principal and contributions over the given
// horizon. annualRate is a fraction (0.07 for 7%). The zero-rate case
// is handled separately so the annuity term never divides by zero.
func ProjectGrowth(principal, contribution float64, periodsPerYear int, annualRate, years float64) GrowthProjection {
	if periodsPerYear <= 0 {
		periodsPerYear = 12
	}

	n := float64(periodsPerYear) * years
	if annualRate == 0 {
		return GrowthProjection{
			Years:       years,
			Rate:        annualRate,
			FutureValue: principal + contribution*n,
		}
	}

	periodicRate := annualRate / float64(periodsPerYear)
	g := math.Pow(1+periodicRate, n)
	fv := principal*g + contribution*(g-1)/periodicRate

	return GrowthProjection{Years: years, Rate: annualRate, FutureValue: fv}
}
