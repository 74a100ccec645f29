// internal/simulation/amortization.go
package simulation

// HorizonCap bounds every simulator at 600 periods (50 years at
// monthly granularity). All routines here are total: they terminate
// within the cap regardless of input.
const HorizonCap = 600

// AmortizationResult is the outcome of paying a loan down period by
// period. Months == HorizonCap with the sentinel interest figure means
// the payment never covers accruing interest.
type AmortizationResult struct {
	Months        int     `json:"months"`
	TotalInterest float64 `json:"totalInterest"`
}

// Amortize walks a loan balance period by period. periodicRate is a
// fraction per period (0.01 for 1% monthly), not a percentage.
//
// A payment that does not exceed the period interest is a defined
// business outcome, not a fault: the sentinel (HorizonCap, interest at
// cap) is returned instead of looping.
func Amortize(principal, payment, periodicRate float64) AmortizationResult {
	if principal <= 0 || payment <= 0 {
		return AmortizationResult{}
	}

	balance := principal
	totalInterest := 0.0
	months := 0

	for balance > 0 && months < HorizonCap {
		interest := balance * periodicRate
		totalInterest += interest

		reduction := payment - interest
		if reduction <= 0 {
			return AmortizationResult{
				Months:        HorizonCap,
				TotalInterest: totalInterest * HorizonCap,
			}
		}
		if reduction > balance {
			reduction = balance
		}

		balance -= reduction
		months++
	}

	return AmortizationResult{Months: months, TotalInterest: totalInterest}
}
