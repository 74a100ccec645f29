// internal/simulation/milestone.go
package simulation

// SolveMilestone returns the number of monthly periods until the
// balance reaches target, contributing and compounding each period.
// annualRate is a fraction. A non-positive contribution or an already
// reached target returns 0 without iterating; otherwise the walk is
// bounded by HorizonCap.
func SolveMilestone(startingBalance, contribution, annualRate, target float64) int {
	if contribution <= 0 || startingBalance >= target {
		return 0
	}

	monthlyRate := annualRate / 12
	balance := startingBalance
	months := 0

	for balance < target && months < HorizonCap {
		balance += contribution
		balance *= 1 + monthlyRate
		months++
	}

	return months
}
