// internal/models/records.go
package models

import "time"

// Transaction direction values.
const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// Transaction is a single read-only ledger record. Amount is always
// positive; Direction tells spending from income apart.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Direction   string    `json:"direction"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Loan is a read-only loan position snapshot taken per request.
type Loan struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"userId"`
	Name                 string  `json:"name"`
	OutstandingPrincipal float64 `json:"outstandingPrincipal"`
	MonthlyPayment       float64 `json:"monthlyPayment"`
	AnnualRatePercent    float64 `json:"annualRatePercent"`
}

// MonthlyRate returns the periodic rate as a fraction.
func (l Loan) MonthlyRate() float64 {
	return l.AnnualRatePercent / 100 / 12
}

// SavingsGoal is a milestone a user's savings trajectory is projected
// to reach.
type SavingsGoal struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"userId"`
	Name                string  `json:"name"`
	TargetAmount        float64 `json:"targetAmount"`
	CurrentAmount       float64 `json:"currentAmount"`
	MonthlyContribution float64 `json:"monthlyContribution"`
}

// Budget caps monthly spending for one category.
type Budget struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthlyLimit"`
}
