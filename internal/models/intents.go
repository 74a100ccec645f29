// internal/models/intents.go
package models

// Intent is the financial-concern category a query is classified into.
// The set is closed: the router carries a handler for every routable
// intent, and the pattern registry must cover each of them in every
// supported locale.
type Intent string

const (
	IntentSpendingTotal      Intent = "spending_total"
	IntentSpendingByCategory Intent = "spending_by_category"
	IntentCompareMonths      Intent = "compare_months"
	IntentBiggestExpense     Intent = "biggest_expense"
	IntentIncomeTotal        Intent = "income_total"
	IntentSavingsRate        Intent = "savings_rate"
	IntentBudgetStatus       Intent = "budget_status"
	IntentBudgetCreate       Intent = "budget_create"
	IntentGoalStatus         Intent = "savings_goal_status"
	IntentGoalCreate         Intent = "savings_goal_create"
	IntentMilestoneTimeline  Intent = "milestone_timeline"
	IntentLoanStatus         Intent = "loan_status"
	IntentLoanPayoffTime     Intent = "loan_payoff_time"
	IntentLoanExtraPayment   Intent = "loan_extra_payment"
	IntentDebtOverview       Intent = "debt_overview"
	IntentInterestPaid       Intent = "interest_paid"
	IntentInvestmentGrowth   Intent = "investment_projection"
	IntentAffordability      Intent = "affordability_check"
	IntentBalanceInquiry     Intent = "balance_inquiry"
	IntentTransactionSearch  Intent = "transaction_search"
	IntentRecurringExpenses  Intent = "recurring_expenses"
	IntentGreeting           Intent = "greeting"
	IntentHelp               Intent = "help"

	// IntentUnknown is the defined no-match outcome. It is never a
	// registry entry; the router sends it to the clarification handler.
	IntentUnknown Intent = "unknown"
)

// RoutableIntents lists every intent the router must carry a handler
// for. The pattern registry is validated against this list at startup.
func RoutableIntents() []Intent {
	return []Intent{
		IntentSpendingTotal,
		IntentSpendingByCategory,
		IntentCompareMonths,
		IntentBiggestExpense,
		IntentIncomeTotal,
		IntentSavingsRate,
		IntentBudgetStatus,
		IntentBudgetCreate,
		IntentGoalStatus,
		IntentGoalCreate,
		IntentMilestoneTimeline,
		IntentLoanStatus,
		IntentLoanPayoffTime,
		IntentLoanExtraPayment,
		IntentDebtOverview,
		IntentInterestPaid,
		IntentInvestmentGrowth,
		IntentAffordability,
		IntentBalanceInquiry,
		IntentTransactionSearch,
		IntentRecurringExpenses,
		IntentGreeting,
		IntentHelp,
	}
}
