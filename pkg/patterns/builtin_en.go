// pkg/patterns/builtin_en.go
package patterns

// English pattern table. Order inside each list matters only for
// capture extraction; scoring takes the max over the list.
var builtinEnglish = map[string][]string{
	"spending_total": {
		"how much did i spend this month",
		"how much did i spend *",
		"how much have i spent this month",
		"what did i spend this month",
		"total spending this month",
		"show my total expenses",
	},
	"spending_by_category": {
		"how much did i spend on {category}",
		"how much have i spent on {category}",
		"what did i spend on {category}",
		"spending on {category}",
		"{category} expenses this month",
	},
	"compare_months": {
		"compare with last month",
		"compare this month with last month",
		"compare * last month",
		"how does this month compare to last month",
		"spending versus last month",
	},
	"biggest_expense": {
		"what was my biggest expense",
		"biggest expense this month",
		"largest purchase this month",
		"what did i spend the most on",
	},
	"income_total": {
		"how much did i earn this month",
		"what is my income this month",
		"total income this month",
		"how much money came in this month",
	},
	"savings_rate": {
		"what is my savings rate",
		"how much of my income do i save",
		"savings rate this month",
	},
	"budget_status": {
		"how is my budget",
		"am i over budget",
		"budget status",
		"how much budget do i have left",
		"am i within my budget",
	},
	"budget_create": {
		"set a budget for {category}",
		"set a budget of {amount} for {category}",
		"create a budget for {category}",
	},
	"savings_goal_status": {
		"how is my savings goal",
		"how close am i to my goal",
		"savings goal progress",
		"when will i reach my goal",
	},
	"savings_goal_create": {
		"create a savings goal *",
		"set a goal to save {amount}",
		"i want to save {amount} for {name}",
	},
	"milestone_timeline": {
		"when will i have {amount}",
		"how long until i save {amount}",
		"when will my savings reach {amount}",
		"how long to reach {amount}",
	},
	"loan_status": {
		"how is my loan",
		"what is my loan balance",
		"loan status",
		"how much do i still owe",
	},
	"loan_payoff_time": {
		"when will my loan be paid off",
		"how long until i pay off my loan",
		"when will i finish paying my loan",
	},
	"loan_extra_payment": {
		"what if i pay {amount} extra on my loan",
		"what if i pay {amount} more every month",
		"what happens if i pay extra *",
		"pay {amount} extra on my loan",
	},
	"debt_overview": {
		"how much debt do i have",
		"show me all my debts",
		"what are my total debts",
		"debt overview",
	},
	"interest_paid": {
		"how much interest will i pay",
		"total interest on my loan",
		"how much interest am i paying",
	},
	"investment_projection": {
		"what if i invest {amount} every month",
		"how much will my investment grow",
		"project my investment *",
		"what will my savings be worth in {years} years",
	},
	"affordability_check": {
		"can i afford {item}",
		"can i afford to spend {amount}",
		"do i have enough money for {item}",
	},
	"balance_inquiry": {
		"what is my balance",
		"how much money do i have",
		"current balance",
	},
	"transaction_search": {
		"find transactions from {merchant}",
		"search my transactions for {term}",
		"show me transactions from {merchant}",
		"when did i buy {item}",
	},
	"recurring_expenses": {
		"what are my recurring expenses",
		"show my subscriptions",
		"recurring payments",
	},
	"greeting": {
		"hello",
		"hi there",
		"good morning",
		"hey",
	},
	"help": {
		"help",
		"what can you do",
		"what can i ask you",
		"how do you work",
	},
}
