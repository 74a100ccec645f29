// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant/internal/common/logger"
	"finance-assistant/internal/models"
	"finance-assistant/internal/nlu/classifier"
	"finance-assistant/internal/router"
	"finance-assistant/internal/service"
	"finance-assistant/internal/simulation"
	"finance-assistant/pkg/patterns"
)

// fixtureData is a deterministic in-memory record source for pipeline
// runs without external services.
type fixtureData struct {
	transactions []models.Transaction
	loans        []models.Loan
	goals        []models.SavingsGoal
	budgets      []models.Budget
}

func (f *fixtureData) FetchTransactions(_ context.Context, _ string, from, to time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if !t.OccurredAt.Before(from) && t.OccurredAt.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fixtureData) FetchLoans(context.Context, string) ([]models.Loan, error) {
	return f.loans, nil
}

func (f *fixtureData) FetchSavingsGoals(context.Context, string) ([]models.SavingsGoal, error) {
	return f.goals, nil
}

func (f *fixtureData) FetchBudgets(context.Context, string) ([]models.Budget, error) {
	return f.budgets, nil
}

var fixedNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 10, 0, 0, 0, time.UTC)
}

func fixtures() *fixtureData {
	return &fixtureData{
		transactions: []models.Transaction{
			{ID: "t1", UserID: "u1", Category: "groceries", Description: "weekly shop", Amount: 120, Direction: models.DirectionDebit, OccurredAt: day(time.August, 3)},
			{ID: "t2", UserID: "u1", Category: "rent", Description: "rent", Amount: 900, Direction: models.DirectionDebit, OccurredAt: day(time.August, 1)},
			{ID: "t3", UserID: "u1", Category: "salary", Description: "payroll", Amount: 3000, Direction: models.DirectionCredit, OccurredAt: day(time.August, 1)},
			{ID: "t4", UserID: "u1", Category: "groceries", Description: "market", Amount: 90, Direction: models.DirectionDebit, OccurredAt: day(time.July, 5)},
			{ID: "t5", UserID: "u1", Category: "rent", Description: "rent", Amount: 900, Direction: models.DirectionDebit, OccurredAt: day(time.July, 1)},
		},
		loans: []models.Loan{
			{ID: "l1", UserID: "u1", Name: "car", OutstandingPrincipal: 5000, MonthlyPayment: 200, AnnualRatePercent: 12},
		},
		goals: []models.SavingsGoal{
			{ID: "g1", UserID: "u1", Name: "emergency", TargetAmount: 10000, CurrentAmount: 4000, MonthlyContribution: 250},
		},
		budgets: []models.Budget{
			{ID: "b1", UserID: "u1", Category: "groceries", MonthlyLimit: 100},
		},
	}
}

func newAssistant(t *testing.T, reg *patterns.Registry) *service.Assistant {
	t.Helper()
	log := logger.NewNoOpLogger()
	rtr := router.New(fixtures(), reg, log, router.WithClock(func() time.Time { return fixedNow }))
	return service.New(service.Options{
		Registry:      reg,
		TieBreak:      classifier.DefaultTieBreakPolicy(),
		Router:        rtr,
		Logger:        log,
		DefaultLocale: "en",
	})
}

func builtinAssistant(t *testing.T) *service.Assistant {
	t.Helper()
	reg, err := patterns.NewBuiltin()
	require.NoError(t, err)
	return newAssistant(t, reg)
}

func ask(t *testing.T, a *service.Assistant, query, locale string) *service.Answer {
	t.Helper()
	got, err := a.Answer(context.Background(), service.AnswerRequest{
		UserID: "u1",
		Query:  query,
		Locale: locale,
	})
	require.NoError(t, err)
	return got
}

func TestPipeline_SpendingTotalEndToEnd(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "how much did I spend this month", "en")

	require.Len(t, got.Results, 1)
	assert.Equal(t, models.IntentSpendingTotal, got.Results[0].Intent)
	assert.Equal(t, 1020.0, got.Results[0].Values["total"])
}

func TestPipeline_SpanishLocale(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "cuánto gasté este mes", "es")

	require.Len(t, got.Results, 1)
	assert.Equal(t, models.IntentSpendingTotal, got.Results[0].Intent)
	assert.Equal(t, 1020.0, got.Results[0].Values["total"])
}

func TestPipeline_MultiIntentUnion(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "how much did I spend this month and compare with last month", "en")

	intents := make(map[models.Intent]*router.ResultBundle)
	for i := range got.Results {
		intents[got.Results[i].Intent] = &got.Results[i]
	}

	spending := intents[models.IntentSpendingTotal]
	compare := intents[models.IntentCompareMonths]
	require.NotNil(t, spending)
	require.NotNil(t, compare)
	assert.Greater(t, spending.Confidence, 0.5)
	assert.Greater(t, compare.Confidence, 0.5)
	assert.Equal(t, 1020.0, compare.Values["current"])
	assert.Equal(t, 990.0, compare.Values["previous"])
}

func TestPipeline_FuzzyFallbackWithinBounds(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "how mcuh did i spnd on grocries", "en")

	require.Len(t, got.Results, 1)
	assert.Equal(t, models.IntentSpendingByCategory, got.Results[0].Intent)
	assert.Greater(t, got.Results[0].Confidence, 0.4)
	assert.LessOrEqual(t, got.Results[0].Confidence, 0.6)
}

func TestPipeline_LoanExtraPaymentSimulation(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "what if I pay $100 extra on my loan", "en")

	require.Len(t, got.Results, 1)
	res := got.Results[0]
	assert.Equal(t, models.IntentLoanExtraPayment, res.Intent)
	assert.Equal(t, 100.0, res.Values["extra_payment"])

	// The bundle must agree with the simulator called directly.
	baseline := simulation.Amortize(5000, 200, 0.01)
	improved := simulation.Amortize(5000, 300, 0.01)
	assert.Equal(t, float64(baseline.Months), res.Values["months_baseline"])
	assert.Equal(t, float64(improved.Months), res.Values["months_new"])
	assert.InDelta(t, baseline.TotalInterest-improved.TotalInterest, res.Values["interest_saved"], 1e-9)
}

func TestPipeline_MilestoneTimeline(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "how long until I save 10000", "en")

	require.Len(t, got.Results, 1)
	res := got.Results[0]
	assert.Equal(t, models.IntentMilestoneTimeline, res.Intent)
	assert.Greater(t, res.Values["months"], 0.0)
	assert.LessOrEqual(t, res.Values["months"], float64(simulation.HorizonCap))
}

func TestPipeline_UnknownQueryClarifies(t *testing.T) {
	a := builtinAssistant(t)

	got := ask(t, a, "xyzzy blorp quux", "en")

	require.Len(t, got.Results, 1)
	assert.True(t, got.Results[0].NeedsClarification)
}

func TestPipeline_Determinism(t *testing.T) {
	a := builtinAssistant(t)
	query := "how much did I spend on groceries and compare with last month"

	first := ask(t, a, query, "en")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Results, ask(t, a, query, "en").Results)
	}
}

func TestPipeline_VersionedPatternFileMatchesBuiltin(t *testing.T) {
	fromFile, err := patterns.Load("../../configs/intents.json")
	require.NoError(t, err)
	require.NoError(t, fromFile.ValidateCoverage(models.RoutableIntents()))

	builtin := builtinAssistant(t)
	loaded := newAssistant(t, fromFile)

	for _, query := range []string{
		"how much did I spend this month",
		"what if I pay $100 extra on my loan",
		"cuánto gasté en supermercado",
	} {
		locale := "en"
		if query[0] == 'c' {
			locale = "es"
		}
		a := ask(t, builtin, query, locale)
		b := ask(t, loaded, query, locale)
		assert.Equal(t, a.Results, b.Results, "query %q", query)
	}
}
