// internal/router/router.go
package router

import (
	"context"
	"time"

	"finance-assistant/internal/common/logger"
	"finance-assistant/internal/common/metrics"
	"finance-assistant/internal/models"
	"finance-assistant/internal/store"
	"finance-assistant/pkg/patterns"
)

// Request is one resolved intent ready for handling.
type Request struct {
	UserID     string
	Query      string
	Locale     string
	Intent     models.Intent
	Confidence float64
}

// ResultBundle is the numeric outcome of one handled intent. Rendering
// it into user-facing text is the templating collaborator's job; this
// core only computes the numbers.
type ResultBundle struct {
	Intent             models.Intent        `json:"intent"`
	Confidence         float64              `json:"confidence"`
	Values             map[string]float64   `json:"values,omitempty"`
	Details            map[string]string    `json:"details,omitempty"`
	Transactions       []models.Transaction `json:"transactions,omitempty"`
	NeedsClarification bool                 `json:"needsClarification,omitempty"`
}

// HandlerFunc computes a result bundle for one resolved intent.
type HandlerFunc func(ctx context.Context, req Request) (*ResultBundle, error)

// AlertSink receives budget-overrun notifications discovered while
// handling budget questions.
type AlertSink interface {
	BudgetOverrun(ctx context.Context, userID, category string, spent, limit float64) error
}

// TransactionSearcher answers free-text transaction lookups.
type TransactionSearcher interface {
	Search(ctx context.Context, userID, terms string, size int) ([]models.Transaction, error)
}

// Router dispatches resolved intents to their handlers. The handler
// map is built over the full routable intent list at construction, so
// a missing handler is a startup panic rather than a runtime surprise.
type Router struct {
	data     store.DataAccess
	registry *patterns.Registry
	search   TransactionSearcher
	alerts   AlertSink
	logger   logger.Logger
	now      func() time.Time

	handlers map[models.Intent]HandlerFunc
}

// Option tunes optional router collaborators.
type Option func(*Router)

// WithSearch wires a transaction searcher for description-driven
// lookups. Without it, transaction_search falls back to scanning the
// data-access layer.
func WithSearch(s TransactionSearcher) Option {
	return func(r *Router) { r.search = s }
}

// WithAlerts wires the budget-overrun alert sink.
func WithAlerts(a AlertSink) Option {
	return func(r *Router) { r.alerts = a }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// New builds a router with a handler for every routable intent.
func New(data store.DataAccess, registry *patterns.Registry, log logger.Logger, opts ...Option) *Router {
	r := &Router{
		data:     data,
		registry: registry,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.handlers = map[models.Intent]HandlerFunc{
		models.IntentSpendingTotal:      r.handleSpendingTotal,
		models.IntentSpendingByCategory: r.handleSpendingByCategory,
		models.IntentCompareMonths:      r.handleCompareMonths,
		models.IntentBiggestExpense:     r.handleBiggestExpense,
		models.IntentIncomeTotal:        r.handleIncomeTotal,
		models.IntentSavingsRate:        r.handleSavingsRate,
		models.IntentBudgetStatus:       r.handleBudgetStatus,
		models.IntentBudgetCreate:       r.handleBudgetCreate,
		models.IntentGoalStatus:         r.handleGoalStatus,
		models.IntentGoalCreate:         r.handleGoalCreate,
		models.IntentMilestoneTimeline:  r.handleMilestoneTimeline,
		models.IntentLoanStatus:         r.handleLoanStatus,
		models.IntentLoanPayoffTime:     r.handleLoanPayoffTime,
		models.IntentLoanExtraPayment:   r.handleLoanExtraPayment,
		models.IntentDebtOverview:       r.handleDebtOverview,
		models.IntentInterestPaid:       r.handleInterestPaid,
		models.IntentInvestmentGrowth:   r.handleInvestmentGrowth,
		models.IntentAffordability:      r.handleAffordability,
		models.IntentBalanceInquiry:     r.handleBalanceInquiry,
		models.IntentTransactionSearch:  r.handleTransactionSearch,
		models.IntentRecurringExpenses:  r.handleRecurringExpenses,
		models.IntentGreeting:           r.handleGreeting,
		models.IntentHelp:               r.handleHelp,
	}

	for _, intent := range models.RoutableIntents() {
		if r.handlers[intent] == nil {
			panic("router: no handler for intent " + string(intent))
		}
	}
	return r
}

// Route dispatches one resolved intent. Unrecognized labels (including
// "unknown") go to the clarification handler; classification never
// fails, and neither does routing.
func (r *Router) Route(ctx context.Context, req Request) (*ResultBundle, error) {
	handler, ok := r.handlers[req.Intent]
	if !ok {
		return r.handleClarification(ctx, req)
	}

	start := r.now()
	bundle, err := handler(ctx, req)
	if err != nil {
		r.logger.WithError(err).Warn("intent handler failed", map[string]interface{}{
			"intent":  req.Intent,
			"user_id": req.UserID,
		})
		return nil, err
	}
	metrics.AnswerDuration.WithLabelValues(string(req.Intent)).Observe(r.now().Sub(start).Seconds())
	return bundle, nil
}

// handleClarification is the defined no-match outcome.
func (r *Router) handleClarification(_ context.Context, req Request) (*ResultBundle, error) {
	return &ResultBundle{
		Intent:             models.IntentUnknown,
		Confidence:         req.Confidence,
		NeedsClarification: true,
	}, nil
}

// monthWindow returns [start of month containing t, start of next month).
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
