// internal/service/assistant.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"finance-assistant/internal/common/errors"
	"finance-assistant/internal/common/logger"
	"finance-assistant/internal/common/metrics"
	"finance-assistant/internal/common/observability"
	"finance-assistant/internal/models"
	"finance-assistant/internal/nlu/classifier"
	"finance-assistant/internal/nlu/contextual"
	"finance-assistant/internal/nlu/decomposer"
	"finance-assistant/internal/nlu/fuzzy"
	"finance-assistant/internal/router"
	"finance-assistant/internal/simulation"
	"finance-assistant/pkg/patterns"
)

// fuzzyTrigger is the direct-classification confidence below which the
// fuzzy matcher gets a chance to rescue the query.
const fuzzyTrigger = 0.6

// AnswerRequest is one free-text question with its conversation
// context. History is a read-only window owned by the caller.
type AnswerRequest struct {
	UserID  string
	Query   string
	Locale  string
	History []models.ConversationTurn
}

// Answer is the computed outcome for one request: one result bundle
// per resolved intent, ordered by confidence.
type Answer struct {
	RequestID     string                `json:"requestId"`
	Query         string                `json:"query"`
	EnhancedQuery string                `json:"enhancedQuery"`
	Locale        string                `json:"locale"`
	Results       []router.ResultBundle `json:"results"`
}

// Assistant runs the full pipeline: context enhancement, multi-intent
// decomposition, classification with fuzzy fallback, then routing.
type Assistant struct {
	registry   *patterns.Registry
	classifier *classifier.Classifier
	fuzzy      *fuzzy.Matcher
	decomposer *decomposer.Decomposer
	router     *router.Router
	cache      AnswerCache
	telemetry  *observability.Telemetry
	logger     logger.Logger

	defaultLocale string
}

// AnswerCache is the memoization collaborator; nil disables caching.
type AnswerCache interface {
	Get(ctx context.Context, userID, locale, query string, dest interface{}) (bool, error)
	Set(ctx context.Context, userID, locale, query string, value interface{}) error
}

type Options struct {
	Registry      *patterns.Registry
	TieBreak      classifier.TieBreakPolicy
	Router        *router.Router
	Cache         AnswerCache
	Telemetry     *observability.Telemetry
	Logger        logger.Logger
	DefaultLocale string
}

func New(opts Options) *Assistant {
	c := classifier.New(opts.Registry, opts.TieBreak)
	locale := opts.DefaultLocale
	if locale == "" {
		locale = "en"
	}
	return &Assistant{
		registry:      opts.Registry,
		classifier:    c,
		fuzzy:         fuzzy.New(opts.Registry),
		decomposer:    decomposer.New(c),
		router:        opts.Router,
		cache:         opts.Cache,
		telemetry:     opts.Telemetry,
		logger:        opts.Logger,
		defaultLocale: locale,
	}
}

// Answer resolves a free-text question end to end.
func (a *Assistant) Answer(ctx context.Context, req AnswerRequest) (*Answer, error) {
	locale := req.Locale
	if locale == "" {
		locale = a.defaultLocale
	}
	if !a.registry.HasLocale(locale) {
		return nil, errors.NewUnsupportedLocaleError(locale)
	}

	requestID := uuid.NewString()
	start := time.Now()
	log := a.logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"user_id":    req.UserID,
		"locale":     locale,
	})

	// Enhancement must precede the cache: a terse follow-up carries its
	// meaning in the history, so only the enhanced query is a safe key.
	enhanced := contextual.Enhance(req.Query, req.History, locale)

	if a.cache != nil {
		var cached Answer
		found, err := a.cache.Get(ctx, req.UserID, locale, enhanced, &cached)
		if err != nil {
			log.WithError(err).Warn("answer cache lookup failed", nil)
		} else if found {
			cached.RequestID = requestID
			return &cached, nil
		}
	}

	candidates := a.resolve(enhanced, locale)

	results := make([]router.ResultBundle, 0, len(candidates))
	for _, cand := range candidates {
		metrics.QueriesClassified.WithLabelValues(string(cand.Intent), locale).Inc()

		bundle, err := a.router.Route(ctx, router.Request{
			UserID:     req.UserID,
			Query:      enhanced,
			Locale:     locale,
			Intent:     cand.Intent,
			Confidence: cand.Confidence,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, *bundle)
	}

	answer := &Answer{
		RequestID:     requestID,
		Query:         req.Query,
		EnhancedQuery: enhanced,
		Locale:        locale,
		Results:       results,
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, req.UserID, locale, enhanced, answer); err != nil {
			log.WithError(err).Warn("answer cache write failed", nil)
		}
	}

	if a.telemetry != nil {
		a.telemetry.QueriesAnswered.Add(ctx, 1, metric.WithAttributes(
			attribute.String("locale", locale),
		))
		a.telemetry.AnswerDuration.Record(ctx, time.Since(start).Seconds())
	}

	log.Info("query answered", map[string]interface{}{
		"intents":  len(results),
		"enhanced": enhanced != req.Query,
	})
	return answer, nil
}

// resolve turns the enhanced query into routable candidates, invoking
// the fuzzy matcher only when direct classification comes up weak.
func (a *Assistant) resolve(query, locale string) []classifier.Candidate {
	candidates := a.decomposer.Decompose(query, locale)

	if len(candidates) == 0 || candidates[0].Confidence < fuzzyTrigger {
		match := a.fuzzy.Match(query, locale)
		accepted := match.Intent != models.IntentUnknown && match.Confidence > fuzzy.AcceptThreshold
		metrics.FuzzyFallbacks.WithLabelValues(locale, boolLabel(accepted)).Inc()

		if accepted {
			best := 0.0
			if len(candidates) > 0 {
				best = candidates[0].Confidence
			}
			if match.Confidence > best {
				candidates = []classifier.Candidate{match}
			}
		}
	}

	if len(candidates) == 0 {
		return []classifier.Candidate{{Intent: models.IntentUnknown, Confidence: 0}}
	}
	return candidates
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Classify exposes the ranked classification of one query.
func (a *Assistant) Classify(query, locale string) []classifier.Candidate {
	if locale == "" {
		locale = a.defaultLocale
	}
	return a.classifier.Rank(query, locale)
}

// SimulateAmortization runs the payoff simulation for a monthly rate
// given in percent.
func (a *Assistant) SimulateAmortization(principal, payment, monthlyRatePercent float64) (int, float64) {
	metrics.SimulatorRuns.WithLabelValues("amortization").Inc()
	res := simulation.Amortize(principal, payment, monthlyRatePercent/100)
	return res.Months, res.TotalInterest
}

// ProjectGrowth exposes the compound growth projection.
func (a *Assistant) ProjectGrowth(principal, contribution float64, periodsPerYear int, annualRate, years float64) float64 {
	metrics.SimulatorRuns.WithLabelValues("growth").Inc()
	return simulation.ProjectGrowth(principal, contribution, periodsPerYear, annualRate, years).FutureValue
}

// SolveMilestone exposes the milestone timeline solver.
func (a *Assistant) SolveMilestone(start, contribution, annualRate, target float64) int {
	metrics.SimulatorRuns.WithLabelValues("milestone").Inc()
	return simulation.SolveMilestone(start, contribution, annualRate, target)
}
