// internal/router/handlers.go
package router

import (
	"context"
	"fmt"
	"strings"

	"finance-assistant/internal/common/metrics"
	"finance-assistant/internal/models"
	"finance-assistant/internal/simulation"
	"finance-assistant/pkg/patterns"
)

func (r *Router) handleSpendingTotal(ctx context.Context, req Request) (*ResultBundle, error) {
	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"total":        sumByDirection(txs, models.DirectionDebit),
			"transactions": float64(len(txs)),
		},
	}, nil
}

func (r *Router) handleSpendingByCategory(ctx context.Context, req Request) (*ResultBundle, error) {
	category := r.captureOrKeyword(req, "category")

	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	var total float64
	var count int
	for _, t := range txs {
		if t.Direction == models.DirectionDebit && strings.EqualFold(t.Category, category) {
			total += t.Amount
			count++
		}
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values:     map[string]float64{"total": total, "transactions": float64(count)},
		Details:    map[string]string{"category": category},
	}, nil
}

func (r *Router) handleCompareMonths(ctx context.Context, req Request) (*ResultBundle, error) {
	thisFrom, thisTo := monthWindow(r.now())
	lastFrom, lastTo := monthWindow(thisFrom.AddDate(0, 0, -1))

	current, err := r.data.FetchTransactions(ctx, req.UserID, thisFrom, thisTo)
	if err != nil {
		return nil, err
	}
	previous, err := r.data.FetchTransactions(ctx, req.UserID, lastFrom, lastTo)
	if err != nil {
		return nil, err
	}

	currentTotal := sumByDirection(current, models.DirectionDebit)
	previousTotal := sumByDirection(previous, models.DirectionDebit)

	// Zero previous total means no change ratio, not a division.
	var changePct float64
	if previousTotal > 0 {
		changePct = (currentTotal - previousTotal) / previousTotal * 100
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"current":    currentTotal,
			"previous":   previousTotal,
			"difference": currentTotal - previousTotal,
			"change_pct": changePct,
		},
	}, nil
}

func (r *Router) handleBiggestExpense(ctx context.Context, req Request) (*ResultBundle, error) {
	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	var biggest *models.Transaction
	for i := range txs {
		t := &txs[i]
		if t.Direction != models.DirectionDebit {
			continue
		}
		if biggest == nil || t.Amount > biggest.Amount {
			biggest = t
		}
	}

	bundle := &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values:     map[string]float64{"amount": 0},
	}
	if biggest != nil {
		bundle.Values["amount"] = biggest.Amount
		bundle.Details = map[string]string{
			"category":    biggest.Category,
			"description": biggest.Description,
		}
		bundle.Transactions = []models.Transaction{*biggest}
	}
	return bundle, nil
}

func (r *Router) handleIncomeTotal(ctx context.Context, req Request) (*ResultBundle, error) {
	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values:     map[string]float64{"total": sumByDirection(txs, models.DirectionCredit)},
	}, nil
}

func (r *Router) handleSavingsRate(ctx context.Context, req Request) (*ResultBundle, error) {
	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	income := sumByDirection(txs, models.DirectionCredit)
	spending := sumByDirection(txs, models.DirectionDebit)

	// No income means no meaningful rate; report zero.
	var rate float64
	if income > 0 {
		rate = (income - spending) / income
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"income":   income,
			"spending": spending,
			"rate":     rate,
		},
	}, nil
}

func (r *Router) handleBudgetStatus(ctx context.Context, req Request) (*ResultBundle, error) {
	budgets, err := r.data.FetchBudgets(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[string]float64)
	for _, t := range txs {
		if t.Direction == models.DirectionDebit {
			spentByCategory[strings.ToLower(t.Category)] += t.Amount
		}
	}

	values := make(map[string]float64, len(budgets)*2)
	var overruns float64
	for _, b := range budgets {
		spent := spentByCategory[strings.ToLower(b.Category)]
		values["spent_"+b.Category] = spent
		values["limit_"+b.Category] = b.MonthlyLimit
		if spent > b.MonthlyLimit {
			overruns++
			if r.alerts != nil {
				if alertErr := r.alerts.BudgetOverrun(ctx, req.UserID, b.Category, spent, b.MonthlyLimit); alertErr != nil {
					r.logger.WithError(alertErr).Warn("budget alert failed", map[string]interface{}{
						"category": b.Category,
					})
				}
			}
		}
	}
	values["budgets"] = float64(len(budgets))
	values["overruns"] = overruns

	return &ResultBundle{Intent: req.Intent, Confidence: req.Confidence, Values: values}, nil
}

func (r *Router) handleBudgetCreate(_ context.Context, req Request) (*ResultBundle, error) {
	amount := parseAmount(req.Query)
	if v, ok := r.registry.ExtractCapture(req.Locale, req.Intent, req.Query, "amount"); ok {
		amount = parseAmount(v)
	}
	category := r.captureOrKeyword(req, "category")

	// Persistence is the ledger collaborator's job; the bundle carries
	// the parsed parameters for it.
	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values:     map[string]float64{"limit": amount},
		Details:    map[string]string{"action": "create_budget", "category": category},
	}, nil
}

func (r *Router) handleGoalStatus(ctx context.Context, req Request) (*ResultBundle, error) {
	goals, err := r.data.FetchSavingsGoals(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	values := map[string]float64{"goals": float64(len(goals))}
	for _, g := range goals {
		var progress float64
		if g.TargetAmount > 0 {
			progress = g.CurrentAmount / g.TargetAmount
		}
		values["progress_"+g.Name] = progress

		metrics.SimulatorRuns.WithLabelValues("milestone").Inc()
		months := simulation.SolveMilestone(g.CurrentAmount, g.MonthlyContribution, 0, g.TargetAmount)
		values["months_"+g.Name] = float64(months)
	}

	return &ResultBundle{Intent: req.Intent, Confidence: req.Confidence, Values: values}, nil
}

func (r *Router) handleGoalCreate(_ context.Context, req Request) (*ResultBundle, error) {
	amount := parseAmount(req.Query)
	if v, ok := r.registry.ExtractCapture(req.Locale, req.Intent, req.Query, "amount"); ok {
		amount = parseAmount(v)
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values:     map[string]float64{"target": amount},
		Details:    map[string]string{"action": "create_goal"},
	}, nil
}

func (r *Router) handleMilestoneTimeline(ctx context.Context, req Request) (*ResultBundle, error) {
	goals, err := r.data.FetchSavingsGoals(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return &ResultBundle{
			Intent:             req.Intent,
			Confidence:         req.Confidence,
			NeedsClarification: true,
		}, nil
	}

	g := goals[0]
	metrics.SimulatorRuns.WithLabelValues("milestone").Inc()
	months := simulation.SolveMilestone(g.CurrentAmount, g.MonthlyContribution, defaultAnnualRatePct/100, g.TargetAmount)

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"months":  float64(months),
			"target":  g.TargetAmount,
			"current": g.CurrentAmount,
		},
		Details: map[string]string{"goal": g.Name},
	}, nil
}

func (r *Router) handleLoanStatus(ctx context.Context, req Request) (*ResultBundle, error) {
	loans, err := r.data.FetchLoans(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	values := map[string]float64{"loans": float64(len(loans))}
	var total float64
	for _, l := range loans {
		total += l.OutstandingPrincipal
		values["principal_"+l.Name] = l.OutstandingPrincipal
	}
	values["total_outstanding"] = total

	return &ResultBundle{Intent: req.Intent, Confidence: req.Confidence, Values: values}, nil
}

func (r *Router) handleLoanPayoffTime(ctx context.Context, req Request) (*ResultBundle, error) {
	loans, err := r.data.FetchLoans(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return &ResultBundle{
			Intent:             req.Intent,
			Confidence:         req.Confidence,
			NeedsClarification: true,
		}, nil
	}

	l := loans[0]
	metrics.SimulatorRuns.WithLabelValues("amortization").Inc()
	res := simulation.Amortize(l.OutstandingPrincipal, l.MonthlyPayment, l.MonthlyRate())

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"months":         float64(res.Months),
			"total_interest": res.TotalInterest,
			"principal":      l.OutstandingPrincipal,
		},
		Details: map[string]string{"loan": l.Name},
	}, nil
}

func (r *Router) handleLoanExtraPayment(ctx context.Context, req Request) (*ResultBundle, error) {
	loans, err := r.data.FetchLoans(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return &ResultBundle{
			Intent:             req.Intent,
			Confidence:         req.Confidence,
			NeedsClarification: true,
		}, nil
	}

	extra := parseAmount(req.Query)
	if v, ok := r.registry.ExtractCapture(req.Locale, req.Intent, req.Query, "amount"); ok {
		extra = parseAmount(v)
	}

	l := loans[0]
	rate := l.MonthlyRate()

	metrics.SimulatorRuns.WithLabelValues("amortization").Add(2)
	baseline := simulation.Amortize(l.OutstandingPrincipal, l.MonthlyPayment, rate)
	improved := simulation.Amortize(l.OutstandingPrincipal, l.MonthlyPayment+extra, rate)

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"extra_payment":   extra,
			"months_baseline": float64(baseline.Months),
			"months_new":      float64(improved.Months),
			"months_saved":    float64(baseline.Months - improved.Months),
			"interest_saved":  baseline.TotalInterest - improved.TotalInterest,
		},
		Details: map[string]string{"loan": l.Name},
	}, nil
}

func (r *Router) handleDebtOverview(ctx context.Context, req Request) (*ResultBundle, error) {
	loans, err := r.data.FetchLoans(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var principal, payments float64
	for _, l := range loans {
		principal += l.OutstandingPrincipal
		payments += l.MonthlyPayment
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"loans":            float64(len(loans)),
			"total_principal":  principal,
			"monthly_payments": payments,
		},
	}, nil
}

func (r *Router) handleInterestPaid(ctx context.Context, req Request) (*ResultBundle, error) {
	loans, err := r.data.FetchLoans(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var total float64
	values := map[string]float64{}
	for _, l := range loans {
		metrics.SimulatorRuns.WithLabelValues("amortization").Inc()
		res := simulation.Amortize(l.OutstandingPrincipal, l.MonthlyPayment, l.MonthlyRate())
		values["interest_"+l.Name] = res.TotalInterest
		total += res.TotalInterest
	}
	values["total_interest"] = total

	return &ResultBundle{Intent: req.Intent, Confidence: req.Confidence, Values: values}, nil
}

func (r *Router) handleInvestmentGrowth(ctx context.Context, req Request) (*ResultBundle, error) {
	goals, err := r.data.FetchSavingsGoals(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	principal := 0.0
	contribution := defaultAmount
	if len(goals) > 0 {
		principal = goals[0].CurrentAmount
		if goals[0].MonthlyContribution > 0 {
			contribution = goals[0].MonthlyContribution
		}
	}

	years := parseYears(req.Query)
	rate := defaultAnnualRatePct / 100

	metrics.SimulatorRuns.WithLabelValues("growth").Inc()
	projection := simulation.ProjectGrowth(principal, contribution, 12, rate, years)

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"future_value": projection.FutureValue,
			"principal":    principal,
			"contribution": contribution,
			"years":        years,
			"annual_rate":  rate,
		},
	}, nil
}

func (r *Router) handleAffordability(ctx context.Context, req Request) (*ResultBundle, error) {
	amount := parseAmount(req.Query)

	// Average surplus over the last three full months.
	now := r.now()
	thisStart, _ := monthWindow(now)
	from := thisStart.AddDate(0, -3, 0)

	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, thisStart)
	if err != nil {
		return nil, err
	}

	surplus := (sumByDirection(txs, models.DirectionCredit) - sumByDirection(txs, models.DirectionDebit)) / 3

	affordable := 0.0
	if surplus >= amount {
		affordable = 1.0
	}

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"amount":          amount,
			"monthly_surplus": surplus,
			"affordable":      affordable,
		},
	}, nil
}

func (r *Router) handleBalanceInquiry(ctx context.Context, req Request) (*ResultBundle, error) {
	from, to := monthWindow(r.now())
	txs, err := r.data.FetchTransactions(ctx, req.UserID, from, to)
	if err != nil {
		return nil, err
	}

	income := sumByDirection(txs, models.DirectionCredit)
	spending := sumByDirection(txs, models.DirectionDebit)

	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Values: map[string]float64{
			"income":   income,
			"spending": spending,
			"net":      income - spending,
		},
	}, nil
}

func (r *Router) handleTransactionSearch(ctx context.Context, req Request) (*ResultBundle, error) {
	terms := strings.Join(patterns.ContentTokens(req.Locale, req.Query), " ")
	if terms == "" {
		return &ResultBundle{
			Intent:             req.Intent,
			Confidence:         req.Confidence,
			NeedsClarification: true,
		}, nil
	}

	var (
		matches []models.Transaction
		err     error
	)
	if r.search != nil {
		matches, err = r.search.Search(ctx, req.UserID, terms, 10)
		if err != nil {
			return nil, err
		}
	} else {
		// No search backend configured: scan the recent window instead.
		now := r.now()
		thisStart, thisEnd := monthWindow(now)
		txs, fetchErr := r.data.FetchTransactions(ctx, req.UserID, thisStart.AddDate(0, -2, 0), thisEnd)
		if fetchErr != nil {
			return nil, fetchErr
		}
		lower := strings.ToLower(terms)
		for _, t := range txs {
			haystack := strings.ToLower(t.Description + " " + t.Category)
			for _, w := range strings.Fields(lower) {
				if strings.Contains(haystack, w) {
					matches = append(matches, t)
					break
				}
			}
		}
	}

	var total float64
	for _, t := range matches {
		total += t.Amount
	}

	return &ResultBundle{
		Intent:       req.Intent,
		Confidence:   req.Confidence,
		Values:       map[string]float64{"matches": float64(len(matches)), "total": total},
		Details:      map[string]string{"terms": terms},
		Transactions: matches,
	}, nil
}

func (r *Router) handleRecurringExpenses(ctx context.Context, req Request) (*ResultBundle, error) {
	now := r.now()
	thisStart, thisEnd := monthWindow(now)
	lastStart, _ := monthWindow(thisStart.AddDate(0, 0, -1))

	current, err := r.data.FetchTransactions(ctx, req.UserID, thisStart, thisEnd)
	if err != nil {
		return nil, err
	}
	previous, err := r.data.FetchTransactions(ctx, req.UserID, lastStart, thisStart)
	if err != nil {
		return nil, err
	}

	// A debit recurring in both months under the same category and
	// amount counts as a recurring expense.
	key := func(t models.Transaction) string {
		return fmt.Sprintf("%s|%.2f", strings.ToLower(t.Category), t.Amount)
	}
	seen := make(map[string]bool)
	for _, t := range previous {
		if t.Direction == models.DirectionDebit {
			seen[key(t)] = true
		}
	}

	var recurring []models.Transaction
	var total float64
	for _, t := range current {
		if t.Direction == models.DirectionDebit && seen[key(t)] {
			recurring = append(recurring, t)
			total += t.Amount
		}
	}

	return &ResultBundle{
		Intent:       req.Intent,
		Confidence:   req.Confidence,
		Values:       map[string]float64{"recurring": float64(len(recurring)), "total": total},
		Transactions: recurring,
	}, nil
}

func (r *Router) handleGreeting(_ context.Context, req Request) (*ResultBundle, error) {
	return &ResultBundle{Intent: req.Intent, Confidence: req.Confidence}, nil
}

func (r *Router) handleHelp(_ context.Context, req Request) (*ResultBundle, error) {
	intents := models.RoutableIntents()
	names := make([]string, 0, len(intents))
	for _, i := range intents {
		names = append(names, string(i))
	}
	return &ResultBundle{
		Intent:     req.Intent,
		Confidence: req.Confidence,
		Details:    map[string]string{"intents": strings.Join(names, ",")},
	}, nil
}
