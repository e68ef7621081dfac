/*
projection.go - The forecast engine

PURPOSE:
  BuildProjection turns a snapshot of financial entities into a
  month-by-month cash-flow timeline. Every month's income is partitioned
  into four mutually exclusive buckets:

    bound:    recurring expenses occurring this month
              + flat reserve contributions (every month, unconditionally)
              + known payments due this month
    planned:  goal contributions, capped by each goal's remaining balance
    invested: flat sum of investment plan contributions
    free:     income - bound - planned - invested (exact, in cents)

KEY INSIGHT:
  The month loop is stateful and strictly chronological. Goal capping
  carries a remaining-balance counter forward across months: once a goal
  is exhausted it never contributes again (monotonic, no re-funding, no
  overshoot). Processing months out of order would corrupt that state,
  so the loop is the one place ordering is load-bearing.

RECURRENCE SEMANTICS:
  Non-monthly incomes and expenses contribute their FULL amount in their
  occurrence months and zero elsewhere. See normalize.go for why the
  divide-by-interval helper is not used here.

DETERMINISM:
  Pure function over its inputs. The first month's values are identical
  whether one month or sixty are requested: later months never feed back
  into earlier ones.

SEE ALSO:
  - simulate.go: Goal reachability math
  - selectors.go: Read-only consumption of the output
*/
package plan

import "time"

// BuildProjection is the sole entry point of the forecast engine.
// It never mutates its input and allocates a fresh Projection per call.
func BuildProjection(input Input, settings Settings) (*Projection, error) {
	if settings.ForecastMonths <= 0 {
		return nil, &SettingsError{Reason: "forecast months must be positive"}
	}

	start, err := resolveStartMonth(settings.StartMonth)
	if err != nil {
		return nil, err
	}
	settings.StartMonth = start.String()

	months := MonthSequence(start, settings.ForecastMonths)

	// Constant drains: reserves and investments do not vary month to
	// month inside the engine.
	var reserveFlat, invested Cents
	for _, r := range input.Reserves {
		reserveFlat += r.MonthlyContribution
	}
	for _, inv := range input.Investments {
		invested += inv.MonthlyContribution
	}

	// Mutable scratch state: one remaining-balance counter per goal,
	// shared across the whole month loop.
	remaining := make(map[string]Cents, len(input.Goals))
	for _, g := range input.Goals {
		remaining[g.ID] = g.Remaining()
	}

	projection := &Projection{
		Settings: settings,
		Timeline: make([]MonthProjection, 0, len(months)),
	}

	for _, month := range months {
		// a. Goal contributions, capped and stateful.
		var planned Cents
		var breakdown map[string]Cents
		for _, g := range input.Goals {
			rate := g.MonthlyContribution
			if rate <= 0 {
				continue
			}
			left := remaining[g.ID]
			if left <= 0 {
				continue
			}
			contribution := rate
			if left < contribution {
				contribution = left
			}
			if breakdown == nil {
				breakdown = make(map[string]Cents)
			}
			breakdown[g.ID] = contribution
			planned += contribution
			remaining[g.ID] = left - contribution
			if left-contribution == 0 {
				projection.Events = append(projection.Events, Event{
					Month: month,
					Type:  EventGoalReached,
					RefID: g.ID,
					Note:  g.Name,
				})
			}
		}

		// b. Income: recurring streams plus one-time items.
		var income Cents
		for _, inc := range input.Incomes {
			if inc.OneTime() {
				if due, ok := MonthOfDate(inc.StartDate); ok && due.Equal(month) {
					income += inc.Amount
				}
				continue
			}
			if !activeInMonth(inc.StartDate, inc.EndDate, month) {
				continue
			}
			if !occursInMonth(inc.StartDate, inc.Interval, month) {
				continue
			}
			income += inc.Amount
		}

		// c. Bound: occurring expenses + flat reserves + due payments.
		bound := reserveFlat
		for _, exp := range input.Expenses {
			if exp.OneTime() {
				if due, ok := MonthOfDate(exp.StartDate); ok && due.Equal(month) {
					bound += exp.Amount
				}
				continue
			}
			if !activeInMonth(exp.StartDate, exp.EndDate, month) {
				continue
			}
			if !occursInMonth(exp.StartDate, exp.Interval, month) {
				continue
			}
			bound += exp.Amount
		}
		for _, p := range input.KnownPayments {
			if due, ok := MonthOfDate(p.DueDate); ok && due.Equal(month) {
				bound += p.Amount
				projection.Events = append(projection.Events, Event{
					Month:  month,
					Type:   EventPaymentDue,
					Amount: p.Amount,
					RefID:  p.ID,
					Note:   p.Name,
				})
			}
		}

		free := income - bound - planned - invested
		if free < 0 {
			projection.Events = append(projection.Events, Event{
				Month:  month,
				Type:   EventShortfall,
				Amount: free,
			})
		}

		projection.Timeline = append(projection.Timeline, MonthProjection{
			Month:  month,
			Income: income,
			Buckets: Buckets{
				Bound:    bound,
				Planned:  planned,
				Invested: invested,
				Free:     free,
			},
			PlannedByGoal: breakdown,
		})
	}

	projection.Goals = goalProjections(input.Goals, months)

	return projection, nil
}

// resolveStartMonth parses the configured start month, falling back to
// the current wall-clock month when unset.
func resolveStartMonth(startMonth string) (MonthKey, error) {
	if startMonth == "" {
		return CurrentMonth(time.Now()), nil
	}
	key, err := ParseMonthKey(startMonth)
	if err != nil {
		return MonthKey{}, &SettingsError{Reason: err.Error()}
	}
	return key, nil
}

// goalProjections derives per-goal reachability within the horizon.
// A goal with no positive rate never completes; an already-funded goal
// is reachable at the first month.
func goalProjections(goals []Goal, months []MonthKey) []GoalProjection {
	if len(goals) == 0 {
		return nil
	}
	out := make([]GoalProjection, 0, len(goals))
	for _, g := range goals {
		sim := SimulateGoal(g.Remaining(), g.MonthlyContribution, len(months))
		gp := GoalProjection{GoalID: g.ID, Reachable: sim.Reachable}
		if sim.Reachable {
			idx := 0
			if sim.MonthsNeeded > 0 {
				idx = sim.MonthsNeeded - 1
			}
			eta := months[idx]
			gp.ETAMonth = &eta
		}
		out = append(out, gp)
	}
	return out
}
