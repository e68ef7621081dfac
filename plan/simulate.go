package plan

// =============================================================================
// GOAL SIMULATION - Months-to-completion math, shared by engine and views
// =============================================================================

// GoalSimulation describes how a fixed monthly rate consumes a remaining
// goal balance.
type GoalSimulation struct {
	// MonthsNeeded is ceil(remaining / rate). Zero when the goal is
	// already fully funded.
	MonthsNeeded int

	// Reachable is true when the goal completes within the horizon
	// (or is already funded). Always false for a non-positive rate on
	// an unfunded goal.
	Reachable bool

	// Contributions holds the capped per-month contribution for each
	// month until the goal completes or the horizon ends, whichever
	// comes first.
	Contributions []Cents
}

// SimulateGoal runs the capped-contribution schedule for a single goal in
// isolation. The projection loop applies the same min(rate, remaining)
// rule; this helper exists so reachability and ETA can be derived without
// rebuilding a timeline.
func SimulateGoal(remaining, rate Cents, horizonMonths int) GoalSimulation {
	if remaining <= 0 {
		return GoalSimulation{MonthsNeeded: 0, Reachable: true}
	}
	if rate <= 0 {
		return GoalSimulation{MonthsNeeded: 0, Reachable: false}
	}

	// Integer ceil division.
	needed := int((remaining + rate - 1) / rate)

	sim := GoalSimulation{
		MonthsNeeded: needed,
		Reachable:    needed <= horizonMonths,
	}

	steps := needed
	if horizonMonths < steps {
		steps = horizonMonths
	}
	left := remaining
	for i := 0; i < steps; i++ {
		c := rate
		if left < c {
			c = left
		}
		sim.Contributions = append(sim.Contributions, c)
		left -= c
	}
	return sim
}
