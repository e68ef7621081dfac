/*
selectors.go - Read-only views over a Projection

PURPOSE:
  Narrow, pure accessors for the specific shapes consumers need: the
  dashboard's current-month buckets, the free-cash chart, the shortfall
  list and the prioritized goal summary. Selectors never recompute the
  timeline; they only reshape it.

ZERO-VALUE CONTRACT:
  An empty timeline yields zeroed buckets rather than errors, so
  consumers can render before any data exists.
*/
package plan

import "sort"

// SelectCurrentMonth returns the head of the timeline, zeroed when the
// timeline is empty.
func SelectCurrentMonth(p *Projection) MonthProjection {
	if p == nil || len(p.Timeline) == 0 {
		return MonthProjection{}
	}
	return p.Timeline[0]
}

// SelectCurrentBuckets returns the first month's bucket partition.
func SelectCurrentBuckets(p *Projection) Buckets {
	return SelectCurrentMonth(p).Buckets
}

// SelectHeroFree returns the headline figure: the free bucket of the
// current month.
func SelectHeroFree(p *Projection) Cents {
	return SelectCurrentMonth(p).Buckets.Free
}

// FreePoint is one point of the free-cash timeline.
type FreePoint struct {
	Month MonthKey `json:"month"`
	Free  Cents    `json:"free"`
}

// SelectFreeTimeline maps the timeline to {month, free} pairs in order.
func SelectFreeTimeline(p *Projection) []FreePoint {
	if p == nil {
		return nil
	}
	points := make([]FreePoint, len(p.Timeline))
	for i, m := range p.Timeline {
		points[i] = FreePoint{Month: m.Month, Free: m.Buckets.Free}
	}
	return points
}

// Shortfall is a month whose free bucket went negative.
type Shortfall struct {
	Month  MonthKey `json:"month"`
	Amount Cents    `json:"amount"`
}

// SelectShortfallEvents filters the event list down to shortfalls.
func SelectShortfallEvents(p *Projection) []Shortfall {
	if p == nil {
		return nil
	}
	var out []Shortfall
	for _, e := range p.Events {
		if e.Type == EventShortfall {
			out = append(out, Shortfall{Month: e.Month, Amount: e.Amount})
		}
	}
	return out
}

// GoalSummary joins a goal projection with its domain record for display.
type GoalSummary struct {
	GoalID    string    `json:"goal_id"`
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	Reachable bool      `json:"reachable"`
	ETAMonth  *MonthKey `json:"eta_month,omitempty"`
}

// DefaultGoalSummaryLimit caps SelectPrioritizedGoalSummaries when the
// caller passes a non-positive limit.
const DefaultGoalSummaryLimit = 3

// SelectPrioritizedGoalSummaries joins the engine's goal projections with
// the caller-supplied goal records and ranks them:
//
//  1. priority ascending (1 = most important)
//  2. reachable before unreachable
//  3. earlier ETA first; goals without an ETA sort last
//
// Projections whose goal is missing from the supplied list are dropped;
// the join is defensive against stale IDs.
func SelectPrioritizedGoalSummaries(p *Projection, goals []Goal, limit int) []GoalSummary {
	if p == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultGoalSummaryLimit
	}

	byID := make(map[string]Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}

	var summaries []GoalSummary
	for _, gp := range p.Goals {
		g, ok := byID[gp.GoalID]
		if !ok {
			continue
		}
		summaries = append(summaries, GoalSummary{
			GoalID:    gp.GoalID,
			Name:      g.Name,
			Priority:  g.Priority,
			Reachable: gp.Reachable,
			ETAMonth:  gp.ETAMonth,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Reachable != b.Reachable {
			return a.Reachable
		}
		switch {
		case a.ETAMonth == nil && b.ETAMonth == nil:
			return false
		case a.ETAMonth == nil:
			return false
		case b.ETAMonth == nil:
			return true
		default:
			return a.ETAMonth.Before(*b.ETAMonth)
		}
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}
