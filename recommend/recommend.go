/*
Package recommend derives ranked recommendations from a plan projection.

PURPOSE:
  Stateless rules inspect a plan.Projection and emit candidate
  recommendations; a weighted scorer ranks them and keeps the top two.
  Rules never mutate the projection and carry no state between calls.

AVAILABLE RULES:
  ShortfallRisk:
    - Fires on the first month whose free bucket is negative
    - Evidence: the month and the (negative) free amount

  LowSlack:
    - Fires when the current month's free cash is gone or thin
      (<= 0, or below 10.00 in minor units)
    - Evidence: the hero free amount

  GoalContributionIssue:
    - Fires per goal that has a positive monthly rate but receives no
      contribution in the first month (already funded, or crowded out)
    - Evidence: the goal ID and its configured rate

SCORING:
  Each candidate is scored on four axes in [0, 10]:
    impact, urgency, simplicity, robustness
  with the weighted total
    0.35*impact + 0.35*urgency + 0.20*simplicity + 0.10*robustness
  rounded to two decimals. Candidates are ranked descending by total and
  truncated to maxRecommendations.

SEE ALSO:
  - plan/selectors.go: SelectHeroFree feeds the LowSlack rule
*/
package recommend

import (
	"math"
	"sort"

	"github.com/warp/plan-engine/plan"
)

// maxRecommendations is the hard cap on returned recommendations.
const maxRecommendations = 2

// lowSlackThreshold is the free-cash level below which the current month
// counts as thin, in minor units.
const lowSlackThreshold plan.Cents = 1000

type Type string

const (
	TypeShortfallRisk         Type = "shortfall_risk"
	TypeLowSlack              Type = "low_slack"
	TypeGoalContributionIssue Type = "goal_contribution_issue"
)

// Evidence pins a recommendation to the numbers that triggered it.
type Evidence struct {
	Month       string `json:"month,omitempty"`
	GoalID      string `json:"goal_id,omitempty"`
	AmountCents int64  `json:"amount_cents"`
}

// Score holds the four axes plus the weighted total.
type Score struct {
	Impact     float64 `json:"impact"`
	Urgency    float64 `json:"urgency"`
	Simplicity float64 `json:"simplicity"`
	Robustness float64 `json:"robustness"`
	Total      float64 `json:"total"`
}

// Recommendation is one ranked suggestion.
type Recommendation struct {
	Type     Type     `json:"type"`
	Title    string   `json:"title"`
	Evidence Evidence `json:"evidence"`
	Score    Score    `json:"score"`
}

// Build runs every rule against the projection, scores the candidates and
// returns the top candidates ranked by total score.
func Build(p *plan.Projection, goals []plan.Goal, heroFree plan.Cents) []Recommendation {
	if p == nil {
		return nil
	}

	var candidates []Recommendation
	candidates = append(candidates, shortfallRisk(p)...)
	candidates = append(candidates, lowSlack(heroFree)...)
	candidates = append(candidates, goalContributionIssues(p, goals)...)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.Total > candidates[j].Score.Total
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}
	return candidates
}

// =============================================================================
// RULES
// =============================================================================

// shortfallRisk flags the first negative month of the timeline.
func shortfallRisk(p *plan.Projection) []Recommendation {
	for _, m := range p.Timeline {
		if m.Buckets.Free >= 0 {
			continue
		}
		// Impact scales mildly with the size of the hole.
		impact := 7.0 + math.Min(2.5, float64(-m.Buckets.Free)/100000.0)
		return []Recommendation{{
			Type:  TypeShortfallRisk,
			Title: "Upcoming month ends in the red",
			Evidence: Evidence{
				Month:       m.Month.String(),
				AmountCents: m.Buckets.Free,
			},
			Score: scored(impact, 9, 5, 7),
		}}
	}
	return nil
}

// lowSlack flags a thin or negative current month.
func lowSlack(heroFree plan.Cents) []Recommendation {
	if heroFree > 0 && heroFree >= lowSlackThreshold {
		return nil
	}
	urgency := 6.0
	if heroFree <= 0 {
		urgency = 8.0
	}
	return []Recommendation{{
		Type:  TypeLowSlack,
		Title: "Free cash this month is nearly gone",
		Evidence: Evidence{
			AmountCents: heroFree,
		},
		Score: scored(5, urgency, 8, 6),
	}}
}

// goalContributionIssues flags goals that should be funded this month but
// are not.
func goalContributionIssues(p *plan.Projection, goals []plan.Goal) []Recommendation {
	if len(p.Timeline) == 0 {
		return nil
	}
	first := p.Timeline[0]

	var out []Recommendation
	for _, g := range goals {
		rate := g.MonthlyContribution
		if rate <= 0 {
			continue
		}
		if first.PlannedByGoal[g.ID] > 0 {
			continue
		}
		// Impact scales with the rate that is going unfunded.
		impact := 4.0 + math.Min(3.0, float64(rate)/50000.0)
		out = append(out, Recommendation{
			Type:  TypeGoalContributionIssue,
			Title: "Goal is not being funded this month",
			Evidence: Evidence{
				GoalID:      g.ID,
				AmountCents: rate,
			},
			Score: scored(impact, 5, 7, 6),
		})
	}
	return out
}

// =============================================================================
// SCORER
// =============================================================================

func scored(impact, urgency, simplicity, robustness float64) Score {
	total := impact*0.35 + urgency*0.35 + simplicity*0.20 + robustness*0.10
	return Score{
		Impact:     impact,
		Urgency:    urgency,
		Simplicity: simplicity,
		Robustness: robustness,
		Total:      math.Round(total*100) / 100,
	}
}
