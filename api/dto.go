/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's output from the external API contract, allowing field
  renaming and version evolution without touching the plan package.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - plan/types.go: The engine shapes these wrap
*/
package api

import (
	"github.com/warp/plan-engine/plan"
	"github.com/warp/plan-engine/recommend"
)

// =============================================================================
// PROJECTION RESPONSES
// =============================================================================

// BucketsDTO is one month's partition, all values in minor units.
type BucketsDTO struct {
	Bound    int64 `json:"bound"`
	Planned  int64 `json:"planned"`
	Invested int64 `json:"invested"`
	Free     int64 `json:"free"`
}

// MonthDTO is one timeline entry.
type MonthDTO struct {
	Month         string           `json:"month"`
	Income        int64            `json:"income"`
	Buckets       BucketsDTO       `json:"buckets"`
	PlannedByGoal map[string]int64 `json:"planned_by_goal,omitempty"`
}

// EventDTO is a discrete projection event.
type EventDTO struct {
	Month  string `json:"month"`
	Type   string `json:"type"`
	Amount int64  `json:"amount,omitempty"`
	RefID  string `json:"ref_id,omitempty"`
	Note   string `json:"note,omitempty"`
}

// GoalProjectionDTO reports per-goal reachability.
type GoalProjectionDTO struct {
	GoalID    string `json:"goal_id"`
	Reachable bool   `json:"reachable"`
	ETAMonth  string `json:"eta_month,omitempty"`
}

// ProjectionDTO is the full engine output.
type ProjectionDTO struct {
	ForecastMonths int                 `json:"forecast_months"`
	StartMonth     string              `json:"start_month"`
	Timeline       []MonthDTO          `json:"timeline"`
	Goals          []GoalProjectionDTO `json:"goals"`
	Events         []EventDTO          `json:"events"`
}

// SummaryDTO is the dashboard view: selector output plus ranked
// recommendations.
type SummaryDTO struct {
	Month           string                     `json:"month"`
	HeroFree        int64                      `json:"hero_free"`
	Buckets         BucketsDTO                 `json:"buckets"`
	FreeTimeline    []plan.FreePoint           `json:"free_timeline"`
	Shortfalls      []plan.Shortfall           `json:"shortfalls"`
	Goals           []plan.GoalSummary         `json:"goals"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to seed.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// SettingsRequest updates the persisted projection settings.
type SettingsRequest struct {
	ForecastMonths int    `json:"forecast_months"`
	StartMonth     string `json:"start_month,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toBucketsDTO(b plan.Buckets) BucketsDTO {
	return BucketsDTO{
		Bound:    b.Bound,
		Planned:  b.Planned,
		Invested: b.Invested,
		Free:     b.Free,
	}
}

func toProjectionDTO(p *plan.Projection) ProjectionDTO {
	dto := ProjectionDTO{
		ForecastMonths: p.Settings.ForecastMonths,
		StartMonth:     p.Settings.StartMonth,
		Timeline:       make([]MonthDTO, len(p.Timeline)),
	}
	for i, m := range p.Timeline {
		var breakdown map[string]int64
		if len(m.PlannedByGoal) > 0 {
			breakdown = make(map[string]int64, len(m.PlannedByGoal))
			for id, c := range m.PlannedByGoal {
				breakdown[id] = c
			}
		}
		dto.Timeline[i] = MonthDTO{
			Month:         m.Month.String(),
			Income:        m.Income,
			Buckets:       toBucketsDTO(m.Buckets),
			PlannedByGoal: breakdown,
		}
	}
	for _, g := range p.Goals {
		gdto := GoalProjectionDTO{GoalID: g.GoalID, Reachable: g.Reachable}
		if g.ETAMonth != nil {
			gdto.ETAMonth = g.ETAMonth.String()
		}
		dto.Goals = append(dto.Goals, gdto)
	}
	for _, e := range p.Events {
		dto.Events = append(dto.Events, EventDTO{
			Month:  e.Month.String(),
			Type:   string(e.Type),
			Amount: e.Amount,
			RefID:  e.RefID,
			Note:   e.Note,
		})
	}
	return dto
}
