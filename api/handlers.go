/*
handlers.go - HTTP API handlers for the plan engine

PURPOSE:
  Exposes the forecast engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the adapter
  and plan packages.

ENDPOINTS:
  Plan:
    GET  /api/plan/projection        Full projection (months/start override)
    GET  /api/plan/summary           Dashboard view + recommendations
    GET  /api/plan/recommendations   Ranked recommendations only
    GET  /api/plan/settings          Persisted projection settings
    PUT  /api/plan/settings          Update projection settings

  Entities:
    GET  /api/plan/{collection}      Raw stored records
    PUT  /api/plan/{collection}      Replace stored records

  Scenarios:
    GET  /api/scenarios              List demo scenarios
    POST /api/scenarios/load         Seed the store from a scenario

REQUEST FLOW:
  1. Parse HTTP request
  2. Load snapshot from the KV store (repository)
  3. Adapt records to engine input
  4. Build projection, derive views
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid query/body input
  - 404: Unknown collection or scenario
  - 422: Snapshot contains non-integer money (adapter rejection)
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario seed data
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/plan-engine/adapter"
	"github.com/warp/plan-engine/plan"
	"github.com/warp/plan-engine/recommend"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo *adapter.Repository

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewHandler creates a new handler over the given repository.
func NewHandler(repo *adapter.Repository) *Handler {
	return &Handler{Repo: repo, now: time.Now}
}

// collectionKey maps a URL segment to its store key.
var collectionKey = map[string]string{
	"incomes":     adapter.KeyIncomes,
	"expenses":    adapter.KeyExpenses,
	"reserves":    adapter.KeyReserves,
	"goals":       adapter.KeyGoals,
	"investments": adapter.KeyInvestments,
	"payments":    adapter.KeyPayments,
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// GetProjection builds and returns the full projection. Query parameters
// months and start override the persisted settings for this call.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	input, settings, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	if v := r.URL.Query().Get("months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months <= 0 {
			writeError(w, http.StatusBadRequest, "months must be a positive integer", nil)
			return
		}
		settings.ForecastMonths = months
	}
	if v := r.URL.Query().Get("start"); v != "" {
		settings.StartMonth = v
	}

	projection, err := plan.BuildProjection(input, settings)
	if err != nil {
		status := http.StatusInternalServerError
		if plan.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to build projection", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectionDTO(projection))
}

// GetSummary returns the dashboard view: current buckets, free timeline,
// shortfalls, prioritized goals and recommendations.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	input, settings, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	projection, err := plan.BuildProjection(input, settings)
	if err != nil {
		status := http.StatusInternalServerError
		if plan.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to build projection", err)
		return
	}

	current := plan.SelectCurrentMonth(projection)
	heroFree := plan.SelectHeroFree(projection)

	writeJSON(w, http.StatusOK, SummaryDTO{
		Month:           current.Month.String(),
		HeroFree:        heroFree,
		Buckets:         toBucketsDTO(current.Buckets),
		FreeTimeline:    plan.SelectFreeTimeline(projection),
		Shortfalls:      plan.SelectShortfallEvents(projection),
		Goals:           plan.SelectPrioritizedGoalSummaries(projection, input.Goals, 0),
		Recommendations: recommend.Build(projection, input.Goals, heroFree),
	})
}

// GetRecommendations returns only the ranked recommendations, for
// clients that poll them without the rest of the dashboard.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	input, settings, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	projection, err := plan.BuildProjection(input, settings)
	if err != nil {
		status := http.StatusInternalServerError
		if plan.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to build projection", err)
		return
	}

	recs := recommend.Build(projection, input.Goals, plan.SelectHeroFree(projection))
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// GetSettings returns the persisted projection settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.LoadSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsRequest{
		ForecastMonths: settings.ForecastMonths,
		StartMonth:     settings.StartMonth,
	})
}

// UpdateSettings persists new projection settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ForecastMonths <= 0 {
		writeError(w, http.StatusBadRequest, "forecast_months must be positive", nil)
		return
	}
	if req.StartMonth != "" {
		if _, err := plan.ParseMonthKey(req.StartMonth); err != nil {
			writeError(w, http.StatusBadRequest, "start_month must be YYYY-MM", err)
			return
		}
	}

	err := h.Repo.SaveSettings(r.Context(), adapter.SettingsRecord{
		ForecastMonths: req.ForecastMonths,
		StartMonth:     req.StartMonth,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// COLLECTION HANDLERS
// =============================================================================

// GetCollection returns the raw stored records of one collection.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	key, ok := collectionKey[chi.URLParam(r, "collection")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection", nil)
		return
	}

	raw, err := h.Repo.LoadCollection(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load collection", err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// PutCollection replaces the stored records of one collection. The body
// must be a JSON array; records are validated by adapting them before
// the write, so a snapshot with bad money never lands in the store.
func (h *Handler) PutCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	key, ok := collectionKey[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection", nil)
		return
	}

	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validateCollection(name, body); err != nil {
		status := http.StatusBadRequest
		if plan.IsClientError(err) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "invalid records", err)
		return
	}

	if err := h.Repo.KV.Set(r.Context(), key, body); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save collection", err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// validateCollection decodes and adapts the incoming records so unit
// errors surface at write time, not at the next projection.
func (h *Handler) validateCollection(name string, body json.RawMessage) error {
	now := plan.CurrentMonth(h.now())
	var s adapter.Snapshot

	switch name {
	case "incomes":
		if err := json.Unmarshal(body, &s.Incomes); err != nil {
			return err
		}
	case "expenses":
		if err := json.Unmarshal(body, &s.Expenses); err != nil {
			return err
		}
	case "reserves":
		if err := json.Unmarshal(body, &s.Reserves); err != nil {
			return err
		}
	case "goals":
		if err := json.Unmarshal(body, &s.Goals); err != nil {
			return err
		}
	case "investments":
		if err := json.Unmarshal(body, &s.Investments); err != nil {
			return err
		}
	case "payments":
		if err := json.Unmarshal(body, &s.Payments); err != nil {
			return err
		}
	}
	_, err := adapter.BuildInput(s, now)
	return err
}

// =============================================================================
// SHARED PLUMBING
// =============================================================================

// loadPlan reads the snapshot and settings and adapts them to engine
// input, writing the HTTP error itself on failure.
func (h *Handler) loadPlan(w http.ResponseWriter, r *http.Request) (plan.Input, plan.Settings, bool) {
	snapshot, err := h.Repo.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load snapshot", err)
		return plan.Input{}, plan.Settings{}, false
	}

	input, err := adapter.BuildInput(snapshot, plan.CurrentMonth(h.now()))
	if err != nil {
		// Stored money that fails adaptation is an integration defect.
		writeError(w, http.StatusUnprocessableEntity, "snapshot contains invalid monetary values", err)
		return plan.Input{}, plan.Settings{}, false
	}

	settings, err := h.Repo.LoadSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings", err)
		return plan.Input{}, plan.Settings{}, false
	}
	return input, settings, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("[API] %s: %v", message, err)
		message = message + ": " + err.Error()
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}
