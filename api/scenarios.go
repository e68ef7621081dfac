/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for testing and demos. Each scenario writes full entity
	collections plus projection settings, so the dashboard has something
	to show without manual data entry.

AVAILABLE SCENARIOS:

	starter:      Salary, rent, groceries, one reserve, one goal
	tight-month:  Income barely covers obligations; shortfall ahead
	saver:        Multiple goals and investments, generous slack

HOW SCENARIOS WORK:
 1. Build the record collections in memory
 2. Overwrite every plan/* collection key in the store
 3. Persist settings (12-month horizon from the current month)

USAGE VIA API:

	POST /api/scenarios/load
	{"id": "starter"}

NOTE:

	Loading a scenario replaces all stored plan data. Only use in
	development/demo environments.

SEE ALSO:
  - handlers.go: Shared JSON plumbing
  - adapter/records.go: The record shapes written here
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/warp/plan-engine/adapter"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "starter",
		Name:        "Starter Household",
		Description: "Salary, rent, groceries, an insurance reserve and one savings goal",
	},
	{
		ID:          "tight-month",
		Name:        "Tight Month",
		Description: "Obligations nearly consume the income; a shortfall is coming",
	},
	{
		ID:          "saver",
		Name:        "Goal-Heavy Saver",
		Description: "Several goals and investment plans with comfortable slack",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario seeds the store from a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var snapshot adapter.Snapshot
	switch req.ID {
	case "starter":
		snapshot = starterScenario()
	case "tight-month":
		snapshot = tightMonthScenario()
	case "saver":
		snapshot = saverScenario()
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown scenario %q", req.ID), nil)
		return
	}

	if err := h.seed(r.Context(), snapshot); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load scenario", err)
		return
	}

	for _, s := range scenarios {
		if s.ID == req.ID {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
}

func (h *Handler) seed(ctx context.Context, s adapter.Snapshot) error {
	if err := h.Repo.SaveCollection(ctx, adapter.KeyIncomes, s.Incomes); err != nil {
		return err
	}
	if err := h.Repo.SaveCollection(ctx, adapter.KeyExpenses, s.Expenses); err != nil {
		return err
	}
	if err := h.Repo.SaveCollection(ctx, adapter.KeyReserves, s.Reserves); err != nil {
		return err
	}
	if err := h.Repo.SaveCollection(ctx, adapter.KeyGoals, s.Goals); err != nil {
		return err
	}
	if err := h.Repo.SaveCollection(ctx, adapter.KeyInvestments, s.Investments); err != nil {
		return err
	}
	if err := h.Repo.SaveCollection(ctx, adapter.KeyPayments, s.Payments); err != nil {
		return err
	}
	return h.Repo.SaveSettings(ctx, adapter.SettingsRecord{ForecastMonths: 12})
}

// =============================================================================
// SEED DATA
// =============================================================================

func cents(v float64) *float64 { return &v }

// nextMonthDate returns the 15th of next month, so the dated seed data
// always lands inside a freshly built projection.
func nextMonthDate() string {
	t := time.Now().AddDate(0, 1, 0)
	return time.Date(t.Year(), t.Month(), 15, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

func starterScenario() adapter.Snapshot {
	return adapter.Snapshot{
		Incomes: []adapter.IncomeRecord{
			{ID: uuid.NewString(), Name: "Salary", AmountCents: cents(320000), Interval: "monthly", Confidence: "fixed"},
		},
		Expenses: []adapter.ExpenseRecord{
			{ID: uuid.NewString(), Name: "Rent", AmountCents: cents(95000), Interval: "monthly"},
			{ID: uuid.NewString(), Name: "Groceries", AmountCents: cents(40000), Interval: "monthly"},
			{ID: uuid.NewString(), Name: "Utilities", AmountCents: cents(18000), Interval: "monthly"},
		},
		Reserves: []adapter.ReserveRecord{
			{
				ID: uuid.NewString(), Name: "Car Insurance",
				TargetAmountCents:        cents(60000),
				CurrentAmountCents:       cents(10000),
				MonthlyContributionCents: cents(5000),
				Interval:                 "yearly",
				DueDate:                  "2027-03-01",
			},
		},
		Goals: []adapter.GoalRecord{
			{
				ID: uuid.NewString(), Name: "Emergency Fund",
				TargetAmountCents:        cents(500000),
				CurrentAmountCents:       cents(120000),
				MonthlyContributionCents: cents(30000),
				Priority:                 1,
			},
		},
		Investments: []adapter.InvestmentRecord{
			{ID: uuid.NewString(), Name: "ETF Savings Plan", MonthlyContributionCents: cents(20000), CurrentValueCents: cents(480000)},
		},
	}
}

func tightMonthScenario() adapter.Snapshot {
	return adapter.Snapshot{
		Incomes: []adapter.IncomeRecord{
			{ID: uuid.NewString(), Name: "Part-Time Wages", AmountCents: cents(180000), Interval: "monthly", Confidence: "variable"},
		},
		Expenses: []adapter.ExpenseRecord{
			{ID: uuid.NewString(), Name: "Rent", AmountCents: cents(110000), Interval: "monthly"},
			{ID: uuid.NewString(), Name: "Groceries", AmountCents: cents(45000), Interval: "monthly"},
			{ID: uuid.NewString(), Name: "Transit Pass", AmountCents: cents(9000), Interval: "monthly"},
		},
		Reserves: []adapter.ReserveRecord{
			{
				ID: uuid.NewString(), Name: "Liability Insurance",
				TargetAmountCents:        cents(12000),
				CurrentAmountCents:       cents(2000),
				MonthlyContributionCents: cents(1000),
				Interval:                 "yearly",
				DueDate:                  "2027-01-01",
			},
		},
		Goals: []adapter.GoalRecord{
			{
				ID: uuid.NewString(), Name: "Buffer",
				TargetAmountCents:        cents(100000),
				CurrentAmountCents:       cents(15000),
				MonthlyContributionCents: cents(20000),
				Priority:                 2,
			},
		},
		Payments: []adapter.PaymentRecord{
			{ID: uuid.NewString(), Name: "Dentist Bill", AmountCents: cents(28000), DueDate: nextMonthDate()},
		},
	}
}

func saverScenario() adapter.Snapshot {
	return adapter.Snapshot{
		Incomes: []adapter.IncomeRecord{
			{ID: uuid.NewString(), Name: "Salary", AmountCents: cents(450000), Interval: "monthly", Confidence: "fixed"},
			{ID: uuid.NewString(), Name: "Annual Bonus", AmountCents: cents(300000), Interval: "yearly", StartDate: "2026-12-01"},
		},
		Expenses: []adapter.ExpenseRecord{
			{ID: uuid.NewString(), Name: "Rent", AmountCents: cents(120000), Interval: "monthly"},
			{ID: uuid.NewString(), Name: "Living Costs", AmountCents: cents(60000), Interval: "monthly"},
		},
		Goals: []adapter.GoalRecord{
			{
				ID: uuid.NewString(), Name: "House Deposit",
				TargetAmountCents:        cents(3000000),
				CurrentAmountCents:       cents(900000),
				MonthlyContributionCents: cents(80000),
				Priority:                 1,
			},
			{
				ID: uuid.NewString(), Name: "Japan Trip",
				TargetAmountCents:        cents(400000),
				CurrentAmountCents:       cents(250000),
				MonthlyContributionCents: cents(25000),
				Priority:                 3,
			},
		},
		Investments: []adapter.InvestmentRecord{
			{ID: uuid.NewString(), Name: "World ETF", MonthlyContributionCents: cents(50000), CurrentValueCents: cents(2200000)},
			{ID: uuid.NewString(), Name: "Pension Top-Up", MonthlyContributionCents: cents(15000)},
		},
	}
}
