package adapter_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/plan-engine/adapter"
	"github.com/warp/plan-engine/plan"
)

func f(v float64) *float64 { return &v }

// =============================================================================
// CENTS RESOLUTION
// =============================================================================

func TestResolveCents_PrefersCentsField(t *testing.T) {
	got, err := adapter.ResolveCents("test.amount", f(1500), f(99.99))
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(1500), got)
}

func TestResolveCents_LegacyEurosConversion(t *testing.T) {
	cases := []struct {
		legacy float64
		want   plan.Cents
	}{
		{19.99, 1999}, // the classic binary-float trap: 19.99*100 = 1998.999...
		{0.1, 10},
		{100, 10000},
		{1234.56, 123456},
		{0.005, 1}, // round half away from zero at the cent
		{-25.50, -2550},
	}
	for _, c := range cases {
		got, err := adapter.ResolveCents("test.amount", nil, f(c.legacy))
		require.NoError(t, err, "legacy %v", c.legacy)
		assert.Equal(t, c.want, got, "legacy %v", c.legacy)
	}
}

func TestResolveCents_FractionalCentsIsFatal(t *testing.T) {
	_, err := adapter.ResolveCents("goal[g1].targetAmount", f(1500.5), nil)
	require.Error(t, err)

	var nie *plan.NonIntegerAmountError
	require.True(t, errors.As(err, &nie))
	assert.Equal(t, "goal[g1].targetAmount", nie.Field)
	assert.Equal(t, 1500.5, nie.Value)
	assert.True(t, plan.IsClientError(err))
}

func TestResolveCents_NonFiniteFallsThrough(t *testing.T) {
	// NaN/Inf in the cents field falls back to the legacy field; NaN in
	// both resolves to zero rather than poisoning the projection.
	got, err := adapter.ResolveCents("test.amount", f(math.NaN()), f(12.34))
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(1234), got)

	got, err = adapter.ResolveCents("test.amount", f(math.Inf(1)), f(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(0), got)
}

func TestResolveCents_BothMissing(t *testing.T) {
	got, err := adapter.ResolveCents("test.amount", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(0), got)
}

// =============================================================================
// RECORD MAPPING
// =============================================================================

func TestAdaptIncome_Defaults(t *testing.T) {
	inc, err := adapter.AdaptIncome(adapter.IncomeRecord{
		ID: "i1", Name: "Salary", AmountCents: f(320000),
	})
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(320000), inc.Amount)
	assert.Equal(t, plan.IntervalMonthly, inc.Interval)
}

func TestAdaptIncome_OneTimeRewritesDates(t *testing.T) {
	inc, err := adapter.AdaptIncome(adapter.IncomeRecord{
		ID: "i2", Name: "Tax Refund", AmountCents: f(40000),
		Kind: "one_time", Date: "2026-04-20", Interval: "yearly",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-20", inc.StartDate)
	assert.Equal(t, "2026-04-20", inc.EndDate)
	assert.True(t, inc.OneTime())
	assert.Equal(t, plan.IntervalMonthly, inc.Interval)
}

func TestAdaptExpense_OneTime(t *testing.T) {
	exp, err := adapter.AdaptExpense(adapter.ExpenseRecord{
		ID: "e1", Name: "Repair", Amount: f(250), Kind: "one_time", Date: "2026-05-02",
	})
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(25000), exp.Amount)
	assert.Equal(t, exp.StartDate, exp.EndDate)
}

func TestAdaptGoal_PriorityClamped(t *testing.T) {
	for _, p := range []int{0, -2, 6, 99} {
		g, err := adapter.AdaptGoal(adapter.GoalRecord{ID: "g", Priority: p, TargetAmountCents: f(1000)})
		require.NoError(t, err)
		assert.Equal(t, 3, g.Priority, "priority %d must clamp to the neutral 3", p)
	}

	g, err := adapter.AdaptGoal(adapter.GoalRecord{ID: "g", Priority: 1, TargetAmountCents: f(1000)})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Priority)
}

func TestAdaptReserve_ComputesMissingContribution(t *testing.T) {
	now := plan.NewMonthKey(2026, time.January)

	r, err := adapter.AdaptReserve(adapter.ReserveRecord{
		ID: "r1", Name: "Insurance",
		TargetAmountCents:  f(120000),
		CurrentAmountCents: f(20000),
		DueDate:            "2026-11-01",
	}, now)
	require.NoError(t, err)

	// 100000 remaining over 10 months.
	assert.Equal(t, plan.Cents(10000), r.MonthlyContribution)
	assert.Equal(t, plan.IntervalYearly, r.Interval)
}

func TestAdaptReserve_KeepsExplicitContribution(t *testing.T) {
	now := plan.NewMonthKey(2026, time.January)

	r, err := adapter.AdaptReserve(adapter.ReserveRecord{
		ID:                       "r2",
		TargetAmountCents:        f(120000),
		MonthlyContributionCents: f(7500),
		DueDate:                  "2026-11-01",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, plan.Cents(7500), r.MonthlyContribution)
}

func TestBuildInput_FirstBadFieldAborts(t *testing.T) {
	snapshot := adapter.Snapshot{
		Incomes: []adapter.IncomeRecord{{ID: "ok", AmountCents: f(1000)}},
		Goals:   []adapter.GoalRecord{{ID: "bad", TargetAmountCents: f(99.5)}},
	}

	_, err := adapter.BuildInput(snapshot, plan.NewMonthKey(2026, time.January))
	require.Error(t, err)

	var nie *plan.NonIntegerAmountError
	require.True(t, errors.As(err, &nie))
	assert.Contains(t, nie.Field, "goal[bad]")
}

func TestBuildInput_FullSnapshot(t *testing.T) {
	now := plan.NewMonthKey(2026, time.February)
	snapshot := adapter.Snapshot{
		Incomes:     []adapter.IncomeRecord{{ID: "i", AmountCents: f(300000)}},
		Expenses:    []adapter.ExpenseRecord{{ID: "e", Amount: f(950)}},
		Reserves:    []adapter.ReserveRecord{{ID: "r", TargetAmountCents: f(60000), DueDate: "2026-08-01"}},
		Goals:       []adapter.GoalRecord{{ID: "g", TargetAmountCents: f(100000), MonthlyContributionCents: f(10000), Priority: 1}},
		Investments: []adapter.InvestmentRecord{{ID: "v", MonthlyContributionCents: f(20000)}},
		Payments:    []adapter.PaymentRecord{{ID: "p", AmountCents: f(5000), DueDate: "2026-04-10"}},
	}

	input, err := adapter.BuildInput(snapshot, now)
	require.NoError(t, err)

	assert.Len(t, input.Incomes, 1)
	assert.Equal(t, plan.Cents(95000), input.Expenses[0].Amount)
	assert.Equal(t, plan.Cents(10000), input.Reserves[0].MonthlyContribution) // 60000 over 6 months
	assert.Len(t, input.Goals, 1)
	assert.Len(t, input.Investments, 1)
	assert.Len(t, input.KnownPayments, 1)
}

// =============================================================================
// RESERVE SMOOTHING AND CYCLE ADVANCE
// =============================================================================

func TestSmoothContribution(t *testing.T) {
	now := plan.NewMonthKey(2026, time.January)

	// Even spread.
	assert.Equal(t, plan.Cents(10000), adapter.SmoothContribution(120000, 20000, "2026-11-01", now))
	// Rounds up so the fund is full on time.
	assert.Equal(t, plan.Cents(33334), adapter.SmoothContribution(100000, 0, "2026-04-01", now))
	// Already funded.
	assert.Equal(t, plan.Cents(0), adapter.SmoothContribution(50000, 50000, "2026-11-01", now))
	// Due this month or in the past: full remainder now.
	assert.Equal(t, plan.Cents(40000), adapter.SmoothContribution(40000, 0, "2026-01-15", now))
	assert.Equal(t, plan.Cents(40000), adapter.SmoothContribution(40000, 0, "2025-06-01", now))
	// Unparseable due date: full remainder.
	assert.Equal(t, plan.Cents(40000), adapter.SmoothContribution(40000, 0, "soon", now))
}

func TestAdvanceReserveCycle_NotYetDue(t *testing.T) {
	now := plan.NewMonthKey(2026, time.March)
	r := adapter.ReserveRecord{ID: "r", TargetAmountCents: f(60000), DueDate: "2026-07-01", Interval: "yearly"}

	got, changed := adapter.AdvanceReserveCycle(r, now)
	assert.False(t, changed)
	assert.Equal(t, r, got)
}

func TestAdvanceReserveCycle_RollsForwardAndResets(t *testing.T) {
	now := plan.NewMonthKey(2026, time.March)
	r := adapter.ReserveRecord{
		ID: "r", Name: "Insurance",
		TargetAmountCents:        f(120000),
		CurrentAmountCents:       f(120000),
		MonthlyContributionCents: f(10000),
		DueDate:                  "2026-02-01",
		Interval:                 "yearly",
	}

	got, changed := adapter.AdvanceReserveCycle(r, now)
	require.True(t, changed)

	assert.Equal(t, "2027-02-01", got.DueDate)
	require.NotNil(t, got.CurrentAmountCents)
	assert.Equal(t, float64(0), *got.CurrentAmountCents)
	assert.Nil(t, got.CurrentAmount)

	// 120000 re-smoothed over the 11 months until 2027-02.
	require.NotNil(t, got.MonthlyContributionCents)
	assert.Equal(t, float64(10910), *got.MonthlyContributionCents)
}

func TestAdvanceReserveCycle_SkipsMissedCycles(t *testing.T) {
	// Due date two intervals in the past: the next due date must land at
	// or after now, not in the past again.
	now := plan.NewMonthKey(2026, time.June)
	r := adapter.ReserveRecord{
		ID: "r", TargetAmountCents: f(30000), DueDate: "2025-01-01", Interval: "quarterly",
	}

	got, changed := adapter.AdvanceReserveCycle(r, now)
	require.True(t, changed)
	assert.Equal(t, "2026-07-01", got.DueDate)
}

func TestAdvanceReserveCycle_UnparseableDueDate(t *testing.T) {
	now := plan.NewMonthKey(2026, time.June)
	r := adapter.ReserveRecord{ID: "r", TargetAmountCents: f(30000), DueDate: "whenever"}

	_, changed := adapter.AdvanceReserveCycle(r, now)
	assert.False(t, changed)
}
