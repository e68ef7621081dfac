/*
adapter.go - Stored records to engine input

PURPOSE:
  The one place ambiguous units are allowed to exist. Every monetary
  field of a stored record passes through ResolveCents exactly once;
  after BuildInput returns, all money is strict int64 minor units and
  the engine can trust its arithmetic.

CENTS RESOLUTION:
  Records carry a legacy float-euro field and a cents field side by
  side (a historical unit migration). The rule:

    1. cents field present and finite  -> use it (must be integral)
    2. legacy field present and finite -> round(legacy * 100)
    3. neither                          -> 0

  The multiplication runs through shopspring/decimal so binary float
  noise (19.99 * 100 = 1998.9999...) cannot shift a cent. A fractional
  cents field is a fatal NonIntegerAmountError, not a rounding
  opportunity: silent rounding is how this domain got its x100 bugs.

ONE-TIME CONVENTION:
  Stored one-time items (kind "one_time", single date) are rewritten to
  the StartDate == EndDate encoding the engine recognizes.

RESERVE SMOOTHING:
  Spreading a non-monthly obligation into a monthly contribution is an
  adapter/scheduler concern. The engine only ever sees the precomputed
  flat contribution.
*/
package adapter

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/warp/plan-engine/plan"
)

// ResolveCents applies the dual-field resolution rule. The field name is
// carried for error messages only.
func ResolveCents(field string, cents, legacy *float64) (plan.Cents, error) {
	if cents != nil && isFinite(*cents) {
		if *cents != math.Trunc(*cents) {
			return 0, &plan.NonIntegerAmountError{Field: field, Value: *cents}
		}
		return plan.Cents(*cents), nil
	}
	if legacy != nil && isFinite(*legacy) {
		d := decimal.NewFromFloat(*legacy).Mul(decimal.NewFromInt(100)).Round(0)
		return d.IntPart(), nil
	}
	return 0, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// =============================================================================
// RECORD MAPPING
// =============================================================================

// AdaptIncome converts a stored income into the engine entity.
func AdaptIncome(r IncomeRecord) (plan.RecurringIncome, error) {
	amount, err := ResolveCents(fmt.Sprintf("income[%s].amount", r.ID), r.AmountCents, r.Amount)
	if err != nil {
		return plan.RecurringIncome{}, err
	}

	inc := plan.RecurringIncome{
		ID:         r.ID,
		Name:       r.Name,
		Amount:     amount,
		Interval:   plan.Interval(r.Interval),
		Confidence: plan.Confidence(r.Confidence),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
	if inc.Interval == "" {
		inc.Interval = plan.IntervalMonthly
	}
	if r.Kind == "one_time" {
		inc.StartDate = r.Date
		inc.EndDate = r.Date
		inc.Interval = plan.IntervalMonthly
	}
	return inc, nil
}

// AdaptExpense converts a stored expense into the engine entity.
func AdaptExpense(r ExpenseRecord) (plan.RecurringExpense, error) {
	amount, err := ResolveCents(fmt.Sprintf("expense[%s].amount", r.ID), r.AmountCents, r.Amount)
	if err != nil {
		return plan.RecurringExpense{}, err
	}

	exp := plan.RecurringExpense{
		ID:        r.ID,
		Name:      r.Name,
		Amount:    amount,
		Interval:  plan.Interval(r.Interval),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
	if exp.Interval == "" {
		exp.Interval = plan.IntervalMonthly
	}
	if r.Kind == "one_time" {
		exp.StartDate = r.Date
		exp.EndDate = r.Date
		exp.Interval = plan.IntervalMonthly
	}
	return exp, nil
}

// AdaptReserve converts a stored reserve. A missing monthly contribution
// is computed from the remaining target and the months until the due
// date, anchored at 'now'.
func AdaptReserve(r ReserveRecord, now plan.MonthKey) (plan.ReserveBucket, error) {
	target, err := ResolveCents(fmt.Sprintf("reserve[%s].targetAmount", r.ID), r.TargetAmountCents, r.TargetAmount)
	if err != nil {
		return plan.ReserveBucket{}, err
	}
	current, err := ResolveCents(fmt.Sprintf("reserve[%s].currentAmount", r.ID), r.CurrentAmountCents, r.CurrentAmount)
	if err != nil {
		return plan.ReserveBucket{}, err
	}
	monthly, err := ResolveCents(fmt.Sprintf("reserve[%s].monthlyContribution", r.ID), r.MonthlyContributionCents, r.MonthlyContribution)
	if err != nil {
		return plan.ReserveBucket{}, err
	}
	if monthly == 0 {
		monthly = SmoothContribution(target, current, r.DueDate, now)
	}

	reserve := plan.ReserveBucket{
		ID:                  r.ID,
		Name:                r.Name,
		TargetAmount:        target,
		MonthlyContribution: monthly,
		CurrentAmount:       current,
		Interval:            plan.Interval(r.Interval),
		DueDate:             r.DueDate,
		LinkedExpenseID:     r.LinkedExpenseID,
	}
	if reserve.Interval == "" {
		reserve.Interval = plan.IntervalYearly
	}
	return reserve, nil
}

// AdaptGoal converts a stored goal, resolving all three dual-unit
// monetary fields.
func AdaptGoal(r GoalRecord) (plan.Goal, error) {
	target, err := ResolveCents(fmt.Sprintf("goal[%s].targetAmount", r.ID), r.TargetAmountCents, r.TargetAmount)
	if err != nil {
		return plan.Goal{}, err
	}
	current, err := ResolveCents(fmt.Sprintf("goal[%s].currentAmount", r.ID), r.CurrentAmountCents, r.CurrentAmount)
	if err != nil {
		return plan.Goal{}, err
	}
	rate, err := ResolveCents(fmt.Sprintf("goal[%s].monthlyContribution", r.ID), r.MonthlyContributionCents, r.MonthlyContribution)
	if err != nil {
		return plan.Goal{}, err
	}

	priority := r.Priority
	if priority < 1 || priority > 5 {
		priority = 3
	}
	return plan.Goal{
		ID:                  r.ID,
		Name:                r.Name,
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: rate,
		Priority:            priority,
	}, nil
}

// AdaptInvestment converts a stored investment plan.
func AdaptInvestment(r InvestmentRecord) (plan.InvestmentPlan, error) {
	monthly, err := ResolveCents(fmt.Sprintf("investment[%s].monthlyContribution", r.ID), r.MonthlyContributionCents, r.MonthlyContribution)
	if err != nil {
		return plan.InvestmentPlan{}, err
	}
	value, err := ResolveCents(fmt.Sprintf("investment[%s].currentValue", r.ID), r.CurrentValueCents, r.CurrentValue)
	if err != nil {
		return plan.InvestmentPlan{}, err
	}
	return plan.InvestmentPlan{
		ID:                  r.ID,
		Name:                r.Name,
		MonthlyContribution: monthly,
		CurrentValue:        value,
	}, nil
}

// AdaptPayment converts a stored known future payment.
func AdaptPayment(r PaymentRecord) (plan.KnownFuturePayment, error) {
	amount, err := ResolveCents(fmt.Sprintf("payment[%s].amount", r.ID), r.AmountCents, r.Amount)
	if err != nil {
		return plan.KnownFuturePayment{}, err
	}
	return plan.KnownFuturePayment{
		ID:      r.ID,
		Name:    r.Name,
		Amount:  amount,
		DueDate: r.DueDate,
	}, nil
}

// BuildInput adapts a full snapshot. The first bad monetary field aborts
// the whole build: a projection over half-resolved money is worse than no
// projection.
func BuildInput(s Snapshot, now plan.MonthKey) (plan.Input, error) {
	var input plan.Input

	for _, r := range s.Incomes {
		inc, err := AdaptIncome(r)
		if err != nil {
			return plan.Input{}, err
		}
		input.Incomes = append(input.Incomes, inc)
	}
	for _, r := range s.Expenses {
		exp, err := AdaptExpense(r)
		if err != nil {
			return plan.Input{}, err
		}
		input.Expenses = append(input.Expenses, exp)
	}
	for _, r := range s.Reserves {
		res, err := AdaptReserve(r, now)
		if err != nil {
			return plan.Input{}, err
		}
		input.Reserves = append(input.Reserves, res)
	}
	for _, r := range s.Goals {
		g, err := AdaptGoal(r)
		if err != nil {
			return plan.Input{}, err
		}
		input.Goals = append(input.Goals, g)
	}
	for _, r := range s.Investments {
		inv, err := AdaptInvestment(r)
		if err != nil {
			return plan.Input{}, err
		}
		input.Investments = append(input.Investments, inv)
	}
	for _, r := range s.Payments {
		p, err := AdaptPayment(r)
		if err != nil {
			return plan.Input{}, err
		}
		input.KnownPayments = append(input.KnownPayments, p)
	}
	return input, nil
}

// =============================================================================
// RESERVE SMOOTHING
// =============================================================================

// SmoothContribution spreads the remaining reserve target across the
// months until the due date, rounding up so the fund is full on time.
// A past or unparseable due date yields the full remainder at once.
func SmoothContribution(target, current plan.Cents, dueDate string, now plan.MonthKey) plan.Cents {
	remaining := target - current
	if remaining <= 0 {
		return 0
	}
	due, ok := plan.MonthOfDate(dueDate)
	if !ok {
		return remaining
	}
	months := plan.MonthsBetween(now, due)
	if months < 1 {
		months = 1
	}
	m := plan.Cents(months)
	return (remaining + m - 1) / m
}

// AdvanceReserveCycle rolls a reserve whose due date has passed into its
// next cycle: the due date moves forward by one interval, the saved
// balance is considered spent on the obligation, and the contribution is
// re-smoothed over the new cycle. Reserves not yet due are returned
// unchanged.
func AdvanceReserveCycle(r ReserveRecord, now plan.MonthKey) (ReserveRecord, bool) {
	due, ok := plan.MonthOfDate(r.DueDate)
	if !ok || due.AfterOrEqual(now) {
		return r, false
	}

	interval := plan.Interval(r.Interval)
	if r.Interval == "" {
		interval = plan.IntervalYearly
	}

	next := due
	for next.Before(now) {
		next = next.AddMonths(interval.Months())
	}

	target, err := ResolveCents("reserve.targetAmount", r.TargetAmountCents, r.TargetAmount)
	if err != nil {
		return r, false
	}

	zero := float64(0)
	monthly := float64(SmoothContribution(target, 0, next.String()+"-01", now))

	r.DueDate = next.String() + "-01"
	r.CurrentAmount = nil
	r.CurrentAmountCents = &zero
	r.MonthlyContribution = nil
	r.MonthlyContributionCents = &monthly
	return r, true
}
