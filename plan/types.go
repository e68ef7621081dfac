/*
Package plan provides the core personal-finance forecast engine.

PURPOSE:
  This package contains the domain entities and the projection algorithm
  for month-by-month cash-flow planning. Given a snapshot of incomes,
  expenses, sinking-fund reserves, savings goals and investment plans, it
  produces a deterministic timeline that partitions every month's income
  into four mutually exclusive buckets: bound, planned, invested, free.

KEY CONCEPTS IN THIS FILE (types.go):
  - Cents: All money is integer minor units. No floats, ever.
  - Interval: Recurrence schedule of incomes, expenses and reserves
  - Input/Settings: The snapshot handed to BuildProjection
  - Projection/MonthProjection/Event: The computed output

DESIGN PRINCIPLES:
  1. Purity: BuildProjection never mutates its input and holds no state
     between calls. Same input, same output.
  2. Exactness: free = income - bound - planned - invested holds to the
     cent for every month of the timeline.
  3. Type Safety: Money is int64 cents end to end. Legacy float fields
     exist only in the adapter package, which resolves them before any
     value reaches this package.

USAGE:
  projection, err := plan.BuildProjection(input, plan.Settings{
      ForecastMonths: 12,
      StartMonth:     "2026-02",
  })

SEE ALSO:
  - projection.go: The timeline builder
  - normalize.go: Interval math and occurrence-month schedule
  - selectors.go: Read-only views over a Projection
*/
package plan

// =============================================================================
// MONEY - Integer minor units only
// =============================================================================

// Cents is a monetary amount in integer minor currency units.
// Bucket arithmetic is plain int64 math, so the exactness invariant
// cannot be broken by rounding.
type Cents = int64

// =============================================================================
// INTERVAL - Recurrence schedule
// =============================================================================

type Interval string

const (
	IntervalMonthly    Interval = "monthly"
	IntervalQuarterly  Interval = "quarterly"
	IntervalSemiYearly Interval = "semi_yearly"
	IntervalYearly     Interval = "yearly"
)

// Months returns the interval length in months. Unknown intervals are
// treated as monthly, matching the defensive stance on malformed input
// that is not money.
func (i Interval) Months() int {
	switch i {
	case IntervalQuarterly:
		return 3
	case IntervalSemiYearly:
		return 6
	case IntervalYearly:
		return 12
	default:
		return 1
	}
}

// Confidence tags how certain a recurring income is. Informational only;
// the engine counts every active income in full.
type Confidence string

const (
	ConfidenceFixed    Confidence = "fixed"
	ConfidenceVariable Confidence = "variable"
)

// =============================================================================
// DOMAIN ENTITIES
// =============================================================================

// RecurringIncome is an income stream. A one-time income is encoded as a
// RecurringIncome whose StartDate equals EndDate: it occurs exactly in
// that month and never recurs.
type RecurringIncome struct {
	ID         string
	Name       string
	Amount     Cents
	Interval   Interval
	Confidence Confidence
	StartDate  string // ISO YYYY-MM-DD, empty = unbounded
	EndDate    string // ISO YYYY-MM-DD, empty = unbounded
}

// OneTime reports whether this income uses the equal-dates one-time
// encoding.
func (r RecurringIncome) OneTime() bool {
	return r.StartDate != "" && r.StartDate == r.EndDate
}

// RecurringExpense is a committed outflow. Date-range and occurrence
// semantics match RecurringIncome.
type RecurringExpense struct {
	ID        string
	Name      string
	Amount    Cents
	Interval  Interval
	StartDate string
	EndDate   string
}

func (r RecurringExpense) OneTime() bool {
	return r.StartDate != "" && r.StartDate == r.EndDate
}

// ReserveBucket is a sinking fund: a non-monthly obligation smoothed into
// a fixed monthly contribution. The smoothing happens upstream (adapter,
// cycle advance); inside the engine a reserve is a flat monthly drain
// every month, regardless of Interval or DueDate.
type ReserveBucket struct {
	ID                  string
	Name                string
	TargetAmount        Cents
	MonthlyContribution Cents
	CurrentAmount       Cents
	Interval            Interval
	DueDate             string // ISO YYYY-MM-DD
	LinkedExpenseID     string // optional originating expense
}

// Goal is a savings goal funded at a fixed monthly rate until its target
// is reached. Priority 1 is most important, 5 least.
type Goal struct {
	ID                  string
	Name                string
	TargetAmount        Cents
	CurrentAmount       Cents
	MonthlyContribution Cents
	Priority            int
}

// Remaining returns how much is still needed to reach the target.
// Never negative: an overfunded goal has nothing remaining.
func (g Goal) Remaining() Cents {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// InvestmentPlan is a flat monthly contribution into an investment.
// CurrentValue is informational and never enters bucket math.
type InvestmentPlan struct {
	ID                  string
	Name                string
	MonthlyContribution Cents
	CurrentValue        Cents
}

// KnownFuturePayment is a single dated outflow, not recurring.
type KnownFuturePayment struct {
	ID      string
	Name    string
	Amount  Cents
	DueDate string // ISO YYYY-MM-DD
}

// =============================================================================
// ENGINE INPUT
// =============================================================================

// Input is the full snapshot BuildProjection computes over. The engine
// treats it as read-only.
type Input struct {
	Incomes       []RecurringIncome
	Expenses      []RecurringExpense
	Reserves      []ReserveBucket
	Goals         []Goal
	Investments   []InvestmentPlan
	KnownPayments []KnownFuturePayment
}

// Settings controls the projection horizon.
type Settings struct {
	// ForecastMonths is the horizon length. Must be > 0.
	ForecastMonths int

	// StartMonth is the first projected month ("YYYY-MM"). Empty means
	// the current wall-clock month.
	StartMonth string
}

// =============================================================================
// ENGINE OUTPUT
// =============================================================================

// Buckets is the partition of one month's cash flow.
// Free = Income - Bound - Planned - Invested, always.
type Buckets struct {
	Bound    Cents `json:"bound"`
	Planned  Cents `json:"planned"`
	Invested Cents `json:"invested"`
	Free     Cents `json:"free"`
}

// MonthProjection is one entry of the timeline.
type MonthProjection struct {
	Month   MonthKey
	Income  Cents
	Buckets Buckets

	// PlannedByGoal breaks the planned bucket down per goal ID. Only
	// goals with a positive contribution this month appear.
	PlannedByGoal map[string]Cents
}

type EventType string

const (
	EventShortfall   EventType = "shortfall"
	EventGoalReached EventType = "goal_reached"
	EventPaymentDue  EventType = "payment_due"
)

// Event is a discrete occurrence detected while building the timeline.
type Event struct {
	Month  MonthKey
	Type   EventType
	Amount Cents
	RefID  string
	Note   string
}

// GoalProjection summarizes whether a goal completes within the horizon.
type GoalProjection struct {
	GoalID    string
	Reachable bool
	ETAMonth  *MonthKey // nil when unreachable within the horizon
}

// Projection is the complete engine output: a fresh value per call.
type Projection struct {
	Settings Settings
	Timeline []MonthProjection
	Goals    []GoalProjection
	Events   []Event
}
