/*
records.go - Loosely-typed stored record shapes

PURPOSE:
  Defines the JSON shapes of persisted records exactly as they live in
  the key-value store. These are the historical, loosely-typed shapes:
  monetary fields exist twice (a legacy float-euro field and a cents
  field), both decoded as *float64 because JSON numbers carry no
  integer guarantee. The adapter resolves them into strict plan types
  once, at the boundary, so the engine never sees an ambiguous unit.

NAMING CONVENTION:
  *Record: persisted shape (loose)
  plan.*:  engine shape (strict, int64 cents)

SEE ALSO:
  - adapter.go: Record -> plan entity mapping and cents resolution
  - repository.go: Where each collection lives in the KV store
*/
package adapter

// IncomeRecord is a stored income. Kind "one_time" uses Date; recurring
// incomes use StartDate/EndDate.
type IncomeRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Amount      *float64 `json:"amount,omitempty"`      // legacy euros
	AmountCents *float64 `json:"amountCents,omitempty"` // minor units
	Interval    string   `json:"interval,omitempty"`
	Confidence  string   `json:"confidence,omitempty"`
	Kind        string   `json:"kind,omitempty"` // "recurring" (default) or "one_time"
	Date        string   `json:"date,omitempty"` // one-time occurrence date
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// ExpenseRecord mirrors IncomeRecord for committed outflows.
type ExpenseRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Amount      *float64 `json:"amount,omitempty"`
	AmountCents *float64 `json:"amountCents,omitempty"`
	Interval    string   `json:"interval,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	Date        string   `json:"date,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// ReserveRecord is a stored sinking fund. MonthlyContribution may be
// absent on freshly created reserves; adaptation computes it from the
// target, the saved balance and the months left until the due date.
type ReserveRecord struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	TargetAmount             *float64 `json:"targetAmount,omitempty"`
	TargetAmountCents        *float64 `json:"targetAmountCents,omitempty"`
	CurrentAmount            *float64 `json:"currentAmount,omitempty"`
	CurrentAmountCents       *float64 `json:"currentAmountCents,omitempty"`
	MonthlyContribution      *float64 `json:"monthlyContribution,omitempty"`
	MonthlyContributionCents *float64 `json:"monthlyContributionCents,omitempty"`
	Interval                 string   `json:"interval,omitempty"`
	DueDate                  string   `json:"dueDate,omitempty"`
	LinkedExpenseID          string   `json:"linkedExpenseId,omitempty"`
}

// GoalRecord carries the historical dual-unit fields on all three
// monetary attributes.
type GoalRecord struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	TargetAmount             *float64 `json:"targetAmount,omitempty"`
	TargetAmountCents        *float64 `json:"targetAmountCents,omitempty"`
	CurrentAmount            *float64 `json:"currentAmount,omitempty"`
	CurrentAmountCents       *float64 `json:"currentAmountCents,omitempty"`
	MonthlyContribution      *float64 `json:"monthlyContribution,omitempty"`
	MonthlyContributionCents *float64 `json:"monthlyContributionCents,omitempty"`
	Priority                 int      `json:"priority,omitempty"`
}

// InvestmentRecord is a stored investment plan. CurrentValue is
// informational only.
type InvestmentRecord struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	MonthlyContribution      *float64 `json:"monthlyContribution,omitempty"`
	MonthlyContributionCents *float64 `json:"monthlyContributionCents,omitempty"`
	CurrentValue             *float64 `json:"currentValue,omitempty"`
	CurrentValueCents        *float64 `json:"currentValueCents,omitempty"`
}

// PaymentRecord is a stored one-off future payment.
type PaymentRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Amount      *float64 `json:"amount,omitempty"`
	AmountCents *float64 `json:"amountCents,omitempty"`
	DueDate     string   `json:"dueDate"`
}

// SettingsRecord is the persisted projection configuration.
type SettingsRecord struct {
	ForecastMonths int    `json:"forecastMonths"`
	StartMonth     string `json:"startMonth,omitempty"`
}

// Snapshot bundles every stored collection read in one pass.
type Snapshot struct {
	Incomes     []IncomeRecord     `json:"incomes"`
	Expenses    []ExpenseRecord    `json:"expenses"`
	Reserves    []ReserveRecord    `json:"reserves"`
	Goals       []GoalRecord       `json:"goals"`
	Investments []InvestmentRecord `json:"investments"`
	Payments    []PaymentRecord    `json:"payments"`
}
