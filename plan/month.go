package plan

import (
	"fmt"
	"time"
)

// =============================================================================
// MONTH KEY - The engine's unit of time
// =============================================================================

// MonthKey identifies a calendar month. The engine never needs day-level
// arithmetic: the timeline advances by pure month/year increments.
type MonthKey struct {
	Year  int
	Month time.Month
}

// NewMonthKey normalizes out-of-range months (month 13 becomes January of
// the next year), so callers can do naive arithmetic.
func NewMonthKey(year int, month time.Month) MonthKey {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOfDate returns the month containing an ISO date, and false when the
// date is empty or malformed. Malformed dates are an upstream concern; the
// engine treats them as absent.
func MonthOfDate(iso string) (MonthKey, bool) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return MonthKey{}, false
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, true
}

// CurrentMonth returns the month containing the given wall-clock time.
func CurrentMonth(now time.Time) MonthKey {
	return MonthKey{Year: now.Year(), Month: now.Month()}
}

// Comparison
func (m MonthKey) Before(other MonthKey) bool {
	return m.Year < other.Year || (m.Year == other.Year && m.Month < other.Month)
}
func (m MonthKey) After(other MonthKey) bool        { return other.Before(m) }
func (m MonthKey) Equal(other MonthKey) bool        { return m.Year == other.Year && m.Month == other.Month }
func (m MonthKey) BeforeOrEqual(other MonthKey) bool { return !m.After(other) }
func (m MonthKey) AfterOrEqual(other MonthKey) bool  { return !m.Before(other) }
func (m MonthKey) IsZero() bool                      { return m.Year == 0 && m.Month == 0 }

// AddMonths advances the key with year rollover.
func (m MonthKey) AddMonths(n int) MonthKey {
	return NewMonthKey(m.Year, m.Month+time.Month(n))
}

// MonthsBetween returns the signed number of months from 'from' to 'to'.
func MonthsBetween(from, to MonthKey) int {
	return (to.Year-from.Year)*12 + int(to.Month-from.Month)
}

// String renders the canonical "YYYY-MM" form.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalText makes MonthKey render as "YYYY-MM" in JSON output.
func (m MonthKey) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses the canonical form.
func (m *MonthKey) UnmarshalText(b []byte) error {
	parsed, err := ParseMonthKey(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthSequence generates the ordered month keys of a projection horizon.
func MonthSequence(start MonthKey, months int) []MonthKey {
	if months <= 0 {
		return nil
	}
	keys := make([]MonthKey, months)
	for i := 0; i < months; i++ {
		keys[i] = start.AddMonths(i)
	}
	return keys
}
