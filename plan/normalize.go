/*
normalize.go - Interval math for non-monthly recurring items

PURPOSE:
  Two distinct treatments of a non-monthly amount exist in this domain and
  they are deliberately NOT merged:

  1. NormalizeMonthly: smear the amount evenly across the interval
     (1200/yearly -> 100 per month). Used for reserve smoothing and
     anywhere a monthly-equivalent figure is displayed.

  2. Occurrence months: the full, un-divided amount lands in the months
     the item actually occurs, and zero everywhere else (1200/yearly
     starting 2026-11 -> 1200 in November, 0 in the other eleven months).
     This is what the timeline builder uses.

  Averaging the two would produce a timeline that is wrong in every single
  month, so the occurrence semantics own the projection and the normalize
  helper stays a separate utility.

OCCURRENCE RULE:
  A month M is an occurrence month for an item with start date S and
  interval length L when monthsBetween(month(S), M) is non-negative and
  divisible by L. Items without a start date occur every month.

SEE ALSO:
  - projection.go: The only caller of occursInMonth on the hot path
*/
package plan

// NormalizeMonthly returns the monthly-equivalent of an amount on the
// given interval, using integer division: 1200 yearly -> 100, quarterly
// 300 -> 100. The remainder is dropped, not redistributed.
func NormalizeMonthly(amount Cents, interval Interval) Cents {
	return amount / Cents(interval.Months())
}

// occursInMonth implements the occurrence-month test for the timeline.
// The anchor is the item's start date; with no (or malformed) start date
// every month is an occurrence month.
func occursInMonth(startDate string, interval Interval, month MonthKey) bool {
	length := interval.Months()
	if length <= 1 {
		return true
	}
	anchor, ok := MonthOfDate(startDate)
	if !ok {
		return true
	}
	diff := MonthsBetween(anchor, month)
	return diff >= 0 && diff%length == 0
}

// activeInMonth checks the [startDate, endDate] range, with absent or
// malformed bounds treated as unbounded.
func activeInMonth(startDate, endDate string, month MonthKey) bool {
	if from, ok := MonthOfDate(startDate); ok && month.Before(from) {
		return false
	}
	if to, ok := MonthOfDate(endDate); ok && month.After(to) {
		return false
	}
	return true
}
