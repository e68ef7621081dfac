package plan_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/warp/plan-engine/plan"
)

func TestParseMonthKey(t *testing.T) {
	// GIVEN: Month strings in various states of repair
	// WHEN: Parsing
	// THEN: Well-formed YYYY-MM parses; everything else errors

	good := map[string]plan.MonthKey{
		"2026-01": plan.NewMonthKey(2026, time.January),
		"2026-12": plan.NewMonthKey(2026, time.December),
		"1999-06": plan.NewMonthKey(1999, time.June),
	}
	for raw, want := range good {
		got, err := plan.ParseMonthKey(raw)
		if err != nil {
			t.Errorf("%q: unexpected error %v", raw, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%q: got %s, want %s", raw, got, want)
		}
	}

	for _, raw := range []string{"", "2026", "2026-13", "2026-00", "06-2026", "2026-1", "garbage"} {
		if _, err := plan.ParseMonthKey(raw); err == nil {
			t.Errorf("%q: expected error, got nil", raw)
		}
	}
}

func TestMonthKey_AddMonths_Rollover(t *testing.T) {
	// GIVEN: A November anchor
	// WHEN: Adding and subtracting months
	// THEN: Year boundaries roll correctly in both directions

	nov := plan.NewMonthKey(2026, time.November)

	cases := []struct {
		add  int
		want string
	}{
		{0, "2026-11"},
		{1, "2026-12"},
		{2, "2027-01"},
		{14, "2028-01"},
		{-11, "2025-12"},
	}
	for _, c := range cases {
		if got := nov.AddMonths(c.add).String(); got != c.want {
			t.Errorf("AddMonths(%d): got %s, want %s", c.add, got, c.want)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	// GIVEN: Two month keys
	// WHEN: Measuring the signed distance
	// THEN: Distance is in whole months, negative when b precedes a

	a := plan.NewMonthKey(2026, time.February)

	if got := plan.MonthsBetween(a, plan.NewMonthKey(2026, time.February)); got != 0 {
		t.Errorf("same month: got %d", got)
	}
	if got := plan.MonthsBetween(a, plan.NewMonthKey(2027, time.February)); got != 12 {
		t.Errorf("one year: got %d", got)
	}
	if got := plan.MonthsBetween(a, plan.NewMonthKey(2025, time.November)); got != -3 {
		t.Errorf("backwards: got %d", got)
	}
}

func TestMonthOfDate(t *testing.T) {
	// GIVEN: ISO date strings
	// WHEN: Extracting the month
	// THEN: The day is dropped; malformed input reports !ok

	if m, ok := plan.MonthOfDate("2026-03-15"); !ok || m.String() != "2026-03" {
		t.Errorf("got %s, %v", m, ok)
	}
	if _, ok := plan.MonthOfDate(""); ok {
		t.Error("empty date should not parse")
	}
	if _, ok := plan.MonthOfDate("15.03.2026"); ok {
		t.Error("non-ISO date should not parse")
	}
}

func TestMonthKey_Comparisons(t *testing.T) {
	// GIVEN: Ordered months across a year boundary
	// WHEN: Comparing
	// THEN: Before/After/Equal agree with calendar order

	dec := plan.NewMonthKey(2026, time.December)
	jan := plan.NewMonthKey(2027, time.January)

	if !dec.Before(jan) || jan.Before(dec) {
		t.Error("Before is wrong across year boundary")
	}
	if !jan.After(dec) || dec.After(jan) {
		t.Error("After is wrong across year boundary")
	}
	if !dec.BeforeOrEqual(dec) || !dec.AfterOrEqual(dec) {
		t.Error("OrEqual variants must accept equal months")
	}
}

func TestMonthSequence(t *testing.T) {
	// GIVEN: A start month and a count
	// WHEN: Generating the sequence
	// THEN: Consecutive months, starting at the start

	seq := plan.MonthSequence(plan.NewMonthKey(2026, time.November), 4)
	want := []string{"2026-11", "2026-12", "2027-01", "2027-02"}
	if len(seq) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(seq))
	}
	for i, m := range seq {
		if m.String() != want[i] {
			t.Errorf("index %d: got %s, want %s", i, m, want[i])
		}
	}

	if got := plan.MonthSequence(plan.NewMonthKey(2026, time.January), 0); len(got) != 0 {
		t.Errorf("zero count: expected empty, got %d", len(got))
	}
}

func TestMonthKey_JSONRoundTrip(t *testing.T) {
	// GIVEN: A month key inside a struct
	// WHEN: Marshaling and unmarshaling
	// THEN: It serializes as the "YYYY-MM" string

	type wrapper struct {
		Month plan.MonthKey `json:"month"`
	}

	raw, err := json.Marshal(wrapper{Month: plan.NewMonthKey(2026, time.July)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"month":"2026-07"}` {
		t.Errorf("unexpected JSON: %s", raw)
	}

	var back wrapper
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Month.String() != "2026-07" {
		t.Errorf("round trip lost the month: %s", back.Month)
	}
}
