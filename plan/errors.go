/*
errors.go - Centralized error types for the plan engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (adapter, api) wrap these with additional context.

ERROR CATEGORIES:
  1. Settings errors - The caller asked for an impossible horizon
  2. Money errors - A non-integer amount reached cent arithmetic

MONEY ERRORS ARE FATAL:
  A fractional, NaN or infinite amount is an upstream adapter bug, never
  a recoverable runtime condition. Silent rounding is how x100 unit
  confusion bugs happen in this domain, so the engine refuses loudly and
  names the offending field.

USAGE:
  if errors.Is(err, plan.ErrInvalidSettings) { ... }

  var amountErr *plan.NonIntegerAmountError
  if errors.As(err, &amountErr) {
      log.Printf("bad amount in %s: %v", amountErr.Field, amountErr.Value)
  }
*/
package plan

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidSettings is returned when the projection settings are
	// unusable (non-positive horizon, malformed start month).
	ErrInvalidSettings = errors.New("invalid projection settings")

	// ErrNonIntegerAmount is returned when a monetary value is not an
	// exact integer number of minor units.
	ErrNonIntegerAmount = errors.New("non-integer monetary amount")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NonIntegerAmountError identifies exactly which field carried a
// fractional or non-finite amount.
type NonIntegerAmountError struct {
	Field string
	Value float64
}

func (e *NonIntegerAmountError) Error() string {
	return fmt.Sprintf("non-integer monetary amount in %s: %v", e.Field, e.Value)
}

func (e *NonIntegerAmountError) Unwrap() error {
	return ErrNonIntegerAmount
}

// SettingsError explains why projection settings were rejected.
type SettingsError struct {
	Reason string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid projection settings: %s", e.Reason)
}

func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, ErrNonIntegerAmount)
}
