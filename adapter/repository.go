/*
repository.go - Typed access to the stored snapshot

PURPOSE:
  Maps the KV store's JSON documents to record collections. Each entity
  collection is one document under a well-known key; a snapshot read is
  six Gets. Missing keys mean empty collections, never errors - a fresh
  database is a valid (empty) plan.

KEYS:
  plan/incomes      []IncomeRecord
  plan/expenses     []ExpenseRecord
  plan/reserves     []ReserveRecord
  plan/goals        []GoalRecord
  plan/investments  []InvestmentRecord
  plan/payments     []PaymentRecord
  plan/settings     SettingsRecord
*/
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/warp/plan-engine/plan"
	"github.com/warp/plan-engine/store"
)

const (
	KeyIncomes     = "plan/incomes"
	KeyExpenses    = "plan/expenses"
	KeyReserves    = "plan/reserves"
	KeyGoals       = "plan/goals"
	KeyInvestments = "plan/investments"
	KeyPayments    = "plan/payments"
	KeySettings    = "plan/settings"
)

// CollectionKeys lists every entity collection key, in display order.
var CollectionKeys = []string{
	KeyIncomes, KeyExpenses, KeyReserves, KeyGoals, KeyInvestments, KeyPayments,
}

// Repository reads and writes record collections through a KV store.
type Repository struct {
	KV store.KV
}

func NewRepository(kv store.KV) *Repository {
	return &Repository{KV: kv}
}

// LoadSnapshot reads every collection. Missing keys yield empty slices.
func (r *Repository) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	if err := r.load(ctx, KeyIncomes, &s.Incomes); err != nil {
		return Snapshot{}, err
	}
	if err := r.load(ctx, KeyExpenses, &s.Expenses); err != nil {
		return Snapshot{}, err
	}
	if err := r.load(ctx, KeyReserves, &s.Reserves); err != nil {
		return Snapshot{}, err
	}
	if err := r.load(ctx, KeyGoals, &s.Goals); err != nil {
		return Snapshot{}, err
	}
	if err := r.load(ctx, KeyInvestments, &s.Investments); err != nil {
		return Snapshot{}, err
	}
	if err := r.load(ctx, KeyPayments, &s.Payments); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// LoadSettings reads the persisted projection settings, defaulting to a
// twelve-month horizon starting at the current month.
func (r *Repository) LoadSettings(ctx context.Context) (plan.Settings, error) {
	var rec SettingsRecord
	if err := r.load(ctx, KeySettings, &rec); err != nil {
		return plan.Settings{}, err
	}
	if rec.ForecastMonths <= 0 {
		rec.ForecastMonths = 12
	}
	return plan.Settings{
		ForecastMonths: rec.ForecastMonths,
		StartMonth:     rec.StartMonth,
	}, nil
}

// SaveSettings persists projection settings.
func (r *Repository) SaveSettings(ctx context.Context, rec SettingsRecord) error {
	return r.save(ctx, KeySettings, rec)
}

// SaveCollection replaces one entity collection. The value must be a
// slice of the matching record type; the caller owns that contract.
func (r *Repository) SaveCollection(ctx context.Context, key string, records any) error {
	return r.save(ctx, key, records)
}

// LoadCollection reads one entity collection as raw JSON for pass-through
// API responses. Missing keys yield an empty array.
func (r *Repository) LoadCollection(ctx context.Context, key string) (json.RawMessage, error) {
	raw, err := r.KV.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return json.RawMessage("[]"), nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// LoadReserves exposes the reserve records for the cycle scheduler.
func (r *Repository) LoadReserves(ctx context.Context) ([]ReserveRecord, error) {
	var reserves []ReserveRecord
	if err := r.load(ctx, KeyReserves, &reserves); err != nil {
		return nil, err
	}
	return reserves, nil
}

// SaveReserves writes back the reserve records after a cycle advance.
func (r *Repository) SaveReserves(ctx context.Context, reserves []ReserveRecord) error {
	return r.save(ctx, KeyReserves, reserves)
}

func (r *Repository) load(ctx context.Context, key string, out any) error {
	raw, err := r.KV.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("corrupt record at %s: %w", key, err)
	}
	return nil
}

func (r *Repository) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.KV.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
