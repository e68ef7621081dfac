package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/plan-engine/store"
	"github.com/warp/plan-engine/store/memory"
)

func TestMemoryStore_SetGetRoundTrip(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "plan/goals", []byte(`[{"id":"g1"}]`)))

	got, err := s.Get(ctx, "plan/goals")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"g1"}]`, string(got))
}

func TestMemoryStore_GetMissingKey(t *testing.T) {
	s := memory.New()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old")))
	require.NoError(t, s.Set(ctx, "k", []byte("new")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestMemoryStore_RemoveIsIdempotent(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Remove(ctx, "k"))
	require.NoError(t, s.Remove(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestMemoryStore_KeysByPrefix(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	for _, k := range []string{"plan/incomes", "plan/goals", "other/thing"} {
		require.NoError(t, s.Set(ctx, k, []byte("{}")))
	}

	keys, err := s.Keys(ctx, "plan/")
	require.NoError(t, err)
	assert.Equal(t, []string{"plan/goals", "plan/incomes"}, keys)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again), "mutating a returned value must not corrupt the store")
}
