package query

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchServesCachedValueWithinStaleness(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	var calls atomic.Int32
	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "value", nil
	}

	v, err := Fetch(context.Background(), c, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = Fetch(context.Background(), c, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// Advance past the staleness window; the next read refetches.
	now = now.Add(2 * time.Minute)
	_, err = Fetch(context.Background(), c, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidateByPrefix(t *testing.T) {
	c := NewCache()
	fetchConst := func(v string) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) { return v, nil }
	}

	_, err := Fetch(context.Background(), c, Key("bnb", "search", "nairobi"), time.Minute, fetchConst("a"))
	require.NoError(t, err)
	_, err = Fetch(context.Background(), c, Key("bnb", "detail", "x1"), time.Minute, fetchConst("b"))
	require.NoError(t, err)
	_, err = Fetch(context.Background(), c, Key("tours", "featured"), time.Minute, fetchConst("c"))
	require.NoError(t, err)

	c.Invalidate("bnb")

	_, ok := c.Peek(Key("bnb", "search", "nairobi"), time.Minute)
	assert.False(t, ok)
	_, ok = c.Peek(Key("bnb", "detail", "x1"), time.Minute)
	assert.False(t, ok)
	_, ok = c.Peek(Key("tours", "featured"), time.Minute)
	assert.True(t, ok)
}

func TestInvalidationMidFetchDropsStaleResult(t *testing.T) {
	c := NewCache()

	// The fetch was started before the invalidation, so its result must not
	// be resurrected into the cache.
	fn := func(ctx context.Context) (string, error) {
		c.Invalidate("k")
		return "stale", nil
	}
	v, err := Fetch(context.Background(), c, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "stale", v) // caller still gets its own result

	_, ok := c.Peek("k", time.Minute)
	assert.False(t, ok)
}

func TestFetchErrorNotCached(t *testing.T) {
	c := NewCache()
	var calls atomic.Int32
	boom := errors.New("boom")
	fn := func(ctx context.Context) (int, error) {
		calls.Add(1)
		if calls.Load() == 1 {
			return 0, boom
		}
		return 42, nil
	}

	_, err := Fetch(context.Background(), c, "k", time.Minute, fn)
	assert.ErrorIs(t, err, boom)

	v, err := Fetch(context.Background(), c, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestOptimisticRunRollsBackOnFailure(t *testing.T) {
	state := []string{"a"}
	reconciled := false

	err := Run(context.Background(), Update[[]string]{
		Snapshot:  func() []string { return append([]string(nil), state...) },
		Apply:     func() { state = append(state, "b") },
		Call:      func(ctx context.Context) error { return errors.New("server rejected") },
		Rollback:  func(snap []string) { state = snap },
		Reconcile: func() { reconciled = true },
	})

	require.Error(t, err)
	assert.Equal(t, []string{"a"}, state)
	assert.True(t, reconciled)
}

func TestOptimisticRunKeepsApplyOnSuccess(t *testing.T) {
	state := []string{"a"}

	err := Run(context.Background(), Update[[]string]{
		Snapshot: func() []string { return append([]string(nil), state...) },
		Apply:    func() { state = append(state, "b") },
		Call:     func(ctx context.Context) error { return nil },
		Rollback: func(snap []string) { state = snap },
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, state)
}
