package counter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
	"github.com/comalice/thunkx/internal/counter"
)

func newStore(n int) (*thunkx.Store[*counter.State, counter.Action], *counter.Dispatcher) {
	s := thunkx.NewLazy[*counter.State, counter.Action](n, counter.Init)
	return s, s.Use(counter.Reducer).Dispatch
}

func TestReducerActions(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		action counter.Action
		want   int
	}{
		{"increment", 1, counter.IncrementAction(), 2},
		{"decrement", 1, counter.DecrementAction(), 0},
		{"add", 1, counter.AddAction(5), 6},
		{"add negative", 1, counter.AddAction(-3), -2},
		{"reset", 9, counter.ResetAction(4), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := counter.Init(tt.start)
			next, err := counter.Reducer.Reduce(prev, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next.Count)
			assert.Equal(t, tt.start, prev.Count, "previous state must not change")
		})
	}
}

func TestReducerRejectsUnknownType(t *testing.T) {
	_, err := counter.Reducer.Reduce(counter.Init(0), counter.Action{Type: "explode"})
	assert.ErrorIs(t, err, thunkx.ErrUnhandledAction)
}

func TestIncrementIfOdd(t *testing.T) {
	s, d := newStore(2)

	did, err := d.Dispatch(counter.IncrementIfOdd())
	require.NoError(t, err)
	assert.Equal(t, false, did)
	assert.Equal(t, 2, s.State().Count)

	require.NoError(t, d.Action(counter.IncrementAction()))
	did, err = d.Dispatch(counter.IncrementIfOdd())
	require.NoError(t, err)
	assert.Equal(t, true, did)
	assert.Equal(t, 4, s.State().Count)
}

func TestIncrementAndReport(t *testing.T) {
	_, d := newStore(7)

	got, err := d.Dispatch(counter.IncrementAndReport())
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestIncrementAsync(t *testing.T) {
	loop := host.NewLoop()
	s, d := newStore(0)

	got, err := d.Dispatch(counter.IncrementAsync(loop, time.Millisecond))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, s.State().Count)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, loop.Drain(ctx))
	assert.Equal(t, 1, s.State().Count)
}

func TestAddChecked(t *testing.T) {
	s, d := newStore(2)

	_, err := d.Dispatch(counter.AddChecked(3))
	require.NoError(t, err)
	assert.Equal(t, 5, s.State().Count)

	_, err = d.Dispatch(counter.AddChecked(-6))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-1")
	assert.Equal(t, 5, s.State().Count)
	assert.Equal(t, uint64(1), s.Version())
}

func TestReducerIdentityIsStable(t *testing.T) {
	s, d := newStore(0)
	assert.Same(t, d, s.Use(counter.Reducer).Dispatch)

	_, err := d.Dispatch("increment")
	assert.True(t, errors.Is(err, thunkx.ErrInvalidAction))
}
