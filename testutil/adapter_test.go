package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/internal/counter"
)

func adapters() []struct {
	name    string
	adapter HostAdapter
} {
	return []struct {
		name    string
		adapter HostAdapter
	}{
		{name: "Loop", adapter: NewLoopAdapter(0)},
		{name: "Tea", adapter: NewTeaAdapter(0)},
	}
}

// TestAdapterInterface runs the same scenarios on every host.
func TestAdapterInterface(t *testing.T) {
	for _, tt := range adapters() {
		t.Run(tt.name, func(t *testing.T) {
			RunCommonTests(t, tt.adapter)
		})
	}
}

// RunCommonTests drives actions, nested thunks and deferred thunks through adapter.
func RunCommonTests(t *testing.T, adapter HostAdapter) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Action
	_, err := adapter.Dispatch(counter.IncrementAction())
	require.NoError(t, err)
	assert.Equal(t, 1, adapter.Count())

	// Thunk reads live state
	v, err := adapter.Dispatch(counter.IncrementIfOdd())
	require.NoError(t, err)
	assert.Equal(t, true, v)
	assert.Equal(t, 2, adapter.Count())

	// Nested thunk
	_, err = adapter.Dispatch(counter.AddChecked(3))
	require.NoError(t, err)
	assert.Equal(t, 5, adapter.Count())

	// Deferred thunk commits only after the host runs its task
	v, err = adapter.Dispatch(counter.IncrementAsync(adapter.Scheduler(), 10*time.Millisecond))
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 5, adapter.Count())

	require.NoError(t, adapter.WaitForStability(ctx))
	assert.Equal(t, 6, adapter.Count())
	assert.Equal(t, uint64(4), adapter.Commits())

	// Reducer error commits nothing
	_, err = adapter.Dispatch(counter.Action{Type: "explode"})
	assert.Error(t, err)
	assert.Equal(t, uint64(4), adapter.Commits())
}

func TestDeferredTaskErrorReported(t *testing.T) {
	for _, tt := range adapters() {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			sched := tt.adapter.Scheduler()
			_, err := tt.adapter.Dispatch(counter.Thunk(func(d *counter.Dispatcher, _ thunkx.GetState[*counter.State]) (any, error) {
				sched.After(time.Millisecond, func() error {
					return d.Action(counter.Action{Type: "explode"})
				})
				return nil, nil
			}))
			require.NoError(t, err)

			assert.Error(t, tt.adapter.WaitForStability(ctx))
			assert.Equal(t, 0, tt.adapter.Count())
		})
	}
}
