package testutil

import (
	"context"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
	"github.com/comalice/thunkx/internal/counter"
	"github.com/comalice/thunkx/tui"
)

// HostAdapter provides a common interface over the hosts a counter store can
// run on. This allows running the same test suite on each host.
type HostAdapter interface {
	// Dispatch dispatches x on the host goroutine and runs queued work.
	Dispatch(x any) (any, error)
	Scheduler() host.Scheduler
	Count() int
	Commits() uint64
	// WaitForStability runs deferred work until none is left and returns
	// the first error a deferred task returned.
	WaitForStability(ctx context.Context) error
}

// LoopAdapter runs the store on a bare host.Loop.
type LoopAdapter struct {
	loop  *host.Loop
	store *thunkx.Store[*counter.State, counter.Action]
	err   error
}

// NewLoopAdapter creates a LoopAdapter starting at initial.
func NewLoopAdapter(initial int) *LoopAdapter {
	a := &LoopAdapter{}
	a.loop = host.NewLoop(host.WithErrorHandler(func(err error) {
		if a.err == nil {
			a.err = err
		}
	}))
	a.store = thunkx.NewLazy[*counter.State, counter.Action](initial, counter.Init)
	return a
}

func (a *LoopAdapter) Dispatch(x any) (any, error) {
	v, err := a.store.Use(counter.Reducer).Dispatch.Dispatch(x)
	a.loop.RunPending()
	return v, err
}

func (a *LoopAdapter) Scheduler() host.Scheduler {
	return a.loop
}

func (a *LoopAdapter) Count() int {
	return a.store.State().Count
}

func (a *LoopAdapter) Commits() uint64 {
	return a.store.Version()
}

func (a *LoopAdapter) WaitForStability(ctx context.Context) error {
	if err := a.loop.Drain(ctx); err != nil {
		return err
	}
	return a.err
}

// TeaAdapter runs the store inside a tui.Model, delivering WakeMsgs the
// way a bubbletea program would.
type TeaAdapter struct {
	m *tui.Model[*counter.State, counter.Action]
}

// NewTeaAdapter creates a TeaAdapter starting at initial.
func NewTeaAdapter(initial int) *TeaAdapter {
	return &TeaAdapter{
		m: tui.New(counter.Reducer, counter.Init(initial), func(s *counter.State) string { return "" }),
	}
}

func (a *TeaAdapter) Dispatch(x any) (any, error) {
	v, err := a.m.Handle().Dispatch.Dispatch(x)
	a.m.Update(tui.WakeMsg{})
	return v, err
}

func (a *TeaAdapter) Scheduler() host.Scheduler {
	return a.m.Loop()
}

func (a *TeaAdapter) Count() int {
	return a.m.Store().State().Count
}

func (a *TeaAdapter) Commits() uint64 {
	return a.m.Store().Version()
}

func (a *TeaAdapter) WaitForStability(ctx context.Context) error {
	loop := a.m.Loop()
	for loop.Pending() > 0 {
		select {
		case <-loop.Ready():
		case <-ctx.Done():
			return ctx.Err()
		}
		a.m.Update(tui.WakeMsg{})
	}
	return a.m.Err()
}
