package tui

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
)

var addReducer = thunkx.ReducerFunc(func(s int, a int) (int, error) {
	if a == 0 {
		return s, errors.New("zero step")
	}
	return s + a, nil
})

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel() *Model[int, int] {
	return New(addReducer, 0, func(n int) string { return "count: " + strconv.Itoa(n) },
		WithTitle("test"),
		WithBindings(
			Binding{
				Key:  key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add one")),
				Make: func(host.Scheduler) any { return 1 },
			},
			Binding{
				Key:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "bad")),
				Make: func(host.Scheduler) any { return 0 },
			},
			Binding{
				Key: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "later")),
				Make: func(sched host.Scheduler) any {
					return thunkx.Thunk[int, int](func(d *thunkx.Dispatcher[int, int], get thunkx.GetState[int]) (any, error) {
						sched.After(time.Millisecond, func() error { return d.Action(10) })
						return get(), nil
					})
				},
			},
		),
	)
}

func TestModelKeyDispatchesAction(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(runes("+"))
	assert.Nil(t, cmd)
	m.Update(runes("+"))

	assert.Equal(t, 2, m.Handle().State)
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "count: 2")
	assert.Contains(t, m.View(), "commits 2")
}

func TestModelShowsReducerError(t *testing.T) {
	m := newTestModel()

	m.Update(runes("z"))

	assert.EqualError(t, m.Err(), "zero step")
	assert.Equal(t, 0, m.Handle().State)
	assert.Contains(t, m.View(), "error: zero step")
}

func TestModelDeferredThunkRunsOnWake(t *testing.T) {
	m := newTestModel()
	m.Update(runes("+"))

	m.Update(runes("a"))
	assert.Equal(t, 1, m.Last())
	assert.Equal(t, 1, m.Handle().State)
	assert.Equal(t, 1, m.Loop().Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for m.Loop().Pending() > 0 {
		select {
		case <-m.Loop().Ready():
		case <-ctx.Done():
			t.Fatal("timed out waiting for deferred task")
		}
		_, cmd := m.Update(WakeMsg{})
		require.NotNil(t, cmd)
	}

	assert.Equal(t, 11, m.Handle().State)
	assert.Contains(t, m.View(), "count: 11")
}

func TestModelDispatcherStable(t *testing.T) {
	m := newTestModel()
	before := m.Handle().Dispatch

	m.Update(runes("+"))

	assert.Same(t, before, m.Handle().Dispatch)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelInitWaitsForLoop(t *testing.T) {
	m := newTestModel()
	cmd := m.Init()
	require.NotNil(t, cmd)

	m.Loop().Post(func() error { return nil })
	assert.Equal(t, WakeMsg{}, cmd())
}
