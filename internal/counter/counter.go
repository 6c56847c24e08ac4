// Package counter is the reference domain used by the thunkx command and tests:
// an integer count, the actions that change it and a few thunks.
package counter

import (
	"fmt"
	"time"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
)

// Action types.
const (
	Increment = "increment"
	Decrement = "decrement"
	Add       = "add"
	Reset     = "reset"
)

// State is the counter state. Reducers return a new *State for every change.
type State struct {
	Count int `yaml:"count" json:"count"`
}

// Action changes the count. By is used by Add and Reset.
type Action struct {
	Type string `yaml:"type" mapstructure:"type" json:"type"`
	By   int    `yaml:"by,omitempty" mapstructure:"by" json:"by,omitempty"`
}

// ActionType returns a.Type.
func (a Action) ActionType() string {
	return a.Type
}

// Dispatcher is the dispatcher type for counter stores.
type Dispatcher = thunkx.Dispatcher[*State, Action]

// Thunk is the thunk type for counter stores.
type Thunk = thunkx.Thunk[*State, Action]

// Init is the lazy initializer: it builds the state from a starting count.
func Init(n int) *State {
	return &State{Count: n}
}

// Reducer is the counter reducer. It is built once so its identity is stable.
var Reducer = thunkx.NewReducerBuilder[*State](func(a Action) string { return a.Type }).
	On(Increment, func(s *State, _ Action) (*State, error) {
		return &State{Count: s.Count + 1}, nil
	}).
	On(Decrement, func(s *State, _ Action) (*State, error) {
		return &State{Count: s.Count - 1}, nil
	}).
	On(Add, func(s *State, a Action) (*State, error) {
		return &State{Count: s.Count + a.By}, nil
	}).
	On(Reset, func(_ *State, a Action) (*State, error) {
		return &State{Count: a.By}, nil
	}).
	MustBuild()

// IncrementAction returns an increment action.
func IncrementAction() Action { return Action{Type: Increment} }

// DecrementAction returns a decrement action.
func DecrementAction() Action { return Action{Type: Decrement} }

// AddAction returns an action adding n.
func AddAction(n int) Action { return Action{Type: Add, By: n} }

// ResetAction returns an action setting the count to n.
func ResetAction(n int) Action { return Action{Type: Reset, By: n} }

// IncrementIfOdd increments only when the count is odd. It returns whether it did.
func IncrementIfOdd() Thunk {
	return func(d *Dispatcher, getState thunkx.GetState[*State]) (any, error) {
		if getState().Count%2 == 0 {
			return false, nil
		}
		return true, d.Action(IncrementAction())
	}
}

// IncrementAsync increments after delay, on sched. The dispatch happens in a
// later task, so the thunk itself returns nil immediately.
func IncrementAsync(sched host.Scheduler, delay time.Duration) Thunk {
	return func(d *Dispatcher, _ thunkx.GetState[*State]) (any, error) {
		sched.After(delay, func() error {
			return d.Action(IncrementAction())
		})
		return nil, nil
	}
}

// IncrementAndReport increments and returns the new count.
func IncrementAndReport() Thunk {
	return func(d *Dispatcher, getState thunkx.GetState[*State]) (any, error) {
		if err := d.Action(IncrementAction()); err != nil {
			return nil, err
		}
		return getState().Count, nil
	}
}

// AddChecked adds n through a nested thunk chain and fails if the count
// would go below zero.
func AddChecked(n int) Thunk {
	return func(d *Dispatcher, getState thunkx.GetState[*State]) (any, error) {
		if next := getState().Count + n; next < 0 {
			return nil, fmt.Errorf("count would become %d", next)
		}
		return d.Dispatch(Thunk(func(d *Dispatcher, _ thunkx.GetState[*State]) (any, error) {
			return nil, d.Action(AddAction(n))
		}))
	}
}
