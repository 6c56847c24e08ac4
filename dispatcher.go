package thunkx

import "fmt"

// GetState reads the latest committed state each time it is called.
type GetState[S any] func() S

// Thunk is dispatched in place of an action. It receives the dispatcher it
// was dispatched on and a live state accessor; its result is returned by Dispatch.
type Thunk[S, A any] func(d *Dispatcher[S, A], getState GetState[S]) (any, error)

// Reducer computes the next state for an action. It must not modify state in place.
type Reducer[S, A any] interface {
	Reduce(state S, action A) (S, error)
}

type funcReducer[S, A any] struct {
	fn func(S, A) (S, error)
}

func (r *funcReducer[S, A]) Reduce(state S, action A) (S, error) {
	return r.fn(state, action)
}

// ReducerFunc wraps fn as a Reducer. Every call returns a Reducer with its
// own identity.
func ReducerFunc[S, A any](fn func(S, A) (S, error)) Reducer[S, A] {
	return &funcReducer[S, A]{fn: fn}
}

// Dispatcher is the entry point for actions and thunks. One Dispatcher is
// bound to one reducer; its pointer identity is what callers compare.
type Dispatcher[S, A any] struct {
	store    *Store[S, A]
	reducer  Reducer[S, A]
	getState GetState[S]
}

func newDispatcher[S, A any](s *Store[S, A], r Reducer[S, A]) *Dispatcher[S, A] {
	return &Dispatcher[S, A]{
		store:    s,
		reducer:  r,
		getState: s.cell.Read,
	}
}

// Dispatch runs a thunk or applies an action.
//
// A thunk is called with d and a live GetState, and whatever it returns is
// returned unchanged. An action of type A is reduced against the current
// state and committed; a reducer error is returned and nothing is committed.
// Any other value fails with ErrInvalidAction.
func (d *Dispatcher[S, A]) Dispatch(x any) (any, error) {
	switch v := x.(type) {
	case Thunk[S, A]:
		return d.Thunk(v)
	case func(*Dispatcher[S, A], GetState[S]) (any, error):
		return d.Thunk(v)
	case A:
		return nil, d.Action(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidAction, x)
	}
}

// Action reduces a and commits the result.
func (d *Dispatcher[S, A]) Action(a A) error {
	next, err := d.reducer.Reduce(d.store.cell.Read(), a)
	if err != nil {
		d.store.log.WithError(err).WithField("action", describe(a)).Debug("reducer rejected action")
		return err
	}
	d.store.cell.Commit(next)
	d.store.committed(a, next)
	return nil
}

// Thunk calls t with d and a live state accessor.
func (d *Dispatcher[S, A]) Thunk(t Thunk[S, A]) (any, error) {
	return t(d, d.getState)
}

// GetState returns the current state.
func (d *Dispatcher[S, A]) GetState() S {
	return d.getState()
}

// Reducer returns the reducer d is bound to.
func (d *Dispatcher[S, A]) Reducer() Reducer[S, A] {
	return d.reducer
}

// Run calls fn as a thunk on d and returns its typed result.
func Run[S, A, R any](d *Dispatcher[S, A], fn func(*Dispatcher[S, A], GetState[S]) (R, error)) (R, error) {
	return fn(d, d.getState)
}

type typed interface {
	ActionType() string
}

func describe(a any) string {
	if t, ok := a.(typed); ok {
		return t.ActionType()
	}
	return fmt.Sprintf("%T", a)
}
