package thunkx

import "fmt"

// ReducerBuilder provides a fluent API for building a reducer that switches
// on a key extracted from each action.
type ReducerBuilder[S, A any, K comparable] struct {
	key       func(A) K
	cases     map[K]func(S, A) (S, error)
	order     []K
	otherwise func(S, A) (S, error)
	dups      []K
}

// NewReducerBuilder creates a builder that routes actions by key(action).
func NewReducerBuilder[S, A any, K comparable](key func(A) K) *ReducerBuilder[S, A, K] {
	return &ReducerBuilder[S, A, K]{
		key:   key,
		cases: make(map[K]func(S, A) (S, error)),
	}
}

// On registers fn for actions whose key is k.
func (b *ReducerBuilder[S, A, K]) On(k K, fn func(S, A) (S, error)) *ReducerBuilder[S, A, K] {
	if _, exists := b.cases[k]; exists {
		b.dups = append(b.dups, k)
		return b
	}
	b.cases[k] = fn
	b.order = append(b.order, k)
	return b
}

// Otherwise registers fn for actions no case matches. Without it such
// actions fail with ErrUnhandledAction.
func (b *ReducerBuilder[S, A, K]) Otherwise(fn func(S, A) (S, error)) *ReducerBuilder[S, A, K] {
	b.otherwise = fn
	return b
}

// Build validates the cases and returns the reducer.
// Each call returns a Reducer with its own identity.
func (b *ReducerBuilder[S, A, K]) Build() (Reducer[S, A], error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	cases := make(map[K]func(S, A) (S, error), len(b.cases))
	for k, fn := range b.cases {
		cases[k] = fn
	}
	return &switchReducer[S, A, K]{
		key:       b.key,
		cases:     cases,
		otherwise: b.otherwise,
	}, nil
}

// MustBuild is like Build but panics on error. Use it for package-level reducers.
func (b *ReducerBuilder[S, A, K]) MustBuild() Reducer[S, A] {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// Keys returns the registered keys in registration order.
func (b *ReducerBuilder[S, A, K]) Keys() []K {
	return append([]K(nil), b.order...)
}

func (b *ReducerBuilder[S, A, K]) validate() error {
	if b.key == nil {
		return fmt.Errorf("%w: nil key function", ErrNoCases)
	}
	if len(b.dups) > 0 {
		return fmt.Errorf("%w: %v", ErrDuplicateCase, b.dups[0])
	}
	if len(b.cases) == 0 && b.otherwise == nil {
		return ErrNoCases
	}
	for k, fn := range b.cases {
		if fn == nil {
			return fmt.Errorf("case %v has nil reducer", k)
		}
	}
	return nil
}

type switchReducer[S, A any, K comparable] struct {
	key       func(A) K
	cases     map[K]func(S, A) (S, error)
	otherwise func(S, A) (S, error)
}

func (r *switchReducer[S, A, K]) Reduce(state S, action A) (S, error) {
	k := r.key(action)
	if fn, ok := r.cases[k]; ok {
		return fn(state, action)
	}
	if r.otherwise != nil {
		return r.otherwise(state, action)
	}
	return state, fmt.Errorf("%w: %v", ErrUnhandledAction, k)
}
