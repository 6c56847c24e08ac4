package host

import (
	"slices"

	"github.com/comalice/thunkx"
)

// UseThunkReducer keeps a store in the next slot of s and returns its
// handle for reducer. Commits invalidate s.
func UseThunkReducer[S, A any](s *Scope, reducer thunkx.Reducer[S, A], initial S, opts ...thunkx.Option) thunkx.Handle[S, A] {
	store := UseRef(s, func() *thunkx.Store[S, A] {
		return thunkx.New[S, A](initial, slices.Concat(opts, []thunkx.Option{thunkx.WithNotifier(s.Invalidate)})...)
	})
	return store.Use(reducer)
}

// UseThunkReducerLazy is UseThunkReducer with the initial state computed by
// init(arg) on the first render only.
func UseThunkReducerLazy[S, A, I any](s *Scope, reducer thunkx.Reducer[S, A], arg I, init func(I) S, opts ...thunkx.Option) thunkx.Handle[S, A] {
	store := UseRef(s, func() *thunkx.Store[S, A] {
		return thunkx.NewLazy[S, A](arg, init, slices.Concat(opts, []thunkx.Option{thunkx.WithNotifier(s.Invalidate)})...)
	})
	return store.Use(reducer)
}
