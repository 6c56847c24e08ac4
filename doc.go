// Package thunkx is a reducer-driven store with thunk dispatch.
//
// A [Store] owns a [Cell] holding the current state and hands out a
// [Dispatcher] through [Store.Use]. Dispatching a plain action runs the
// reducer and commits the result; dispatching a [Thunk] calls it with the
// same dispatcher and a [GetState] accessor that always reads the latest
// committed state, including from callbacks that run long after the thunk
// returned.
//
//	store := thunkx.New[*Counter, Action](&Counter{})
//	h := store.Use(reducer)
//	h.Dispatch.Dispatch(Action{Type: "increment"})
//	n, err := thunkx.Run(h.Dispatch, func(d *thunkx.Dispatcher[*Counter, Action], get thunkx.GetState[*Counter]) (int, error) {
//	    return get().N, d.Action(Action{Type: "increment"})
//	})
//
// # Identity
//
// Use returns the same *Dispatcher for as long as it is given the same
// [Reducer] value. State changes never replace it. Passing a different
// reducer produces a new dispatcher bound to it, while the state stays as it
// was. [ReducerFunc] gives each call a fresh identity, so keep its result
// around rather than wrapping the function on every render.
//
// # Hosts
//
// The store does not schedule anything. A host supplies per-instance storage
// and re-renders when [WithNotifier] fires; see the host and tui packages.
// A store and everything dispatched through it must stay on one goroutine.
package thunkx
