// Package host is a small single-goroutine host for thunkx stores.
//
// A [Loop] is the event loop: tasks and timers may be queued from any
// goroutine, but they only run on the goroutine that drives the loop with
// RunPending, Step, Drain or Run. Deferred thunk work goes through a
// [Scheduler] so it lands back on that goroutine.
//
// A [Renderer] plays the part of a component runtime. It calls a render
// function with a [Scope] whose slots persist across renders, and re-renders
// on the loop whenever the scope is invalidated. [UseThunkReducer] is the
// adapter that keeps a store in a slot and wires its commits to Invalidate.
package host
