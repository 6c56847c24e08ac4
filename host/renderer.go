package host

import (
	"context"
	"errors"
)

// ErrIdle is returned by WaitForNextUpdate when the loop has nothing queued
// or armed that could still cause an update.
var ErrIdle = errors.New("host: loop is idle, no update pending")

// Scope is the per-instance storage a render function sees. Slots are
// positional: the n-th UseRef call in a render always gets the n-th slot,
// so render functions must call UseRef in the same order every time.
type Scope struct {
	slots      []any
	cursor     int
	invalidate func()
}

// Invalidate schedules a re-render of the owning Renderer.
func (s *Scope) Invalidate() {
	if s.invalidate != nil {
		s.invalidate()
	}
}

// UseRef returns the value in the next slot, creating it with init on the
// first render. init never runs again for that slot.
func UseRef[T any](s *Scope, init func() T) T {
	i := s.cursor
	s.cursor++
	if i < len(s.slots) {
		return s.slots[i].(T)
	}
	v := init()
	s.slots = append(s.slots, v)
	return v
}

// Renderer repeatedly renders one component instance on a Loop.
type Renderer[P, R any] struct {
	loop      *Loop
	render    func(*Scope, P) R
	scope     *Scope
	props     P
	result    R
	renders   int
	scheduled bool
}

// Render creates a Renderer and renders it once, synchronously.
func Render[P, R any](loop *Loop, props P, render func(*Scope, P) R) *Renderer[P, R] {
	r := &Renderer[P, R]{
		loop:   loop,
		render: render,
		props:  props,
	}
	r.scope = &Scope{invalidate: r.invalidate}
	r.rerender()
	return r
}

func (r *Renderer[P, R]) invalidate() {
	if r.scheduled {
		return
	}
	r.scheduled = true
	r.loop.Post(func() error {
		r.scheduled = false
		r.rerender()
		return nil
	})
}

func (r *Renderer[P, R]) rerender() {
	r.scope.cursor = 0
	r.result = r.render(r.scope, r.props)
	r.renders++
}

// Result returns the result of the latest render.
func (r *Renderer[P, R]) Result() R {
	return r.result
}

// Renders returns how many times the component has rendered.
func (r *Renderer[P, R]) Renders() int {
	return r.renders
}

// Rerender renders again with new props, synchronously.
func (r *Renderer[P, R]) Rerender(props P) {
	r.props = props
	r.rerender()
}

// Act runs fn and then flushes the re-renders it caused.
func (r *Renderer[P, R]) Act(fn func()) {
	fn()
	r.loop.RunPending()
}

// WaitForNextUpdate drives the loop until the component re-renders.
func (r *Renderer[P, R]) WaitForNextUpdate(ctx context.Context) error {
	start := r.renders
	for r.renders == start {
		if r.loop.Pending() == 0 {
			return ErrIdle
		}
		if _, err := r.loop.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}
