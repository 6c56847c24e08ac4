package host

import (
	"context"
	"sync"
	"time"
)

// Source produces actions from outside the loop.
type Source[A any] interface {
	Actions() <-chan A
}

// ChannelSource is a Source backed by a channel.
type ChannelSource[A any] struct {
	ch chan A
}

// NewChannelSource wraps ch. Buffer ch if senders must not block.
func NewChannelSource[A any](ch chan A) *ChannelSource[A] {
	return &ChannelSource[A]{ch: ch}
}

// Actions returns the receive side of the channel.
func (s *ChannelSource[A]) Actions() <-chan A {
	return s.ch
}

// TickerSource emits the same action at a fixed interval.
type TickerSource[A any] struct {
	ch     chan A
	action A
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTickerSource starts emitting action every d. Ticks are dropped while
// the previous one has not been consumed.
func NewTickerSource[A any](action A, d time.Duration) *TickerSource[A] {
	t := &TickerSource[A]{
		ch:     make(chan A, 1),
		action: action,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TickerSource[A]) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.action:
			default:
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Actions returns the tick channel. It is closed after Stop.
func (t *TickerSource[A]) Actions() <-chan A {
	return t.ch
}

// Stop stops the ticker and closes the channel. Safe to call more than once.
func (t *TickerSource[A]) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Feed posts every action from src onto sched until src closes or ctx is
// done. dispatch runs on the scheduler's goroutine; its errors go to the
// scheduler's error path. Feed blocks; run it in its own goroutine.
func Feed[A any](ctx context.Context, sched Scheduler, src Source[A], dispatch func(A) error) {
	ch := src.Actions()
	for {
		select {
		case a, ok := <-ch:
			if !ok {
				return
			}
			sched.Post(func() error { return dispatch(a) })
		case <-ctx.Done():
			return
		}
	}
}
