package host

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comalice/thunkx/internal/logging"
)

// Task is a unit of work run on the loop goroutine. A returned error goes to
// the loop's error handler.
type Task func() error

// Timer is a pending After task.
type Timer interface {
	// Stop cancels the task. It reports false if the task already fired or was stopped.
	Stop() bool
}

// Scheduler queues work for a single-goroutine host.
type Scheduler interface {
	Post(task func() error)
	After(d time.Duration, task func() error) Timer
}

// ErrorHandler receives errors returned by tasks.
type ErrorHandler func(err error)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithErrorHandler sets the handler for task errors. The default logs them.
func WithErrorHandler(h ErrorHandler) LoopOption {
	return func(l *Loop) {
		l.onError = h
	}
}

// WithLoopLogger sets the loop logger.
func WithLoopLogger(log *logrus.Entry) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}

// Loop is a FIFO task queue with timers, run by whichever goroutine drives it.
type Loop struct {
	mu     sync.Mutex
	queue  []func() error
	timers int
	wake   chan struct{}

	ran     uint64
	onError ErrorHandler
	log     *logrus.Entry
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates an idle loop.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logging.NewLogger("host")
	}
	if l.onError == nil {
		l.onError = func(err error) {
			l.log.WithError(err).Error("task failed")
		}
	}
	return l
}

// Post queues task to run after the tasks already queued. Safe from any goroutine.
func (l *Loop) Post(task func() error) {
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.mu.Unlock()
	l.signal()
}

// After queues task once d has elapsed. Safe from any goroutine.
func (l *Loop) After(d time.Duration, task func() error) Timer {
	t := &loopTimer{loop: l}
	l.mu.Lock()
	l.timers++
	l.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		l.timers--
		l.queue = append(l.queue, task)
		l.mu.Unlock()
		l.signal()
	})
	return t
}

type loopTimer struct {
	loop  *Loop
	timer *time.Timer
}

func (t *loopTimer) Stop() bool {
	if !t.timer.Stop() {
		return false
	}
	t.loop.mu.Lock()
	t.loop.timers--
	t.loop.mu.Unlock()
	t.loop.signal()
	return true
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Ready is signalled when work may have been queued. Hosts that cannot block
// in Run wait on it and then call RunPending on their own goroutine.
func (l *Loop) Ready() <-chan struct{} {
	return l.wake
}

// Pending returns the number of queued tasks plus armed timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) + l.timers
}

// Ran returns the number of tasks run so far.
func (l *Loop) Ran() uint64 {
	return l.ran
}

// RunPending runs queued tasks until the queue is empty, including tasks
// queued by the tasks it runs. It does not wait for timers.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.ran++
		n++
		if err := task(); err != nil {
			l.onError(err)
		}
	}
}

// Step runs queued tasks, or waits for work and then runs it.
func (l *Loop) Step(ctx context.Context) (int, error) {
	if n := l.RunPending(); n > 0 {
		return n, nil
	}
	select {
	case <-l.wake:
		return l.RunPending(), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Drain runs tasks until nothing is queued and no timer is armed.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		l.RunPending()
		if l.Pending() == 0 {
			return nil
		}
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run runs tasks as they arrive until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
