package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
	"github.com/comalice/thunkx/internal/counter"
	"github.com/comalice/thunkx/internal/logging"
)

// Result summarizes a run.
type Result struct {
	Final   int
	Commits uint64
}

// Option configures Run.
type Option func(*runner)

// WithJSON writes one JSON object per commit instead of text lines.
func WithJSON() Option {
	return func(r *runner) { r.json = true }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(r *runner) { r.log = log }
}

type runner struct {
	out     io.Writer
	json    bool
	log     *logrus.Entry
	taskErr error
}

type commitLine struct {
	Seq    uint64 `json:"seq"`
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// Run executes s on a fresh loop and store, writing each commit to out.
// The calling goroutine drives the loop. A failing expect, an unexpected
// dispatch error or a failing deferred task stops the run.
func Run(ctx context.Context, s *Script, out io.Writer, opts ...Option) (*Result, error) {
	r := &runner{out: out}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logging.NewLogger("script")
	}
	log := r.log.WithField("script", s.Name)

	loop := host.NewLoop(
		host.WithLoopLogger(log),
		host.WithErrorHandler(func(err error) {
			if r.taskErr == nil {
				r.taskErr = err
			}
		}),
	)
	store := thunkx.NewLazy[*counter.State, counter.Action](s.Initial, counter.Init,
		thunkx.WithLogger(log),
		thunkx.WithPublisher(thunkx.PublisherFunc(r.print)),
	)
	d := store.Use(counter.Reducer).Dispatch

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.WithField("step", i+1).Debug(st.Describe())
		if err := r.step(ctx, loop, d, st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Describe(), err)
		}
		loop.RunPending()
		if r.taskErr != nil {
			return nil, fmt.Errorf("step %d (%s): deferred task: %w", i+1, st.Describe(), r.taskErr)
		}
	}

	if err := loop.Drain(ctx); err != nil {
		return nil, err
	}
	if r.taskErr != nil {
		return nil, fmt.Errorf("deferred task: %w", r.taskErr)
	}
	return &Result{Final: store.State().Count, Commits: store.Version()}, nil
}

func (r *runner) step(ctx context.Context, loop *host.Loop, d *counter.Dispatcher, st Step) error {
	switch {
	case st.Wait:
		return loop.Drain(ctx)
	case st.Expect != nil:
		if got := d.GetState().Count; got != *st.Expect {
			return fmt.Errorf("%w: count is %d, want %d", ErrExpectation, got, *st.Expect)
		}
		return nil
	}

	var x any
	if st.Action != nil {
		x = *st.Action
	} else {
		x = thunkFor(loop, st)
	}
	v, err := d.Dispatch(x)
	switch {
	case err != nil && st.Fails:
		fmt.Fprintf(r.out, "  rejected: %v\n", err)
		return nil
	case err != nil:
		return err
	case st.Fails:
		return errors.New("dispatch succeeded, want an error")
	}
	if v != nil && !r.json {
		fmt.Fprintf(r.out, "  => %v\n", v)
	}
	return nil
}

func thunkFor(sched host.Scheduler, st Step) counter.Thunk {
	switch st.Thunk {
	case ThunkIncrementAsync:
		return counter.IncrementAsync(sched, st.Delay)
	case ThunkIncrementIfOdd:
		return counter.IncrementIfOdd()
	case ThunkIncrementReport:
		return counter.IncrementAndReport()
	default:
		return counter.AddChecked(st.By)
	}
}

func (r *runner) print(c thunkx.Commit) error {
	line := commitLine{Seq: c.Seq}
	if a, ok := c.Action.(counter.Action); ok {
		line.Action = a.Type
	}
	if st, ok := c.State.(*counter.State); ok {
		line.Count = st.Count
	}
	if r.json {
		return json.NewEncoder(r.out).Encode(line)
	}
	_, err := fmt.Fprintf(r.out, "#%d %-9s count=%d\n", line.Seq, line.Action, line.Count)
	return err
}
