package thunkx

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/comalice/thunkx/internal/logging"
	"github.com/comalice/thunkx/internal/memo"
)

// Handle is what a store hands to its caller on each access.
type Handle[S, A any] struct {
	State    S
	Dispatch *Dispatcher[S, A]
}

// Store is one store instance: a state cell plus the dispatcher for the
// reducer it was last used with. Create it once per owning scope and call
// Use on every render.
type Store[S, A any] struct {
	id          string
	cell        *Cell[S]
	dispatchers memo.Memo[Reducer[S, A], *Dispatcher[S, A]]
	log         *logrus.Entry
	publisher   Publisher
}

// New creates a store holding initial.
func New[S, A any](initial S, opts ...Option) *Store[S, A] {
	o := buildOptions(opts)
	return newStore[S, A](NewCell(initial, o.notify), o)
}

// NewLazy creates a store holding init(arg). init runs once, during NewLazy.
func NewLazy[S, A, I any](arg I, init func(I) S, opts ...Option) *Store[S, A] {
	o := buildOptions(opts)
	return newStore[S, A](NewLazyCell(arg, init, o.notify), o)
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = logging.NewLogger("thunkx")
	}
	return o
}

func newStore[S, A any](cell *Cell[S], o options) *Store[S, A] {
	s := &Store[S, A]{
		id:        o.id,
		cell:      cell,
		log:       o.logger.WithField("store_id", o.id),
		publisher: o.publisher,
	}
	s.log.Debug("store created")
	return s
}

// Use returns the current state and the dispatcher bound to reducer.
// The dispatcher is rebuilt only when reducer is not the same value as on
// the previous call.
func (s *Store[S, A]) Use(reducer Reducer[S, A]) Handle[S, A] {
	d := s.dispatchers.Get(reducer, func(r Reducer[S, A]) *Dispatcher[S, A] {
		if s.dispatchers.Computes() > 0 {
			s.log.Debug("reducer changed, rebuilding dispatcher")
		}
		return newDispatcher(s, r)
	})
	return Handle[S, A]{State: s.cell.Read(), Dispatch: d}
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	return s.cell.Read()
}

// ID returns the store ID.
func (s *Store[S, A]) ID() string {
	return s.id
}

// Version returns the number of commits so far.
func (s *Store[S, A]) Version() uint64 {
	return s.cell.Version()
}

func (s *Store[S, A]) committed(action A, next S) {
	seq := s.cell.Version()
	s.log.WithFields(logrus.Fields{
		"seq":    seq,
		"action": describe(action),
	}).Debug("committed")

	if s.publisher == nil {
		return
	}
	c := Commit{
		StoreID: s.id,
		Seq:     seq,
		Action:  action,
		State:   next,
		At:      time.Now(),
	}
	if err := s.publisher.Publish(c); err != nil {
		s.log.WithError(err).WithField("seq", seq).Warn("publish failed")
	}
}
