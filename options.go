package thunkx

import "github.com/sirupsen/logrus"

type options struct {
	id        string
	notify    func()
	logger    *logrus.Entry
	publisher Publisher
}

// Option configures a Store.
type Option func(*options)

// WithNotifier sets the function called after every commit. Hosts use it to
// schedule a re-render.
func WithNotifier(fn func()) Option {
	return func(o *options) {
		o.notify = fn
	}
}

// WithLogger sets the logger. The store adds a store_id field to it.
func WithLogger(l *logrus.Entry) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPublisher sets a Publisher that observes every commit.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithID sets the store ID instead of a generated one.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
