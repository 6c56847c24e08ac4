package thunkx

import (
	"errors"
	"time"
)

// Commit describes one state commit.
type Commit struct {
	StoreID string
	Seq     uint64
	Action  any
	State   any
	At      time.Time
}

// Publisher observes commits. Publish runs synchronously inside Dispatch,
// after the new state is visible; its error is logged, not returned.
type Publisher interface {
	Publish(c Commit) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(c Commit) error

// Publish calls f(c).
func (f PublisherFunc) Publish(c Commit) error {
	return f(c)
}

// ErrPublisherClosed is returned by ChannelPublisher after Close.
var ErrPublisherClosed = errors.New("thunkx: publisher closed")

// ChannelPublisher forwards commits to a channel without blocking.
// Commits are dropped when the channel is full.
type ChannelPublisher struct {
	ch      chan<- Commit
	closed  bool
	dropped uint64
}

// NewChannelPublisher returns a ChannelPublisher sending to ch.
func NewChannelPublisher(ch chan<- Commit) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish sends c if there is room.
func (p *ChannelPublisher) Publish(c Commit) error {
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.ch <- c:
	default:
		p.dropped++
	}
	return nil
}

// Dropped returns how many commits were dropped on backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped
}

// Close closes the channel. Later publishes fail with ErrPublisherClosed.
func (p *ChannelPublisher) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.ch)
	return nil
}
