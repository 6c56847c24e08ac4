package host

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedPostsChannelActions(t *testing.T) {
	loop := NewLoop()
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	ch <- "c"
	close(ch)

	var got []string
	Feed(context.Background(), loop, NewChannelSource(ch), func(a string) error {
		got = append(got, a)
		return nil
	})

	require.NoError(t, loop.Drain(testContext(t)))
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestTickerSourceFeedsUntilStopped(t *testing.T) {
	loop := NewLoop()
	src := NewTickerSource("tick", 2*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fed := make(chan struct{})
	go func() {
		defer close(fed)
		Feed(ctx, loop, src, func(string) error { return nil })
	}()

	ticks := 0
	for ticks < 3 {
		n, err := loop.Step(testContext(t))
		require.NoError(t, err)
		ticks += n
	}
	src.Stop()
	src.Stop()
	<-fed

	assert.GreaterOrEqual(t, ticks, 3)
}
