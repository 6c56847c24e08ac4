// Package benchmarks provides loop throughput and latency benchmarks.
package benchmarks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
)

func BenchmarkLoopPostThroughput(b *testing.B) {
	loop := host.NewLoop()
	store := thunkx.New[int, Op](0)
	d := store.Use(GenWideReducer(1)).Dispatch

	numWorkers := 8
	perWorker := b.N / numWorkers
	if perWorker == 0 {
		perWorker = 1
	}
	total := perWorker * numWorkers

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	b.ReportAllocs()
	b.ResetTimer()
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				loop.Post(func() error { return d.Action(Op{}) })
			}
		}()
	}
	for int(loop.Ran()) < total {
		if _, err := loop.Step(ctx); err != nil {
			b.Fatalf("processed %d of %d: %v", loop.Ran(), total, err)
		}
	}
	wg.Wait()
	b.StopTimer()

	b.ReportMetric(float64(total)/b.Elapsed().Seconds(), "tasks/sec")
}

func BenchmarkLoopAfterLatency(b *testing.B) {
	loop := host.NewLoop()
	ctx := context.Background()
	var total time.Duration
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		start := time.Now()
		var fired time.Time
		loop.After(0, func() error {
			fired = time.Now()
			return nil
		})
		if err := loop.Drain(ctx); err != nil {
			b.Fatal(err)
		}
		total += fired.Sub(start)
	}
	b.StopTimer()
	b.ReportMetric(float64(total.Nanoseconds())/float64(b.N), "ns/latency")
}
