package concurrency

import (
	"context"
	"sync"
	"time"
)

type TaskFn func(ctx context.Context)

// Every runs fn once per interval in its own goroutine until ctx is done.
// The returned wait func blocks until the loop has exited.
func Every(ctx context.Context, interval time.Duration, fn TaskFn) (wait func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
	return wg.Wait
}
