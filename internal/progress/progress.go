// Package progress provides a cancellable elapsed-time ticker for
// long-running steps such as loading a graph session.
package progress

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Start launches a goroutine that logs elapsed time for label every
// interval until the returned stop function is called or ctx is
// cancelled. stop blocks until the goroutine has exited and is safe to
// call more than once.
func Start(ctx context.Context, label string, interval time.Duration) (stop func()) {
	tickCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	start := time.Now()

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-tickCtx.Done():
				return
			case <-t.C:
				log.Info().
					Str("step", label).
					Dur("elapsed", time.Since(start).Round(time.Second)).
					Msg("still running")
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
