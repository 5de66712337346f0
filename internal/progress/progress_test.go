package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartStop(t *testing.T) {
	stop := Start(context.Background(), "load graph", 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)

	finished := make(chan struct{})
	go func() {
		stop()
		stop() // idempotent
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
}

func TestStartHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := Start(ctx, "load graph", 10*time.Millisecond)
	cancel()

	finished := make(chan struct{})
	go func() {
		stop()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("ticker goroutine did not exit after context cancel")
	}
	assert.Error(t, ctx.Err())
}
