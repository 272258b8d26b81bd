package commands

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkersWaitForCancelledGoroutines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var finished atomic.Int32
	var bg workers
	for i := 0; i < 3; i++ {
		bg.Go(func() {
			<-ctx.Done()
			// Simulates a command still writing after cancellation.
			time.Sleep(20 * time.Millisecond)
			finished.Add(1)
		})
	}

	cancel()
	bg.Wait()
	if got := finished.Load(); got != 3 {
		t.Errorf("finished = %d after Wait, want 3", got)
	}
}

func TestWorkersWaitWithoutGoroutines(t *testing.T) {
	var bg workers
	done := make(chan struct{})
	go func() {
		bg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked with no goroutines")
	}
}
