package commands

import "sync"

// workers tracks goroutines that use shared components, so those components
// are closed only after every goroutine has returned.
type workers struct {
	wg sync.WaitGroup
}

// Go runs fn in a new goroutine.
func (w *workers) Go(fn func()) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn()
	}()
}

// Wait blocks until every fn started with Go has returned.
func (w *workers) Wait() {
	w.wg.Wait()
}
