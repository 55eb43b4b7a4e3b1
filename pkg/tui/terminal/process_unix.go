// ABOUTME: Unix-specific SIGWINCH handling for ProcessTerminal resize events
// ABOUTME: One goroutine per active listener; stopped when the last callback is cancelled

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// startResizeListener forwards SIGWINCH to notifyResize until the returned
// stop function runs.
func (t *ProcessTerminal) startResizeListener() func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-sigCh:
				t.notifyResize()
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
