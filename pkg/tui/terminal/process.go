// ABOUTME: ProcessTerminal implements Terminal on an *os.File via golang.org/x/term
// ABOUTME: Platform-specific resize handling lives in process_unix.go / process_windows.go

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/mauromedda/affix-go/internal/eventbus"
)

// ProcessTerminal is a real terminal backed by an output file, normally os.Stdout.
type ProcessTerminal struct {
	out *os.File

	mu     sync.Mutex
	resize *eventbus.Bus[size]
	stop   func()
}

// NewProcessTerminal returns a ProcessTerminal writing to out; nil means os.Stdout.
func NewProcessTerminal(out *os.File) *ProcessTerminal {
	if out == nil {
		out = os.Stdout
	}
	return &ProcessTerminal{out: out, resize: eventbus.New[size]()}
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// IsTerminal reports whether the output file is a TTY.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.out.Fd()))
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// OnResize registers a callback invoked when the terminal is resized. The
// signal listener runs while at least one callback is registered.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) func() {
	t.mu.Lock()
	unsubscribe := t.resize.Subscribe(func(s size) { fn(s.w, s.h) })
	if t.stop == nil {
		t.stop = t.startResizeListener()
	}
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			unsubscribe()
			if t.resize.Count() == 0 && t.stop != nil {
				t.stop()
				t.stop = nil
			}
		})
	}
}

// notifyResize queries the size and publishes it to every callback.
func (t *ProcessTerminal) notifyResize() {
	w, h, err := t.Size()
	if err != nil {
		return
	}
	t.resize.Publish(size{w, h})
}
