// ABOUTME: In-memory Terminal: records output and lets tests drive resizes
// ABOUTME: SetSize delivers resize callbacks synchronously, in registration order

package terminal

import (
	"strings"
	"sync"

	"github.com/mauromedda/affix-go/internal/eventbus"
)

type size struct{ w, h int }

// VirtualTerminal is a Terminal without a TTY behind it.
type VirtualTerminal struct {
	mu     sync.Mutex
	out    strings.Builder
	cur    size
	resize *eventbus.Bus[size]
}

// NewVirtualTerminal returns a terminal of the given size.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{cur: size{width, height}, resize: eventbus.New[size]()}
}

// Size returns the current size.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur.w, v.cur.h, nil
}

// IsTerminal reports true so callers take their interactive path.
func (v *VirtualTerminal) IsTerminal() bool { return true }

// Write records p.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.Write(p)
}

// OnResize registers fn for SetSize calls.
func (v *VirtualTerminal) OnResize(fn func(width, height int)) func() {
	return v.resize.Subscribe(func(s size) { fn(s.w, s.h) })
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.String()
}

// SetSize changes the size and notifies every OnResize callback before
// returning.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	v.cur = size{width, height}
	v.mu.Unlock()
	v.resize.Publish(size{width, height})
}
