// ABOUTME: Core TUI interfaces: Component and the static Text block
// ABOUTME: Components render into a pooled RenderBuffer and must not exceed the given width

package tui

import (
	"sync"

	"github.com/mauromedda/affix-go/pkg/tui/width"
)

// Component is the base interface for all TUI elements.
type Component interface {
	// Render writes the component's visual lines into out.
	// Lines must not exceed width visible columns.
	Render(out *RenderBuffer, width int)

	// Invalidate clears any cached render state, forcing a full re-render
	// on the next Render call.
	Invalidate()
}

// Text is a component holding a pre-rendered block, such as lipgloss output.
type Text struct {
	mu    sync.RWMutex
	lines []string
}

// NewText creates a Text from a newline-separated block.
func NewText(block string) *Text {
	return &Text{lines: width.Lines(block)}
}

// SetText replaces the block.
func (t *Text) SetText(block string) {
	lines := width.Lines(block)
	t.mu.Lock()
	t.lines = lines
	t.mu.Unlock()
}

// Render truncates each line to w columns.
func (t *Text) Render(out *RenderBuffer, w int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, l := range t.lines {
		out.WriteClipped(l, w)
	}
}

// Invalidate is a no-op; Text has no cache.
func (t *Text) Invalidate() {}
