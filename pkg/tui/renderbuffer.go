// ABOUTME: Line buffer components render into; recycled through a sync.Pool
// ABOUTME: Panes, layers and measurements each borrow one per render pass

package tui

import (
	"sync"

	"github.com/mauromedda/affix-go/pkg/tui/width"
)

var buffers = sync.Pool{
	New: func() any { return &RenderBuffer{Lines: make([]string, 0, 32)} },
}

// AcquireBuffer returns an empty buffer from the pool.
func AcquireBuffer() *RenderBuffer {
	b := buffers.Get().(*RenderBuffer)
	b.Lines = b.Lines[:0]
	return b
}

// ReleaseBuffer hands b back to the pool. b must not be used afterwards.
func ReleaseBuffer(b *RenderBuffer) {
	if b == nil {
		return
	}
	clear(b.Lines)
	b.Lines = b.Lines[:0]
	buffers.Put(b)
}

// RenderBuffer collects the rendered lines of a component.
type RenderBuffer struct {
	Lines []string
}

// WriteLine appends one line.
func (b *RenderBuffer) WriteLine(line string) {
	b.Lines = append(b.Lines, line)
}

// WriteLines appends lines.
func (b *RenderBuffer) WriteLines(lines []string) {
	b.Lines = append(b.Lines, lines...)
}

// WriteClipped appends line cut to at most w cells.
func (b *RenderBuffer) WriteClipped(line string, w int) {
	if width.VisibleWidth(line) > w {
		line = width.SliceByColumn(line, 0, w)
	}
	b.Lines = append(b.Lines, line)
}

// Len returns the number of lines.
func (b *RenderBuffer) Len() int { return len(b.Lines) }

// Row returns line i, or "" past either end.
func (b *RenderBuffer) Row(i int) string {
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

// Size returns the widest line and the line count in cells.
func (b *RenderBuffer) Size() (cols, rows int) {
	return width.Measure(b.Lines)
}

// Snapshot copies the lines so the buffer can be released.
func (b *RenderBuffer) Snapshot() []string {
	return append([]string(nil), b.Lines...)
}
