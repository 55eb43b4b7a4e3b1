// ABOUTME: Layers: off-tree containers composited above the panes
// ABOUTME: Each layer holds one component at a float offset, optional sprites and a backdrop

package tui

import (
	"github.com/mauromedda/affix-go/pkg/affix/geom"
	"github.com/mauromedda/affix-go/pkg/tui/width"
)

// Sprite is a short styled string drawn at a cell relative to the layer origin.
type Sprite struct {
	At   geom.Vec2
	Text string
}

// LayerSpec describes a layer to attach.
type LayerSpec struct {
	// Group names the container the layer is stacked in; empty or unknown
	// names use the root group.
	Group   string
	Content Component
	// Backdrop makes the layer catch every click on the screen that does not
	// land on a layer above it. OnBackdropClick receives the cell clicked.
	Backdrop        bool
	OnBackdropClick func(p geom.Vec2)
}

// Layer is an attached off-tree container.
type Layer struct {
	t     *TUI
	group string
	spec  LayerSpec

	offset  geom.Vec2
	sprites []Sprite
	hidden  bool
	removed bool
}

// Group returns the group the layer was stacked in after fallback.
func (l *Layer) Group() string { return l.group }

// Offset returns the layer's translation from the screen origin.
func (l *Layer) Offset() geom.Vec2 { return l.offset }

// SetOffset moves the layer. Fractional offsets are kept and rounded only
// when compositing, so measurements stay exact.
func (l *Layer) SetOffset(v geom.Vec2) {
	l.offset = v
}

// SetSprites replaces the sprites drawn with the layer.
func (l *Layer) SetSprites(s []Sprite) {
	l.sprites = append(l.sprites[:0], s...)
}

// Sprites returns a copy of the current sprites.
func (l *Layer) Sprites() []Sprite {
	return append([]Sprite(nil), l.sprites...)
}

// SetHidden hides the layer without detaching it. A hidden layer is not
// drawn and ignores clicks.
func (l *Layer) SetHidden(h bool) { l.hidden = h }

// Attached reports whether the layer is still on the surface.
func (l *Layer) Attached() bool { return !l.removed }

// Size renders the content at the surface width and returns its extent.
func (l *Layer) Size() geom.Vec2 {
	lines := l.lines()
	cols, rows := width.Measure(lines)
	return geom.V(float64(cols), float64(rows))
}

// Rect returns the layer's box in screen coordinates.
func (l *Layer) Rect() geom.Rect {
	return geom.RectAt(l.offset, l.Size())
}

// Detach removes the layer. It is safe to call more than once.
func (l *Layer) Detach() {
	if l.removed {
		return
	}
	l.removed = true
	l.t.removeLayer(l)
}

func (l *Layer) lines() []string {
	if l.spec.Content == nil {
		return nil
	}
	w, _ := l.t.Size()
	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	l.spec.Content.Render(buf, w)
	return buf.Snapshot()
}
