// ABOUTME: Terminal surface: panes of scrollable content with layers composited on top
// ABOUTME: Publishes scroll/resize signals, routes clicks to backdrops, renders frames

package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mauromedda/affix-go/internal/log"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
	"github.com/mauromedda/affix-go/pkg/tui/width"
)

// RootGroup is the layer group every surface starts with.
const RootGroup = ""

var (
	// ErrDuplicateGroup is returned when a group name is already in use.
	ErrDuplicateGroup = errors.New("layer group already exists")
	// ErrEmptyGroup is returned for an empty group name.
	ErrEmptyGroup = errors.New("layer group name is empty")
)

// Writer is the minimal interface for terminal output.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// Pane is a region that draws a component's lines through its scroll window.
type Pane struct {
	region  *Region
	content Component
}

// Region returns the pane's region.
func (p *Pane) Region() *Region { return p.region }

// Content returns the component drawn in the pane.
func (p *Pane) Content() Component { return p.content }

// TUI is a cell-based surface. It is driven from a single goroutine: the
// caller's event loop mutates it and asks for frames.
type TUI struct {
	writer Writer
	width  int
	height int

	screen *Region
	panes  []*Pane
	groups []string
	layers []*Layer
	sig    signals

	previousLines []string
	rstate        renderState
}

// New creates a surface writing to w with the given dimensions. w may be nil
// when frames are only read through Frame.
func New(w Writer, termWidth, termHeight int) *TUI {
	return &TUI{
		writer: w,
		width:  termWidth,
		height: termHeight,
		screen: newRegion("screen", nil, geom.R(0, 0, float64(termWidth), float64(termHeight))),
		groups: []string{RootGroup},
		sig:    newSignals(),
		rstate: renderState{firstRender: true},
	}
}

// Size returns the screen size in cells.
func (t *TUI) Size() (width, height int) {
	return t.width, t.height
}

// Viewport returns the screen size as a vector.
func (t *TUI) Viewport() geom.Vec2 {
	return geom.V(float64(t.width), float64(t.height))
}

// Screen returns the root region covering the whole screen.
func (t *TUI) Screen() *Region { return t.screen }

// SetSize updates the screen dimensions and publishes a ResizeEvent when they
// changed.
func (t *TUI) SetSize(w, h int) {
	if w == t.width && h == t.height {
		return
	}
	t.width, t.height = w, h
	t.screen.SetRect(geom.R(0, 0, float64(w), float64(h)))
	t.previousLines = nil
	t.rstate = renderState{firstRender: true}
	for _, p := range t.panes {
		p.content.Invalidate()
		t.refreshPane(p)
	}
	t.sig.resize.Publish(ResizeEvent{Width: w, Height: h})
}

// NewRegion creates a region inside parent; a nil parent means the screen.
func (t *TUI) NewRegion(id string, parent *Region, rect geom.Rect) *Region {
	if parent == nil {
		parent = t.screen
	}
	return newRegion(id, parent, rect)
}

// AddPane creates a scrollable pane drawing content inside parent.
func (t *TUI) AddPane(id string, parent *Region, rect geom.Rect, content Component) *Pane {
	p := &Pane{region: t.NewRegion(id, parent, rect), content: content}
	t.panes = append(t.panes, p)
	t.refreshPane(p)
	return p
}

// refreshPane recomputes the scrollable extent from the rendered content.
func (t *TUI) refreshPane(p *Pane) {
	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	p.content.Render(buf, int(p.region.rect.Width))
	cols, rows := buf.Size()
	p.region.SetContentSize(geom.V(float64(cols), float64(rows)))
}

func (t *TUI) paneFor(r *Region) *Pane {
	for _, p := range t.panes {
		if p.region == r {
			return p
		}
	}
	return nil
}

// ScrollBy moves r's content by d, clamped to its scrollable extent, and
// publishes a ScrollEvent when the offset changed.
func (t *TUI) ScrollBy(r *Region, d geom.Vec2) bool {
	return t.ScrollTo(r, r.scroll.Add(d))
}

// ScrollTo sets r's content offset, clamped, and publishes a ScrollEvent when
// it changed.
func (t *TUI) ScrollTo(r *Region, v geom.Vec2) bool {
	if p := t.paneFor(r); p != nil {
		t.refreshPane(p)
	}
	if !r.scrollTo(v) {
		return false
	}
	t.sig.scroll.Publish(ScrollEvent{Region: r})
	return true
}

// AddGroup registers a named layer group stacked above existing groups.
func (t *TUI) AddGroup(id string) error {
	if id == "" {
		return ErrEmptyGroup
	}
	if t.HasGroup(id) {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, id)
	}
	t.groups = append(t.groups, id)
	return nil
}

// HasGroup reports whether a group is registered.
func (t *TUI) HasGroup(id string) bool {
	return slices.Contains(t.groups, id)
}

// AttachLayer stacks a new layer on top of its group. An unknown group falls
// back to the root group.
func (t *TUI) AttachLayer(spec LayerSpec) *Layer {
	group := spec.Group
	if !t.HasGroup(group) {
		log.Warn("tui: unknown layer group %q, using root", group)
		group = RootGroup
	}
	l := &Layer{t: t, group: group, spec: spec}
	t.layers = append(t.layers, l)
	return l
}

// Layers returns the attached layers in compositing order, bottom first.
func (t *TUI) Layers() []*Layer {
	out := make([]*Layer, 0, len(t.layers))
	for _, g := range t.groups {
		for _, l := range t.layers {
			if l.group == g {
				out = append(out, l)
			}
		}
	}
	return out
}

func (t *TUI) removeLayer(l *Layer) {
	if i := slices.Index(t.layers, l); i >= 0 {
		t.layers = slices.Delete(t.layers, i, i+1)
	}
}

// Click routes a click at cell p. Layers are hit-tested top down: a click
// on a layer's content stops there; otherwise the first layer with a backdrop
// receives it. It reports whether a backdrop handled the click.
func (t *TUI) Click(p geom.Vec2) bool {
	layers := t.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.hidden {
			continue
		}
		if l.Rect().Contains(p) {
			return false
		}
		if l.spec.Backdrop {
			if l.spec.OnBackdropClick != nil {
				l.spec.OnBackdropClick(p)
			}
			return true
		}
	}
	return false
}

// Frame composites the panes and layers into exactly height lines, none
// wider than the screen.
func (t *TUI) Frame() []string {
	w, h := t.width, t.height
	if w <= 0 || h <= 0 {
		return nil
	}
	lines := make([]string, h)

	for _, p := range t.panes {
		t.drawPane(lines, p)
	}
	for _, l := range t.Layers() {
		if !l.hidden {
			drawLayer(lines, l)
		}
	}

	for i, line := range lines {
		lines[i] = width.PadRight(line, w)
	}
	return lines
}

func (t *TUI) drawPane(lines []string, p *Pane) {
	abs := p.region.Absolute()
	pw := int(abs.Width)
	if pw <= 0 {
		return
	}
	content := AcquireBuffer()
	defer ReleaseBuffer(content)
	p.content.Render(content, pw)

	scroll := p.region.scroll.Round()
	sx, sy := int(scroll.X), int(scroll.Y)
	left, top := int(abs.Left), int(abs.Top)
	for i := 0; i < int(abs.Height); i++ {
		row := top + i
		if row < 0 || row >= len(lines) {
			continue
		}
		text := content.Row(sy + i)
		if sx > 0 {
			text = width.SliceByColumn(text, sx, sx+pw)
		}
		lines[row] = width.Splice(lines[row], width.PadRight(text, pw), left)
	}
}

func drawLayer(lines []string, l *Layer) {
	content := l.lines()
	cols, _ := width.Measure(content)
	origin := l.offset.Round()
	ox, oy := int(origin.X), int(origin.Y)
	for i, ln := range content {
		row := oy + i
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = width.Splice(lines[row], width.PadRight(ln, cols), ox)
	}
	for _, s := range l.sprites {
		at := l.offset.Add(s.At).Round()
		row := int(at.Y)
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = width.Splice(lines[row], s.Text, int(at.X))
	}
}

// RenderOnce composites a frame and writes the changed rows to the writer.
func (t *TUI) RenderOnce() error {
	if t.writer == nil {
		return nil
	}
	frame := t.Frame()
	out := diffRender(&t.rstate, t.previousLines, frame)
	t.previousLines = frame
	if out == "" {
		return nil
	}
	// CSI 2026 synchronized output
	if _, err := t.writer.Write([]byte("\x1b[?2026h" + out + "\x1b[?2026l")); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
