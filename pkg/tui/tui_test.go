// ABOUTME: Tests for the terminal surface: regions, panes, layers, signals, clicks
// ABOUTME: Uses in-memory components and writers for assertions

package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

type mockComponent struct {
	lines []string
	dirty bool
}

func (m *mockComponent) Render(out *RenderBuffer, width int) {
	out.WriteLines(m.lines)
}

func (m *mockComponent) Invalidate() {
	m.dirty = true
}

func TestRenderBuffer_Pool(t *testing.T) {
	t.Parallel()

	buf := AcquireBuffer()
	buf.WriteLine("line1")
	buf.WriteLines([]string{"line2", "line three"})
	buf.WriteClipped("clipped line", 4)
	if buf.Len() != 4 {
		t.Errorf("Len() = %d, want 4", buf.Len())
	}
	if cols, rows := buf.Size(); cols != 10 || rows != 4 {
		t.Errorf("Size() = (%d, %d), want (10, 4)", cols, rows)
	}
	if got := buf.Row(3); got != "clip" {
		t.Errorf("Row(3) = %q, want clip", got)
	}
	if got := buf.Row(9); got != "" {
		t.Errorf("Row(9) = %q, want empty", got)
	}
	snap := buf.Snapshot()
	ReleaseBuffer(buf)
	if snap[0] != "line1" {
		t.Errorf("snapshot changed after release: %q", snap)
	}

	buf2 := AcquireBuffer()
	if buf2.Len() != 0 {
		t.Errorf("re-acquired buffer Len() = %d, want 0", buf2.Len())
	}
	ReleaseBuffer(buf2)
}

func TestText_TruncatesToWidth(t *testing.T) {
	t.Parallel()

	txt := NewText("abcdef\nxy")
	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	txt.Render(buf, 4)
	if buf.Lines[0] != "abcd" || buf.Lines[1] != "xy" {
		t.Errorf("lines = %q", buf.Lines)
	}
}

func TestRegion_AbsoluteWithScroll(t *testing.T) {
	t.Parallel()

	ui := New(nil, 80, 24)
	lines := make([]string, 50)
	pane := ui.AddPane("doc", nil, geom.R(2, 1, 40, 10), &mockComponent{lines: lines})
	anchor := ui.NewRegion("word", pane.Region(), geom.R(5, 20, 4, 1))

	if got := anchor.Absolute(); got != geom.R(7, 21, 4, 1) {
		t.Errorf("Absolute() = %+v, want (7,21,4,1)", got)
	}
	if !ui.ScrollBy(pane.Region(), geom.V(0, 15)) {
		t.Fatal("ScrollBy reported no change")
	}
	if got := anchor.Absolute(); got != geom.R(7, 6, 4, 1) {
		t.Errorf("Absolute() after scroll = %+v, want (7,6,4,1)", got)
	}
}

func TestScroll_ClampsToContent(t *testing.T) {
	t.Parallel()

	ui := New(nil, 80, 24)
	pane := ui.AddPane("doc", nil, geom.R(0, 0, 80, 10), &mockComponent{lines: make([]string, 25)})

	var events int
	ui.OnScroll(func(ScrollEvent) { events++ })

	ui.ScrollBy(pane.Region(), geom.V(0, 100))
	if got := pane.Region().Scroll(); got != geom.V(0, 15) {
		t.Errorf("Scroll() = %+v, want (0,15)", got)
	}
	if ui.ScrollBy(pane.Region(), geom.V(0, 1)) {
		t.Error("scrolling past the end should not report a change")
	}
	ui.ScrollBy(pane.Region(), geom.V(0, -100))
	if got := pane.Region().Scroll(); got != geom.V(0, 0) {
		t.Errorf("Scroll() = %+v, want origin", got)
	}
	if events != 2 {
		t.Errorf("events = %d, want 2", events)
	}
}

func TestOnScrollWithin_FiltersAncestors(t *testing.T) {
	t.Parallel()

	ui := New(nil, 80, 24)
	left := ui.AddPane("left", nil, geom.R(0, 0, 40, 5), &mockComponent{lines: make([]string, 20)})
	right := ui.AddPane("right", nil, geom.R(40, 0, 40, 5), &mockComponent{lines: make([]string, 20)})
	anchor := ui.NewRegion("a", left.Region(), geom.R(0, 3, 3, 1))

	var hits int
	cancel := ui.OnScrollWithin(anchor, func(ScrollEvent) { hits++ })

	ui.ScrollBy(right.Region(), geom.V(0, 2))
	if hits != 0 {
		t.Errorf("unrelated pane scroll delivered, hits = %d", hits)
	}
	ui.ScrollBy(left.Region(), geom.V(0, 2))
	if hits != 1 {
		t.Errorf("ancestor scroll not delivered, hits = %d", hits)
	}
	cancel()
	ui.ScrollBy(left.Region(), geom.V(0, 2))
	if hits != 1 {
		t.Errorf("delivered after cancel, hits = %d", hits)
	}
}

func TestSetSize_PublishesResize(t *testing.T) {
	t.Parallel()

	ui := New(nil, 80, 24)
	var got []ResizeEvent
	ui.OnResize(func(ev ResizeEvent) { got = append(got, ev) })

	ui.SetSize(100, 30)
	ui.SetSize(100, 30)
	if len(got) != 1 || got[0] != (ResizeEvent{Width: 100, Height: 30}) {
		t.Errorf("resize events = %+v", got)
	}
	if ui.Viewport() != geom.V(100, 30) {
		t.Errorf("Viewport() = %+v", ui.Viewport())
	}
	if ui.Screen().Rect() != geom.R(0, 0, 100, 30) {
		t.Errorf("screen rect = %+v", ui.Screen().Rect())
	}
}

func TestGroups(t *testing.T) {
	t.Parallel()

	ui := New(nil, 20, 5)
	if err := ui.AddGroup("menus"); err != nil {
		t.Fatal(err)
	}
	if err := ui.AddGroup("menus"); !errors.Is(err, ErrDuplicateGroup) {
		t.Errorf("err = %v, want ErrDuplicateGroup", err)
	}
	if err := ui.AddGroup(""); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("err = %v, want ErrEmptyGroup", err)
	}

	top := ui.AttachLayer(LayerSpec{Group: "menus", Content: NewText("top")})
	lost := ui.AttachLayer(LayerSpec{Group: "missing", Content: NewText("lost")})
	bottom := ui.AttachLayer(LayerSpec{Content: NewText("bottom")})

	if lost.Group() != RootGroup {
		t.Errorf("unknown group kept: %q", lost.Group())
	}
	order := ui.Layers()
	if len(order) != 3 || order[0] != lost || order[1] != bottom || order[2] != top {
		t.Errorf("compositing order wrong")
	}

	top.Detach()
	top.Detach()
	if len(ui.Layers()) != 2 || top.Attached() {
		t.Errorf("Detach did not remove the layer")
	}
}

func TestFrame_CompositesLayers(t *testing.T) {
	t.Parallel()

	ui := New(nil, 10, 3)
	ui.AddPane("doc", nil, geom.R(0, 0, 10, 3), &mockComponent{lines: []string{"0123456789", "abcdefghij", "ABCDEFGHIJ"}})

	l := ui.AttachLayer(LayerSpec{Content: NewText("XY\nZ")})
	l.SetOffset(geom.V(2.4, 0.6))
	l.SetSprites([]Sprite{{At: geom.V(0, -1), Text: "^"}})

	frame := ui.Frame()
	want := []string{"01^3456789", "abXYefghij", "ABZ EFGHIJ"}
	for i := range want {
		if frame[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, frame[i], want[i])
		}
	}
	if got := l.Rect(); got != geom.R(2.4, 0.6, 2, 2) {
		t.Errorf("Rect() = %+v, keeps the unrounded offset", got)
	}

	l.SetHidden(true)
	if ui.Frame()[1] != "abcdefghij" {
		t.Error("hidden layer drawn")
	}
}

func TestFrame_ScrolledPane(t *testing.T) {
	t.Parallel()

	ui := New(nil, 6, 2)
	pane := ui.AddPane("doc", nil, geom.R(1, 0, 4, 2), &mockComponent{lines: []string{"aa", "bb", "cc"}})
	ui.ScrollBy(pane.Region(), geom.V(0, 1))

	frame := ui.Frame()
	if frame[0] != " bb   " || frame[1] != " cc   " {
		t.Errorf("frame = %q", frame)
	}
}

func TestClick_Routing(t *testing.T) {
	t.Parallel()

	ui := New(nil, 20, 10)
	var clicks []geom.Vec2
	popup := ui.AttachLayer(LayerSpec{
		Content:         NewText("popup"),
		Backdrop:        true,
		OnBackdropClick: func(p geom.Vec2) { clicks = append(clicks, p) },
	})
	popup.SetOffset(geom.V(5, 5))

	if ui.Click(geom.V(6, 5)) {
		t.Error("click on the popup must not reach the backdrop")
	}
	if !ui.Click(geom.V(0, 0)) {
		t.Error("click outside should hit the backdrop")
	}
	if len(clicks) != 1 || clicks[0] != geom.V(0, 0) {
		t.Errorf("clicks = %+v", clicks)
	}

	popup.SetHidden(true)
	if ui.Click(geom.V(0, 0)) {
		t.Error("hidden layer caught a click")
	}
}

func TestClick_LayerAboveBackdrop(t *testing.T) {
	t.Parallel()

	ui := New(nil, 20, 10)
	fired := false
	ui.AttachLayer(LayerSpec{Content: NewText("menu"), Backdrop: true, OnBackdropClick: func(geom.Vec2) { fired = true }})
	tip := ui.AttachLayer(LayerSpec{Content: NewText("tip")})
	tip.SetOffset(geom.V(10, 8))

	if ui.Click(geom.V(11, 8)) || fired {
		t.Error("click on an upper layer leaked to the backdrop below")
	}
}

func TestRenderOnce_Differential(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 8, 3)
	comp := &mockComponent{lines: []string{"first", "second"}}
	ui.AddPane("doc", nil, geom.R(0, 0, 8, 3), comp)

	if err := ui.RenderOnce(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[2J") || !strings.Contains(out.String(), "second") {
		t.Errorf("first frame = %q", out.String())
	}

	out.Reset()
	if err := ui.RenderOnce(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", out.String())
	}

	comp.lines[1] = "SECOND"
	out.Reset()
	if err := ui.RenderOnce(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "\x1b[2;1H\x1b[2KSECOND") {
		t.Errorf("changed row not rewritten: %q", got)
	}
	if strings.Contains(got, "first") {
		t.Errorf("unchanged row rewritten: %q", got)
	}
}

func TestRenderOnce_ResizeRepaints(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 8, 2)
	comp := &mockComponent{lines: []string{"x"}}
	ui.AddPane("doc", nil, geom.R(0, 0, 8, 2), comp)
	_ = ui.RenderOnce()

	ui.SetSize(10, 2)
	if !comp.dirty {
		t.Error("resize should invalidate pane content")
	}
	out.Reset()
	_ = ui.RenderOnce()
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Errorf("resize should force a full repaint, got %q", out.String())
	}
}
