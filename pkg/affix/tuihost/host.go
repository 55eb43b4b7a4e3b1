// ABOUTME: affix.Host on the pkg/tui surface: regions are anchors, layers hold popups
// ABOUTME: Scroll subscriptions are scoped to the anchor's ancestor chain

package tuihost

import (
	"errors"
	"fmt"

	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
	"github.com/mauromedda/affix-go/pkg/tui"
)

// ErrNotPopup is returned when a container is requested for a handle that is
// not a *Popup.
var ErrNotPopup = errors.New("popup handle must be a *tuihost.Popup")

// Host adapts a *tui.TUI to affix.Host. Anchor handles are *tui.Region values
// and popup handles are *Popup values.
type Host struct {
	ui     *tui.TUI
	styles Styles
}

var _ affix.Host = (*Host)(nil)

// New creates a host drawing with styles.
func New(ui *tui.TUI, styles Styles) *Host {
	return &Host{ui: ui, styles: styles}
}

// TUI returns the underlying surface.
func (h *Host) TUI() *tui.TUI { return h.ui }

// MeasureRegion returns the screen box of a region or an attached popup.
func (h *Host) MeasureRegion(handle affix.Handle) (geom.Rect, bool) {
	switch v := handle.(type) {
	case *tui.Region:
		if v == nil {
			return geom.Rect{}, false
		}
		return v.Absolute(), true
	case *Popup:
		if v == nil || v.layer == nil {
			return geom.Rect{}, false
		}
		return v.layer.Rect(), true
	default:
		return geom.Rect{}, false
	}
}

// ViewportSize returns the screen size in cells.
func (h *Host) ViewportSize() geom.Vec2 {
	return h.ui.Viewport()
}

// OnAncestorScroll subscribes fn to scrolls that move the region handle. Any
// other handle is notified of every scroll.
func (h *Host) OnAncestorScroll(handle affix.Handle, fn func()) func() {
	if r, ok := handle.(*tui.Region); ok && r != nil {
		return h.ui.OnScrollWithin(r, func(tui.ScrollEvent) { fn() })
	}
	return h.ui.OnScroll(func(tui.ScrollEvent) { fn() })
}

// OnViewportResize subscribes fn to screen size changes.
func (h *Host) OnViewportResize(fn func()) func() {
	return h.ui.OnResize(func(tui.ResizeEvent) { fn() })
}

// AttachContainer stacks a layer for the popup in the requested group.
func (h *Host) AttachContainer(spec affix.ContainerSpec) (affix.HostContainer, error) {
	p, ok := spec.Popup.(*Popup)
	if !ok || p == nil {
		return nil, fmt.Errorf("%w, got %T", ErrNotPopup, spec.Popup)
	}
	if p.layer != nil {
		return nil, fmt.Errorf("popup %q is already attached", p.title)
	}
	p.styles = h.styles
	p.opts = spec.Options
	p.pos = affix.NewPositioning(spec.Options.DefaultEdge)
	layer := h.ui.AttachLayer(tui.LayerSpec{
		Group:           spec.ParentID,
		Content:         p,
		Backdrop:        spec.Backdrop,
		OnBackdropClick: spec.OnBackdropClick,
	})
	p.layer = layer
	return &container{popup: p, layer: layer}, nil
}

// container is the HostContainer for one popup layer.
type container struct {
	popup *Popup
	layer *tui.Layer
}

// Apply moves the layer to the translation and redraws the bridge.
func (c *container) Apply(pos affix.Positioning) {
	c.popup.pos = pos
	c.layer.SetOffset(pos.Translation)
	c.layer.SetSprites(c.popup.sprites())
}

// Restyle picks up cosmetic option changes.
func (c *container) Restyle(o affix.Options) {
	c.popup.opts = o
	c.layer.SetSprites(c.popup.sprites())
}

// Detach removes the layer and releases the popup for a later mount.
func (c *container) Detach() {
	c.layer.Detach()
	if c.popup.layer == c.layer {
		c.popup.layer = nil
	}
}
