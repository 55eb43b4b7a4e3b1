// ABOUTME: Interfaces the engine consumes from the host rendering layer
// ABOUTME: Measurement, viewport size, scroll/resize signals and off-tree containers

package affix

import "github.com/mauromedda/affix-go/pkg/affix/geom"

// Handle identifies an anchor or popup element. It is opaque to the engine and
// only interpreted by the Host.
type Handle any

// ContainerSpec describes the off-tree host container an overlay renders into.
type ContainerSpec struct {
	// ParentID is the container to attach under; the host falls back to its
	// root when empty or unknown.
	ParentID string
	// Popup is the element placed inside the container.
	Popup Handle
	// Backdrop requests a full-viewport layer behind the popup that reports
	// clicks through OnBackdropClick.
	Backdrop        bool
	OnBackdropClick func(p geom.Vec2)
	// Options are passed through for cosmetic hooks (prefab, bridge styles).
	Options Options
}

// HostContainer is an attached off-tree container.
type HostContainer interface {
	// Apply places the popup according to p.
	Apply(p Positioning)
	// Detach removes the container from its parent. It must be idempotent.
	Detach()
}

// Restyler is implemented by containers that can pick up cosmetic option
// changes (prefab, bridge styles, render hook) without re-attaching.
type Restyler interface {
	Restyle(o Options)
}

// Host is the rendering layer an overlay is mounted on.
type Host interface {
	// MeasureRegion returns the viewport-relative box of h, or false when h is
	// not rendered yet.
	MeasureRegion(h Handle) (geom.Rect, bool)
	// ViewportSize returns the current viewport extent.
	ViewportSize() geom.Vec2
	// OnAncestorScroll calls fn whenever any ancestor of h scrolls.
	OnAncestorScroll(h Handle, fn func()) (cancel func())
	// OnViewportResize calls fn whenever the viewport changes size.
	OnViewportResize(fn func()) (cancel func())
	// AttachContainer creates and attaches an off-tree container.
	AttachContainer(spec ContainerSpec) (HostContainer, error)
}
