// ABOUTME: Scroll and resize signals published by the surface
// ABOUTME: Delivered synchronously in subscription order over internal/eventbus

package tui

import "github.com/mauromedda/affix-go/internal/eventbus"

// ScrollEvent reports that a region's content offset changed.
type ScrollEvent struct {
	Region *Region
}

// ResizeEvent reports a new screen size in cells.
type ResizeEvent struct {
	Width, Height int
}

type signals struct {
	scroll *eventbus.Bus[ScrollEvent]
	resize *eventbus.Bus[ResizeEvent]
}

func newSignals() signals {
	return signals{
		scroll: eventbus.New[ScrollEvent](),
		resize: eventbus.New[ResizeEvent](),
	}
}

// OnScroll subscribes to every scroll on the surface.
func (t *TUI) OnScroll(fn func(ScrollEvent)) func() {
	return t.sig.scroll.Subscribe(fn)
}

// OnScrollWithin subscribes to scrolls of r or any of its ancestors, the
// ones that move r on screen.
func (t *TUI) OnScrollWithin(r *Region, fn func(ScrollEvent)) func() {
	return t.sig.scroll.Subscribe(func(ev ScrollEvent) {
		if ev.Region.IsAncestorOf(r) {
			fn(ev)
		}
	})
}

// OnResize subscribes to screen size changes.
func (t *TUI) OnResize(fn func(ResizeEvent)) func() {
	return t.sig.resize.Subscribe(fn)
}

// Subscribers returns the number of scroll and resize subscriptions.
func (t *TUI) Subscribers() (scroll, resize int) {
	return t.sig.scroll.Count(), t.sig.resize.Count()
}
