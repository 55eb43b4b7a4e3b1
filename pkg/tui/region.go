// ABOUTME: Regions: named rectangles in a parent chain with per-region scroll offsets
// ABOUTME: Absolute boxes account for every ancestor's position and scroll

package tui

import "github.com/mauromedda/affix-go/pkg/affix/geom"

// Region is a rectangle positioned in its parent's content coordinates. A
// region with scrollable content shifts its children by its scroll offset.
// Regions are owned by one TUI and are not safe for concurrent mutation.
type Region struct {
	id     string
	parent *Region
	rect   geom.Rect

	scroll  geom.Vec2
	content geom.Vec2 // scrollable content extent; zero means not scrollable
}

func newRegion(id string, parent *Region, rect geom.Rect) *Region {
	return &Region{id: id, parent: parent, rect: rect}
}

// ID returns the region's name.
func (r *Region) ID() string { return r.id }

// Parent returns the enclosing region, nil for the screen.
func (r *Region) Parent() *Region { return r.parent }

// Rect returns the box relative to the parent's content origin.
func (r *Region) Rect() geom.Rect { return r.rect }

// SetRect moves or resizes the region within its parent.
func (r *Region) SetRect(rect geom.Rect) { r.rect = rect }

// Scroll returns the current content offset.
func (r *Region) Scroll() geom.Vec2 { return r.scroll }

// SetContentSize sets the extent of scrollable content. A region scrolls only
// along axes where the content exceeds its size.
func (r *Region) SetContentSize(size geom.Vec2) {
	r.content = size
	r.scrollTo(r.scroll)
}

// Absolute returns the box in screen coordinates.
func (r *Region) Absolute() geom.Rect {
	if r.parent == nil {
		return r.rect
	}
	return r.rect.Translate(r.parent.contentOrigin())
}

// contentOrigin is where the region's children start on screen.
func (r *Region) contentOrigin() geom.Vec2 {
	return r.Absolute().Min().Sub(r.scroll)
}

// IsAncestorOf reports whether r encloses other. A region is its own ancestor.
func (r *Region) IsAncestorOf(other *Region) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == r {
			return true
		}
	}
	return false
}

// maxScroll is the largest offset on each axis.
func (r *Region) maxScroll() geom.Vec2 {
	return geom.V(
		geom.MaxOf(0, r.content.X-r.rect.Width),
		geom.MaxOf(0, r.content.Y-r.rect.Height),
	)
}

// scrollTo clamps v into range and reports whether the offset changed.
func (r *Region) scrollTo(v geom.Vec2) bool {
	m := r.maxScroll()
	next := geom.V(geom.Clamp(v.X, 0, m.X), geom.Clamp(v.Y, 0, m.Y))
	if next == r.scroll {
		return false
	}
	r.scroll = next
	return true
}
