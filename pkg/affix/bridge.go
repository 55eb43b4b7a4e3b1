// ABOUTME: Bridge (arrow connector) geometry between anchor and popup per scheme
// ABOUTME: Offset follows the anchor center, clamped so the arrow stays on the popup edge

package affix

import (
	"fmt"

	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

// SVG paths of the arrow drawn at DefaultBridgeSize, pointing down from the origin.
const (
	ArrowPath        = "M -20.5,-11 0,9.5 20.5,-11 Z"
	ArrowOutlinePath = "M -19.5,-10 -20,-10 0,10 20,-10 19.5,-10 0,9.5 Z"
)

// Side names the popup side a bridge hangs from.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Bridge is the computed connector for one Positioning.
type Bridge struct {
	Scheme Edge
	Side   Side
	// Local is the connector box relative to the popup's top-left corner.
	Local geom.Rect
	// Offset is the distance along the popup edge from its min corner.
	Offset float64
	// Rotation is the arrow rotation in degrees.
	Rotation float64
	// Transform is the SVG transform for ArrowPath inside Local.
	Transform string
	// Breadth and Elevation are the arrow base width and height.
	Breadth, Elevation float64
}

// Rect returns the connector box in viewport coordinates.
func (b Bridge) Rect(popup geom.Rect) geom.Rect {
	return b.Local.Translate(popup.Min())
}

// BridgeFor computes the connector for p. It reports false until p is measured
// or when the scheme is unknown.
func BridgeFor(p Positioning, size float64) (Bridge, bool) {
	if !p.Measured || !p.Scheme.Valid() {
		return Bridge{}, false
	}
	if size <= 0 {
		size = DefaultBridgeSize
	}
	breadth, elev := size*2, size
	a, pr := p.AnchorRect, p.PopupRect

	b := Bridge{Scheme: p.Scheme, Breadth: breadth, Elevation: elev}
	switch p.Scheme {
	case EdgeOver, EdgeUnder:
		b.Offset = geom.Clamp(a.Center().X-pr.Left-elev, 0, pr.Width-breadth)
		if p.Scheme == EdgeOver {
			b.Side, b.Rotation = SideBottom, 0
			b.Local = geom.R(b.Offset, pr.Height, breadth, size)
		} else {
			b.Side, b.Rotation = SideTop, 180
			b.Local = geom.R(b.Offset, -size, breadth, size)
		}
	default:
		b.Offset = geom.Clamp(a.Center().Y-pr.Top-elev, 0, pr.Height-breadth)
		if p.Scheme == EdgeLeft {
			b.Side, b.Rotation = SideRight, -90
			b.Local = geom.R(pr.Width, b.Offset, size, breadth)
		} else {
			b.Side, b.Rotation = SideLeft, 90
			b.Local = geom.R(-size, b.Offset, size, breadth)
		}
	}
	if p.Scheme.Vertical() {
		b.Transform = arrowTransform(breadth*0.5, elev*0.5, b.Rotation, size)
	} else {
		b.Transform = arrowTransform(elev*0.5, breadth*0.5, b.Rotation, size)
	}
	return b, true
}

func arrowTransform(tx, ty, rot, size float64) string {
	s := fmt.Sprintf("translate(%g,%g),rotate(%g,0,0)", tx, ty, rot)
	if size != DefaultBridgeSize {
		s += fmt.Sprintf(",scale(%g)", size/DefaultBridgeSize)
	}
	return s
}
