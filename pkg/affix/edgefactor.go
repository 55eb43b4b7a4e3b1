// ABOUTME: EdgeFactor describes a scheme's direction and axis projections for renderers
// ABOUTME: Parallel runs along the anchor edge; perpendicular leaves the anchor

package affix

import "github.com/mauromedda/affix-go/pkg/affix/geom"

// EdgeFactor is renderer-facing metadata for an edge.
type EdgeFactor struct {
	// V and H are the direction from anchor to popup: -1, 0 or 1.
	V, H int
	// Parallel projects a rect onto the axis along the anchor edge.
	Parallel func(geom.Rect) geom.Bounds
	// Perpendicular projects a rect onto the axis away from the anchor.
	Perpendicular func(geom.Rect) geom.Bounds
}

func zeroBounds(geom.Rect) geom.Bounds { return geom.Bounds{} }

// UnknownFactor is returned for names outside the registry.
var UnknownFactor = EdgeFactor{Parallel: zeroBounds, Perpendicular: zeroBounds}

var edgeFactors = map[Edge]EdgeFactor{
	EdgeOver:  {V: -1, Parallel: geom.Rect.Horizontal, Perpendicular: geom.Rect.Vertical},
	EdgeUnder: {V: 1, Parallel: geom.Rect.Horizontal, Perpendicular: geom.Rect.Vertical},
	EdgeLeft:  {H: -1, Parallel: geom.Rect.Vertical, Perpendicular: geom.Rect.Horizontal},
	EdgeRight: {H: 1, Parallel: geom.Rect.Vertical, Perpendicular: geom.Rect.Horizontal},
}

// FactorFor returns the EdgeFactor of e, or UnknownFactor.
func FactorFor(e Edge) EdgeFactor {
	if f, ok := edgeFactors[e]; ok {
		return f
	}
	return UnknownFactor
}

// RenderStateFor projects a Positioning onto the axis along its edge.
func RenderStateFor(p Positioning) RenderState {
	if !p.Measured {
		return RenderState{}
	}
	f := FactorFor(p.Scheme)
	return RenderState{
		Anchor:   f.Parallel(p.AnchorRect),
		Popup:    f.Parallel(p.PopupRect),
		Measured: true,
	}
}
