// ABOUTME: Attachment schemes: per-edge fit predicates and translation strategies
// ABOUTME: Two fixed registries (edge-aligned, centered) in over, under, left, right order

package affix

import (
	"math"

	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

// FitsFunc reports whether a popup of popupSize has room on the scheme's side of
// anchor. It depends on sizes only and never mutates its inputs.
type FitsFunc func(anchor geom.Rect, popupSize, viewport geom.Vec2) bool

// TranslateFunc returns the delta that attaches popup to anchor at gap distance,
// with each axis corrected by clamp.
type TranslateFunc func(anchor, popup geom.Rect, gap float64, viewport geom.Vec2, clamp Overflow) geom.Vec2

// Scheme is one (edge, alignment) placement strategy.
type Scheme struct {
	Edge      Edge
	Align     Alignment
	fits      FitsFunc
	translate TranslateFunc
}

// Fits reports whether the scheme has room for the popup.
func (s Scheme) Fits(anchor geom.Rect, popupSize, viewport geom.Vec2) bool {
	return s.fits(anchor, popupSize, viewport)
}

// Translation computes the clamped delta using OverflowCenter.
func (s Scheme) Translation(anchor, popup geom.Rect, gap float64, viewport geom.Vec2) geom.Vec2 {
	return s.translate(anchor, popup, gap, viewport, OverflowCenter)
}

// TranslationWith computes the clamped delta with an explicit overflow mode.
func (s Scheme) TranslationWith(anchor, popup geom.Rect, gap float64, viewport geom.Vec2, o Overflow) geom.Vec2 {
	return s.translate(anchor, popup, gap, viewport, o)
}

var fitsByEdge = map[Edge]FitsFunc{
	EdgeOver: func(a geom.Rect, p, vp geom.Vec2) bool {
		return p.Y <= math.Min(a.Top, vp.Y)
	},
	EdgeUnder: func(a geom.Rect, p, vp geom.Vec2) bool {
		return p.Y <= vp.Y-a.Bottom()
	},
	EdgeLeft: func(a geom.Rect, p, vp geom.Vec2) bool {
		return p.X <= math.Min(a.Left, vp.X)
	},
	EdgeRight: func(a geom.Rect, p, vp geom.Vec2) bool {
		return p.X <= vp.X-a.Right()
	},
}

// perpendicular returns the unclamped delta along the axis leaving the anchor.
func perpendicular(e Edge, a, p geom.Rect, gap float64) float64 {
	switch e {
	case EdgeOver:
		return align(a.Top-gap, p.Bottom())
	case EdgeUnder:
		return align(a.Bottom()+gap, p.Top)
	case EdgeLeft:
		return align(a.Left-gap, p.Right())
	default:
		return align(a.Right()+gap, p.Left)
	}
}

func makeTranslate(e Edge, mode Alignment) TranslateFunc {
	return func(a, p geom.Rect, gap float64, vp geom.Vec2, o Overflow) geom.Vec2 {
		along := a.Horizontal()
		pAlong := p.Horizontal()
		space := vp.X
		if !e.Vertical() {
			along, pAlong, space = a.Vertical(), p.Vertical(), vp.Y
		}

		var par float64
		if mode == AlignCenter {
			par = alignCenter(along.Min, along.Max, pAlong.Min, pAlong.Max)
		} else {
			par = alignMaxSpace(along.Min, along.Max, pAlong.Min, pAlong.Max, space)
		}
		par = o.ClampDelta(par, pAlong.Min, pAlong.Max, space)

		perp := perpendicular(e, a, p, gap)
		if e.Vertical() {
			perp = o.ClampDelta(perp, p.Top, p.Bottom(), vp.Y)
			return geom.V(par, perp)
		}
		perp = o.ClampDelta(perp, p.Left, p.Right(), vp.X)
		return geom.V(perp, par)
	}
}

// Registry is an ordered set of schemes of one alignment family.
type Registry []Scheme

func newRegistry(mode Alignment) Registry {
	reg := make(Registry, 0, len(AllEdges))
	for _, e := range AllEdges {
		reg = append(reg, Scheme{Edge: e, Align: mode, fits: fitsByEdge[e], translate: makeTranslate(e, mode)})
	}
	return reg
}

var (
	// EdgeSchemes aligns the popup flush with the anchor side that has more room.
	EdgeSchemes = newRegistry(AlignEdge)
	// CenterSchemes centers the popup on the anchor.
	CenterSchemes = newRegistry(AlignCenter)
)

// Schemes returns the registry for an alignment family.
func Schemes(mode Alignment) Registry {
	if mode == AlignCenter {
		return CenterSchemes
	}
	return EdgeSchemes
}

// Lookup returns the scheme for e, if the registry holds one.
func (r Registry) Lookup(e Edge) (Scheme, bool) {
	for _, s := range r {
		if s.Edge == e {
			return s, true
		}
	}
	return Scheme{}, false
}

// Contains reports whether the registry holds a scheme for e.
func (r Registry) Contains(e Edge) bool {
	_, ok := r.Lookup(e)
	return ok
}

// Edges returns the edge names in registry order.
func (r Registry) Edges() []Edge {
	out := make([]Edge, len(r))
	for i, s := range r {
		out[i] = s.Edge
	}
	return out
}

// Filter keeps the schemes named in edges, in registry order. A nil slice keeps
// every scheme; unknown names and duplicates are dropped.
func (r Registry) Filter(edges []Edge) Registry {
	if edges == nil {
		return r
	}
	want := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		want[e] = true
	}
	out := make(Registry, 0, len(edges))
	for _, s := range r {
		if want[s.Edge] {
			out = append(out, s)
		}
	}
	return out
}
