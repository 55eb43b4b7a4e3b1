// ABOUTME: Positioning state and the position calculator
// ABOUTME: Accumulates clamped scheme deltas onto the previous translation

package affix

import "github.com/mauromedda/affix-go/pkg/affix/geom"

// Positioning is the placement state of one overlay.
type Positioning struct {
	// Translation is the accumulated offset applied to the popup.
	Translation geom.Vec2
	// Scheme is the active edge.
	Scheme Edge
	// AnchorRect is the anchor as measured for this placement.
	AnchorRect geom.Rect
	// PopupRect is the popup after this placement's delta was applied.
	PopupRect geom.Rect
	// Measured is false until the first successful recomputation.
	Measured bool
}

// NewPositioning returns the initial state: zero translation on defaultEdge.
func NewPositioning(defaultEdge Edge) Positioning {
	if !defaultEdge.Valid() {
		defaultEdge = EdgeUnder
	}
	return Positioning{Scheme: defaultEdge}
}

// Equal reports value equality.
func (p Positioning) Equal(o Positioning) bool {
	return p == o
}

// Calculate computes the next Positioning from prev and fresh measurements.
// The new translation is prev.Translation plus the scheme's delta.
func Calculate(prev Positioning, anchor, popup geom.Rect, viewport geom.Vec2, o Options) Positioning {
	gap := o.EffectiveGap()
	family := Schemes(o.Align)

	// Before the first measurement prev.Scheme is the default edge, which makes
	// it the preferred scheme while it fits.
	scheme := Choose(Selection{
		Family:     family,
		Candidates: family.Filter(o.Edges),
		Previous:   prev.Scheme,
		Default:    o.DefaultEdge,
	}, anchor.Inflate(gap), popup.Size(), viewport)

	delta := scheme.TranslationWith(anchor, popup, gap, viewport, o.Overflow)
	return Positioning{
		Translation: prev.Translation.Add(delta),
		Scheme:      scheme.Edge,
		AnchorRect:  anchor,
		PopupRect:   popup.Translate(delta),
		Measured:    true,
	}
}
