// ABOUTME: Scheme selection with stickiness: keep the active scheme while it still fits
// ABOUTME: Falls back to the first fitting scheme, then to the previous or default one

package affix

import "github.com/mauromedda/affix-go/pkg/affix/geom"

// Selection is the input to Choose.
type Selection struct {
	// Family is the unfiltered registry of the alignment family in use.
	Family Registry
	// Candidates is Family filtered to the caller's edges.
	Candidates Registry
	// Previous is the active scheme, or "" before the first recomputation.
	Previous Edge
	// Default is used when nothing else resolves.
	Default Edge
}

// Choose picks the scheme for the given geometry. anchor should already be
// inflated by the gap so fit checks leave room for it. It always returns a scheme.
func Choose(sel Selection, anchor geom.Rect, popupSize, viewport geom.Vec2) Scheme {
	prev, hasPrev := sel.Candidates.Lookup(sel.Previous)
	if hasPrev && prev.Fits(anchor, popupSize, viewport) {
		return prev
	}

	for _, s := range sel.Candidates {
		if s.Fits(anchor, popupSize, viewport) {
			return s
		}
	}

	if hasPrev {
		return prev
	}
	if len(sel.Candidates) > 0 {
		return sel.Candidates[0]
	}

	family := sel.Family
	if len(family) == 0 {
		family = EdgeSchemes
	}
	if s, ok := family.Lookup(sel.Previous); ok {
		return s
	}
	if s, ok := family.Lookup(sel.Default); ok {
		return s
	}
	return family[0]
}
