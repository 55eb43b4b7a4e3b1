// ABOUTME: Viewport clamp: nudges a 1D delta so the popup stays inside [0, space]
// ABOUTME: Oversized popups are centered or pinned to the origin depending on Overflow

package affix

// ClampDelta keeps a popup spanning [popupMin, popupMax] inside [0, space] after
// moving it by delta, using OverflowCenter for popups larger than space.
func ClampDelta(delta, popupMin, popupMax, space float64) float64 {
	return OverflowCenter.ClampDelta(delta, popupMin, popupMax, space)
}

// ClampDelta returns delta corrected so the popup's near edge is not below 0 and
// its far edge is not past space. The two corrections are exclusive for a popup
// that fits; a popup larger than space is placed according to o.
func (o Overflow) ClampDelta(delta, popupMin, popupMax, space float64) float64 {
	if extent := popupMax - popupMin; extent > space {
		if o == OverflowStart {
			return -popupMin
		}
		return (space-extent)*0.5 - popupMin
	}

	edgeMin := popupMin + delta
	edgeMax := popupMax + delta
	switch {
	case edgeMin < 0:
		return delta - edgeMin
	case edgeMax > space:
		return delta + (space - edgeMax)
	}
	return delta
}

// align returns the delta that moves popupEdge onto anchorEdge.
func align(anchorEdge, popupEdge float64) float64 {
	return anchorEdge - popupEdge
}

// alignMaxSpace aligns the popup flush with whichever anchor side has more room
// in [0, space]. Ties go to the min side's room, aligning the max edges.
func alignMaxSpace(anchorMin, anchorMax, popupMin, popupMax, space float64) float64 {
	after := space - anchorMax
	before := anchorMin
	if after <= before {
		return anchorMax - popupMax
	}
	return anchorMin - popupMin
}

// alignCenter aligns the popup's midpoint on the anchor's midpoint.
func alignCenter(anchorMin, anchorMax, popupMin, popupMax float64) float64 {
	return align((anchorMin+anchorMax)*0.5, (popupMin+popupMax)*0.5)
}
