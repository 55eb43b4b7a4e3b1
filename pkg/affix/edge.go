// ABOUTME: Edge names, alignment families and overflow modes for attachment schemes
// ABOUTME: ParseEdge/ParseEdges turn caller-supplied names into typed edges

package affix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEdge is returned when an edge name is not one of over, under, left, right.
var ErrUnknownEdge = errors.New("unknown edge")

// Edge names the side of the anchor a popup attaches to.
type Edge string

const (
	EdgeOver  Edge = "over"
	EdgeUnder Edge = "under"
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// AllEdges lists every edge in declaration order.
var AllEdges = []Edge{EdgeOver, EdgeUnder, EdgeLeft, EdgeRight}

// Valid reports whether e is a known edge.
func (e Edge) Valid() bool {
	switch e {
	case EdgeOver, EdgeUnder, EdgeLeft, EdgeRight:
		return true
	}
	return false
}

// Vertical reports whether the popup sits above or below the anchor.
func (e Edge) Vertical() bool {
	return e == EdgeOver || e == EdgeUnder
}

func (e Edge) String() string { return string(e) }

// ParseEdge parses a single edge name, ignoring surrounding whitespace and case.
func ParseEdge(s string) (Edge, error) {
	e := Edge(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEdge, s)
	}
	return e, nil
}

// ParseEdges parses a comma-separated edge list such as "over, under".
// Empty items are skipped; the first unknown name is an error.
func ParseEdges(s string) ([]Edge, error) {
	var edges []Edge
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		e, err := ParseEdge(part)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// Alignment selects the scheme family used on the axis parallel to the edge.
type Alignment int

const (
	// AlignEdge aligns the popup flush to the anchor side with more room.
	AlignEdge Alignment = iota
	// AlignCenter centers the popup on the anchor.
	AlignCenter
)

// ParseAlignment accepts "center"; anything else (including "") is AlignEdge.
func ParseAlignment(s string) Alignment {
	if strings.EqualFold(strings.TrimSpace(s), "center") {
		return AlignCenter
	}
	return AlignEdge
}

func (a Alignment) String() string {
	if a == AlignCenter {
		return "center"
	}
	return "edge"
}

// Overflow decides how the clamp treats a popup larger than the viewport on an axis.
type Overflow int

const (
	// OverflowCenter centers an oversized popup so it overflows both edges equally.
	OverflowCenter Overflow = iota
	// OverflowStart pins an oversized popup to the viewport origin.
	OverflowStart
)

// ParseOverflow accepts "start"; anything else is OverflowCenter.
func ParseOverflow(s string) Overflow {
	if strings.EqualFold(strings.TrimSpace(s), "start") {
		return OverflowStart
	}
	return OverflowCenter
}

func (o Overflow) String() string {
	if o == OverflowStart {
		return "start"
	}
	return "center"
}
