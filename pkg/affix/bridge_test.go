// ABOUTME: Tests for bridge geometry: orientation per scheme and offset containment
// ABOUTME: Offsets must stay within [0, popupExtent - breadth] for every geometry

package affix

import (
	"testing"

	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

func TestBridgeFor_Unmeasured(t *testing.T) {
	t.Parallel()

	if _, ok := BridgeFor(NewPositioning(EdgeOver), 20); ok {
		t.Error("BridgeFor on unmeasured positioning should report false")
	}
}

func TestBridgeFor_Orientation(t *testing.T) {
	t.Parallel()

	anchor := geom.R(100, 500, 50, 20)
	popup := geom.R(100, 396, 200, 100)

	tests := []struct {
		edge      Edge
		side      Side
		rotation  float64
		local     geom.Rect
		transform string
	}{
		{EdgeOver, SideBottom, 0, geom.R(5, 100, 40, 20), "translate(20,10),rotate(0,0,0)"},
		{EdgeUnder, SideTop, 180, geom.R(5, -20, 40, 20), "translate(20,10),rotate(180,0,0)"},
		{EdgeLeft, SideRight, -90, geom.R(200, 60, 20, 40), "translate(10,20),rotate(-90,0,0)"},
		{EdgeRight, SideLeft, 90, geom.R(-20, 60, 20, 40), "translate(10,20),rotate(90,0,0)"},
	}
	for _, tt := range tests {
		b, ok := BridgeFor(Positioning{Scheme: tt.edge, AnchorRect: anchor, PopupRect: popup, Measured: true}, 20)
		if !ok {
			t.Fatalf("%s: BridgeFor reported false", tt.edge)
		}
		if b.Side != tt.side || b.Rotation != tt.rotation {
			t.Errorf("%s: side/rotation = %s/%v, want %s/%v", tt.edge, b.Side, b.Rotation, tt.side, tt.rotation)
		}
		if b.Local != tt.local {
			t.Errorf("%s: Local = %v, want %v", tt.edge, b.Local, tt.local)
		}
		if b.Transform != tt.transform {
			t.Errorf("%s: Transform = %q, want %q", tt.edge, b.Transform, tt.transform)
		}
	}
}

func TestBridgeFor_ScaledTransform(t *testing.T) {
	t.Parallel()

	p := Positioning{Scheme: EdgeUnder, AnchorRect: geom.R(0, 0, 4, 1), PopupRect: geom.R(0, 2, 20, 5), Measured: true}
	b, _ := BridgeFor(p, 1)
	if want := "translate(1,0.5),rotate(180,0,0),scale(0.05)"; b.Transform != want {
		t.Errorf("Transform = %q, want %q", b.Transform, want)
	}
	if b.Breadth != 2 || b.Elevation != 1 {
		t.Errorf("breadth/elevation = %v/%v, want 2/1", b.Breadth, b.Elevation)
	}
}

func TestBridgeFor_Containment(t *testing.T) {
	t.Parallel()

	const size = 20
	popups := []geom.Rect{geom.R(200, 200, 100, 80), geom.R(0, 0, 40, 40), geom.R(10, 10, 25, 30)}
	for _, e := range AllEdges {
		for _, popup := range popups {
			for ax := -300.0; ax <= 600; ax += 37 {
				anchor := geom.R(ax, ax*0.7, 30, 12)
				b, ok := BridgeFor(Positioning{Scheme: e, AnchorRect: anchor, PopupRect: popup, Measured: true}, size)
				if !ok {
					t.Fatalf("BridgeFor(%s) reported false", e)
				}
				extent := popup.Width
				if !e.Vertical() {
					extent = popup.Height
				}
				hi := geom.MaxOf(0, extent-b.Breadth)
				if b.Offset < 0 || b.Offset > hi {
					t.Fatalf("%s anchor=%v popup=%v offset %v outside [0,%v]", e, anchor, popup, b.Offset, hi)
				}
			}
		}
	}
}

func TestBridge_Rect(t *testing.T) {
	t.Parallel()

	b := Bridge{Local: geom.R(5, 100, 40, 20)}
	if got, want := b.Rect(geom.R(100, 396, 200, 100)), geom.R(105, 496, 40, 20); got != want {
		t.Errorf("Rect = %v, want %v", got, want)
	}
}
