// ABOUTME: Scene describes one placed overlay for offline rendering
// ABOUTME: Bundles the Positioning with the options and viewport it was computed under

package snapshot

import (
	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

// Scene is a computed placement plus what is needed to draw it.
type Scene struct {
	Positioning affix.Positioning
	Options     affix.Options
	Viewport    geom.Vec2
	// Body is the popup text content. A Render hook in Options takes precedence.
	Body string
}

// Place computes a first placement for a popup of popupSize that starts at the
// viewport origin, as a freshly mounted popup does.
func Place(anchor geom.Rect, popupSize, viewport geom.Vec2, o affix.Options, body string) Scene {
	prev := affix.NewPositioning(o.DefaultEdge)
	pos := affix.Calculate(prev, anchor, geom.RectAt(geom.Vec2{}, popupSize), viewport, o)
	return Scene{Positioning: pos, Options: o, Viewport: viewport, Body: body}
}

// Bridge returns the connector for the scene when the arrow is enabled.
func (s Scene) Bridge() (affix.Bridge, bool) {
	if s.Options.Bridge != affix.BridgeArrow {
		return affix.Bridge{}, false
	}
	return affix.BridgeFor(s.Positioning, s.Options.BridgeSize)
}

// Content returns the popup content, preferring the Render hook.
func (s Scene) Content() string {
	if s.Options.Render != nil {
		return s.Options.Render(s.Positioning.Scheme, affix.RenderStateFor(s.Positioning))
	}
	return s.Body
}
