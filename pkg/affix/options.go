// ABOUTME: Caller configuration for an overlay: edges, alignment, gap, bridge, hooks
// ABOUTME: Functional options over a plain Options struct; immutable per mount

package affix

import "github.com/mauromedda/affix-go/pkg/affix/geom"

// DefaultBridgeSize is the arrow elevation used when no size is configured.
const DefaultBridgeSize = 20

// BridgeKind selects the connector drawn between anchor and popup.
type BridgeKind int

const (
	BridgeNone BridgeKind = iota
	BridgeArrow
)

// Prefab names a cosmetic preset. The engine passes it through untouched.
type Prefab string

const (
	PrefabNone    Prefab = ""
	PrefabFloat   Prefab = "float"
	PrefabCallout Prefab = "callout"
)

// RenderState is handed to a RenderFunc so it can draw custom connectors.
type RenderState struct {
	// Anchor and Popup are the bounds along the attached edge. They are zero
	// until Measured is true.
	Anchor, Popup geom.Bounds
	Measured      bool
}

// RenderFunc produces popup content for the active scheme.
type RenderFunc func(scheme Edge, state RenderState) string

// Options configures one overlay.
type Options struct {
	DefaultEdge Edge
	// Edges restricts candidate schemes. Nil means all edges.
	Edges []Edge
	Align Alignment
	Gap   float64

	Bridge     BridgeKind
	BridgeSize float64
	// BridgeStyle and BridgeOutlineStyle are opaque to the engine.
	BridgeStyle        string
	BridgeOutlineStyle string

	Prefab Prefab
	// ContainerID parents the host container; empty means the root.
	ContainerID    string
	OnClickOutside func()
	Render         RenderFunc
	Overflow       Overflow
}

// Option mutates Options during construction.
type Option func(*Options)

// DefaultOptions returns Options with the under edge and the default bridge size.
func DefaultOptions() Options {
	return Options{
		DefaultEdge: EdgeUnder,
		BridgeSize:  DefaultBridgeSize,
	}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// EffectiveGap is the anchor-to-popup distance including the bridge, if any.
func (o Options) EffectiveGap() float64 {
	if o.Bridge == BridgeArrow {
		return o.Gap + o.BridgeSize
	}
	return o.Gap
}

// WithDefaultEdge sets the scheme used before the first measurement.
func WithDefaultEdge(e Edge) Option {
	return func(o *Options) {
		if e.Valid() {
			o.DefaultEdge = e
		}
	}
}

// WithEdges restricts the candidate schemes. An empty, non-nil list leaves no
// candidates, so the selector falls back.
func WithEdges(edges ...Edge) Option {
	return func(o *Options) {
		o.Edges = append([]Edge{}, edges...)
	}
}

// WithAlign selects the alignment family.
func WithAlign(a Alignment) Option {
	return func(o *Options) { o.Align = a }
}

// WithGap sets the minimum anchor-to-popup distance.
func WithGap(gap float64) Option {
	return func(o *Options) { o.Gap = gap }
}

// WithBridge enables the arrow connector.
func WithBridge(kind BridgeKind) Option {
	return func(o *Options) { o.Bridge = kind }
}

// WithBridgeSize overrides the arrow elevation. Cell-based hosts use small values.
func WithBridgeSize(size float64) Option {
	return func(o *Options) {
		if size > 0 {
			o.BridgeSize = size
		}
	}
}

// WithBridgeStyle sets the opaque fill and outline styles of the arrow.
func WithBridgeStyle(fill, outline string) Option {
	return func(o *Options) {
		o.BridgeStyle = fill
		o.BridgeOutlineStyle = outline
	}
}

// WithPrefab selects a cosmetic preset.
func WithPrefab(p Prefab) Option {
	return func(o *Options) { o.Prefab = p }
}

// WithContainerID parents the host container under the given container.
func WithContainerID(id string) Option {
	return func(o *Options) { o.ContainerID = id }
}

// WithOnClickOutside installs a backdrop that reports clicks outside the popup.
func WithOnClickOutside(fn func()) Option {
	return func(o *Options) { o.OnClickOutside = fn }
}

// WithRender installs a custom content hook.
func WithRender(fn RenderFunc) Option {
	return func(o *Options) { o.Render = fn }
}

// WithOverflow sets how oversized popups are clamped.
func WithOverflow(ov Overflow) Option {
	return func(o *Options) { o.Overflow = ov }
}

// WithOptions replaces the whole configuration with o.
func WithOptions(o Options) Option {
	return func(dst *Options) {
		*dst = o
		if o.Edges != nil {
			dst.Edges = append([]Edge{}, o.Edges...)
		}
	}
}
