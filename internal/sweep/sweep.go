// ABOUTME: Concurrent property sweep of the placement engine over a geometry grid
// ABOUTME: Checks clamp soundness, fallback totality, idempotence, continuity and bridge containment

package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

const epsilon = 1e-6

// Property names reported in violations.
const (
	PropClamp       = "clamp"
	PropFallback    = "fallback"
	PropIdempotence = "idempotence"
	PropContinuity  = "continuity"
	PropBridge      = "bridge"
)

// ErrBadConfig is returned for a grid that cannot be walked.
var ErrBadConfig = errors.New("sweep: invalid configuration")

// Config describes the grid.
type Config struct {
	Viewport geom.Vec2
	// Step is the spacing of anchor positions on both axes.
	Step float64
	// PopupSizes defaults to a small, a half-viewport and an oversized popup.
	PopupSizes []geom.Vec2
	// Options are swept in turn. Nil means edge and center alignment with a bridge.
	Options []affix.Options
	// Limit bounds concurrent rows. Zero means GOMAXPROCS.
	Limit int
}

// Violation is one failed property check.
type Violation struct {
	Property string
	Anchor   geom.Rect
	Popup    geom.Vec2
	Align    affix.Alignment
	Detail   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: anchor=%v popup=%v align=%s: %s", v.Property, v.Anchor, v.Popup, v.Align, v.Detail)
}

// Report summarises a sweep.
type Report struct {
	Cases      int
	Violations []Violation
}

// OK reports whether every case passed.
func (r Report) OK() bool { return len(r.Violations) == 0 }

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("%d cases, all properties hold", r.Cases)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d cases, %d violations\n", r.Cases, len(r.Violations))
	for _, v := range r.Violations {
		b.WriteString("  ")
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (c Config) withDefaults() (Config, error) {
	if c.Viewport.X <= 0 || c.Viewport.Y <= 0 {
		return c, fmt.Errorf("%w: viewport %v", ErrBadConfig, c.Viewport)
	}
	if c.Step <= 0 {
		return c, fmt.Errorf("%w: step %g", ErrBadConfig, c.Step)
	}
	if len(c.PopupSizes) == 0 {
		c.PopupSizes = []geom.Vec2{
			geom.V(c.Step, c.Step),
			geom.V(c.Viewport.X*0.5, c.Viewport.Y*0.5),
			geom.V(c.Viewport.X*1.25, c.Viewport.Y*1.25),
		}
	}
	if c.Options == nil {
		c.Options = []affix.Options{
			affix.NewOptions(affix.WithGap(2)),
			affix.NewOptions(affix.WithAlign(affix.AlignCenter), affix.WithBridge(affix.BridgeArrow), affix.WithBridgeSize(c.Step*0.5)),
		}
	}
	if c.Limit <= 0 {
		c.Limit = runtime.GOMAXPROCS(0)
	}
	return c, nil
}

// Run walks the grid row by row, one goroutine per anchor row.
func Run(ctx context.Context, cfg Config) (Report, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return Report{}, err
	}

	rows := int(cfg.Viewport.Y/cfg.Step) + 1
	type rowResult struct {
		cases      int
		violations []Violation
	}
	results := make([]rowResult, rows)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Limit)
	for i := range rows {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			top := float64(i) * cfg.Step
			for left := 0.0; left <= cfg.Viewport.X; left += cfg.Step {
				anchor := geom.R(left, top, cfg.Step, cfg.Step*0.5)
				for _, size := range cfg.PopupSizes {
					for _, o := range cfg.Options {
						results[i].cases++
						results[i].violations = append(results[i].violations, Check(anchor, size, cfg.Viewport, o)...)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("sweep: %w", err)
	}

	var rep Report
	for _, r := range results {
		rep.Cases += r.cases
		rep.Violations = append(rep.Violations, r.violations...)
	}
	return rep, nil
}

// Check runs every property for one geometry and returns the violations.
func Check(anchor geom.Rect, popupSize, viewport geom.Vec2, o affix.Options) []Violation {
	var out []Violation
	fail := func(prop, format string, args ...any) {
		out = append(out, Violation{
			Property: prop, Anchor: anchor, Popup: popupSize, Align: o.Align,
			Detail: fmt.Sprintf(format, args...),
		})
	}

	first := affix.Calculate(affix.NewPositioning(o.DefaultEdge), anchor, geom.RectAt(geom.Vec2{}, popupSize), viewport, o)

	if !first.Scheme.Valid() {
		fail(PropFallback, "no scheme selected")
		return out
	}

	pr := first.PopupRect
	if popupSize.X <= viewport.X && (pr.Left < -epsilon || pr.Right() > viewport.X+epsilon) {
		fail(PropClamp, "x span [%g,%g] outside [0,%g]", pr.Left, pr.Right(), viewport.X)
	}
	if popupSize.Y <= viewport.Y && (pr.Top < -epsilon || pr.Bottom() > viewport.Y+epsilon) {
		fail(PropClamp, "y span [%g,%g] outside [0,%g]", pr.Top, pr.Bottom(), viewport.Y)
	}

	second := affix.Calculate(first, anchor, first.PopupRect, viewport, o)
	if second.Scheme != first.Scheme || !near(second.Translation, first.Translation) || !near(second.PopupRect.Min(), first.PopupRect.Min()) {
		fail(PropIdempotence, "%s %v then %s %v", first.Scheme, first.Translation, second.Scheme, second.Translation)
	}

	moved := anchor.Translate(geom.V(1, 1))
	third := affix.Calculate(first, moved, first.PopupRect, viewport, o)
	delta := third.PopupRect.Min().Sub(first.PopupRect.Min())
	if !near(third.Translation, first.Translation.Add(delta)) {
		fail(PropContinuity, "translation %v, want %v", third.Translation, first.Translation.Add(delta))
	}

	if b, ok := affix.BridgeFor(first, o.BridgeSize); ok && o.Bridge == affix.BridgeArrow {
		extent := pr.Width
		if !first.Scheme.Vertical() {
			extent = pr.Height
		}
		hi := math.Max(0, extent-b.Breadth)
		if b.Offset < -epsilon || b.Offset > hi+epsilon {
			fail(PropBridge, "offset %g outside [0,%g]", b.Offset, hi)
		}
	}
	return out
}

func near(a, b geom.Vec2) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}
