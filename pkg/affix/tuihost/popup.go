// ABOUTME: Popup: the tui.Component placed inside a host container layer
// ABOUTME: Draws static or hook-rendered content in its prefab frame, plus the bridge sprite

package tuihost

import (
	"strings"

	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
	"github.com/mauromedda/affix-go/pkg/tui"
	"github.com/mauromedda/affix-go/pkg/tui/width"
)

// Popup is a popup handle. Its body is shown unless the overlay's Render
// hook supplies content for the active scheme.
type Popup struct {
	title string
	body  string
	// MaxWidth wraps the body; zero means no wrapping.
	MaxWidth int

	styles Styles
	opts   affix.Options
	pos    affix.Positioning
	layer  *tui.Layer
}

var _ tui.Component = (*Popup)(nil)

// NewPopup creates a popup with a static body.
func NewPopup(title, body string) *Popup {
	return &Popup{title: title, body: body, styles: DefaultStyles(true)}
}

// Layer returns the attached layer, or nil.
func (p *Popup) Layer() *tui.Layer { return p.layer }

// Render draws the framed content.
func (p *Popup) Render(out *tui.RenderBuffer, w int) {
	body := p.body
	if p.opts.Render != nil {
		body = p.opts.Render(p.pos.Scheme, affix.RenderStateFor(p.pos))
	}
	if p.MaxWidth > 0 {
		var wrapped []string
		for _, line := range width.Lines(body) {
			wrapped = append(wrapped, width.Wrap(line, p.MaxWidth)...)
		}
		body = strings.Join(wrapped, "\n")
	}
	block := p.styles.Frame(p.opts.Prefab).Render(body)
	for _, line := range width.Lines(block) {
		out.WriteClipped(line, w)
	}
}

// Invalidate is a no-op; the popup renders from its fields each frame.
func (p *Popup) Invalidate() {}

// sprites returns the bridge glyph for the current placement.
func (p *Popup) sprites() []tui.Sprite {
	if p.opts.Bridge != affix.BridgeArrow {
		return nil
	}
	b, ok := affix.BridgeFor(p.pos, p.opts.BridgeSize)
	if !ok {
		return nil
	}
	// One glyph at the cell nearest the bridge centre.
	at := geom.V(
		b.Local.Left+b.Local.Width/2-0.5,
		b.Local.Top+b.Local.Height/2-0.5,
	)
	return []tui.Sprite{{At: at, Text: p.styles.BridgeStyle(p.opts).Render(glyph(b.Side))}}
}
