// ABOUTME: Lipgloss styles for the float and callout prefabs and the bridge glyphs
// ABOUTME: Prefab and bridge style names from Options select among these at render time

package tuihost

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/affix-go/pkg/affix"
)

// Styles is the palette used to draw popups.
type Styles struct {
	Plain   lipgloss.Style
	Float   lipgloss.Style
	Callout lipgloss.Style
	Bridge  lipgloss.Style
}

// DefaultStyles returns the palette for a dark or light background.
func DefaultStyles(dark bool) Styles {
	border, accent, bg := lipgloss.Color("245"), lipgloss.Color("39"), lipgloss.Color("236")
	if !dark {
		border, accent, bg = lipgloss.Color("240"), lipgloss.Color("25"), lipgloss.Color("254")
	}
	return Styles{
		Plain: lipgloss.NewStyle(),
		Float: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Callout: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Background(bg).
			Padding(0, 1),
		Bridge: lipgloss.NewStyle().Foreground(accent),
	}
}

// Frame returns the style for a prefab.
func (s Styles) Frame(p affix.Prefab) lipgloss.Style {
	switch p {
	case affix.PrefabFloat:
		return s.Float
	case affix.PrefabCallout:
		return s.Callout
	default:
		return s.Plain
	}
}

// BridgeStyle returns the bridge glyph style. A non-empty fill colour from
// the options overrides the palette; the outline colour becomes the
// background so both show in a single cell.
func (s Styles) BridgeStyle(o affix.Options) lipgloss.Style {
	st := s.Bridge
	if o.BridgeStyle != "" {
		st = st.Foreground(lipgloss.Color(o.BridgeStyle))
	}
	if o.BridgeOutlineStyle != "" {
		st = st.Background(lipgloss.Color(o.BridgeOutlineStyle))
	}
	return st
}

// glyph returns the arrow pointing from the popup towards the anchor.
func glyph(side affix.Side) string {
	switch side {
	case affix.SideTop:
		return "▲"
	case affix.SideBottom:
		return "▼"
	case affix.SideLeft:
		return "◀"
	default:
		return "▶"
	}
}
