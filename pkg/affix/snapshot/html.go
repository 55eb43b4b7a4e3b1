// ABOUTME: DOM-like HTML rendering of a Scene: container, backdrop, anchor, popup, bridge SVG
// ABOUTME: Builds an x/net/html node tree so callers can render or inspect it

package snapshot

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mauromedda/affix-go/pkg/affix"
)

// RootID is the id of the container element when the scene has no ContainerID.
const RootID = "affix-root"

// BackdropColor is the translucent fill of the click-outside backdrop.
const BackdropColor = "#0000002b"

var prefabStyles = map[affix.Prefab][]decl{
	affix.PrefabFloat: {
		{"box-shadow", "2px 2px 6px rgba(0, 0, 0, 0.5)"},
		{"background-color", "white"},
	},
	affix.PrefabCallout: {
		{"box-shadow", "2px 2px 6px rgba(0, 0, 0, 0.5)"},
		{"background-color", "white"},
		{"border-radius", "5px"},
	},
}

type decl struct{ key, val string }

func style(ds ...decl) string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.key+":"+d.val)
	}
	return strings.Join(parts, ";")
}

func px(v float64) string { return fmt.Sprintf("%gpx", v) }

// cssOf turns an opaque style option into declarations. A bare value is a fill colour.
func cssOf(v string) string {
	if v == "" || strings.Contains(v, ":") {
		return v
	}
	return "fill:" + v
}

func joinCSS(base, extra string) string {
	if extra == "" {
		return base
	}
	return base + ";" + extra
}

func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// HTML builds the node tree for s.
func HTML(s Scene) *html.Node {
	o := s.Options
	id := o.ContainerID
	if id == "" {
		id = RootID
	}
	root := element("div", "id", id, "class", "affix-container")

	if o.OnClickOutside != nil {
		root.AppendChild(element("div",
			"class", "backdrop",
			"style", style(
				decl{"background-color", BackdropColor},
				decl{"position", "fixed"},
				decl{"left", "0"}, decl{"top", "0"}, decl{"bottom", "0"}, decl{"right", "0"},
			)))
	}

	pos := s.Positioning
	if pos.Measured {
		a := pos.AnchorRect
		root.AppendChild(element("div",
			"class", "anchor",
			"style", style(
				decl{"position", "fixed"},
				decl{"left", px(a.Left)}, decl{"top", px(a.Top)},
				decl{"width", px(a.Width)}, decl{"height", px(a.Height)},
			)))
	}

	root.AppendChild(popupNode(s))
	return root
}

func popupNode(s Scene) *html.Node {
	o, pos := s.Options, s.Positioning
	class := []string{"float-affixed", string(pos.Scheme)}
	if o.Prefab != affix.PrefabNone {
		class = append(class, string(o.Prefab))
	}

	ds := []decl{{"pointer-events", "auto"}}
	ds = append(ds, prefabStyles[o.Prefab]...)
	ds = append(ds, decl{"position", "fixed"}, decl{"top", "0"}, decl{"left", "0"})
	if pos.Measured {
		ds = append(ds, decl{"width", px(pos.PopupRect.Width)}, decl{"height", px(pos.PopupRect.Height)})
	}
	ds = append(ds, decl{"transform", fmt.Sprintf("translate(%gpx,%gpx)", pos.Translation.X, pos.Translation.Y)})

	n := element("div", "class", strings.Join(class, " "), "style", style(ds...))
	if b, ok := s.Bridge(); ok {
		n.AppendChild(bridgeNode(b, o))
	}
	if body := s.Content(); body != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	}
	return n
}

func bridgeNode(b affix.Bridge, o affix.Options) *html.Node {
	size := b.Local.Size()
	ds := []decl{{"position", "absolute"}, {"overflow", "visible"}}
	ds = append(ds, decl{"height", px(size.Y)}, decl{"width", px(size.X)})
	ds = append(ds, sideDecls(b)...)

	n := element("div", "class", "bridge", "style", style(ds...))
	svg := element("svg", "style", style(
		decl{"width", px(size.X)}, decl{"height", px(size.Y)}, decl{"overflow", "visible"},
	))
	svg.Namespace = "svg"
	g := element("g", "transform", b.Transform)
	g.Namespace = "svg"
	fill := element("path", "style", joinCSS("fill:white", cssOf(o.BridgeStyle)), "d", affix.ArrowPath)
	fill.Namespace = "svg"
	outline := element("path", "style", joinCSS("fill:#808080", cssOf(o.BridgeOutlineStyle)), "d", affix.ArrowOutlinePath)
	outline.Namespace = "svg"

	g.AppendChild(fill)
	g.AppendChild(outline)
	svg.AppendChild(g)
	n.AppendChild(svg)
	return n
}

// sideDecls positions the bridge box against the popup side it hangs from.
func sideDecls(b affix.Bridge) []decl {
	switch b.Side {
	case affix.SideBottom:
		return []decl{{"bottom", px(-b.Elevation)}, {"left", px(b.Offset)}}
	case affix.SideTop:
		return []decl{{"top", px(-b.Elevation)}, {"left", px(b.Offset)}}
	case affix.SideRight:
		return []decl{{"right", px(-b.Elevation)}, {"top", px(b.Offset)}}
	default:
		return []decl{{"left", px(-b.Elevation)}, {"top", px(b.Offset)}}
	}
}

// WriteHTML renders s as an HTML fragment.
func WriteHTML(w io.Writer, s Scene) error {
	if err := html.Render(w, HTML(s)); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
