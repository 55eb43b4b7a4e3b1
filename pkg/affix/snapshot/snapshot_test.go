// ABOUTME: Tests for HTML, PNG and half-block snapshots of placed overlays
// ABOUTME: Parses the HTML back with x/net/html and samples diagram pixels

package snapshot

import (
	"bytes"
	goimage "image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

func scene(opts ...affix.Option) Scene {
	o := affix.NewOptions(append([]affix.Option{affix.WithAlign(affix.AlignCenter)}, opts...)...)
	return Place(geom.R(100, 100, 50, 20), geom.V(80, 40), geom.V(400, 300), o, "hello")
}

func find(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, class); f != nil {
			return f
		}
	}
	return nil
}

func findTag(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findTag(c, tag)...)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parse(t *testing.T, s Scene) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteHTML(&buf, s); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestPlace(t *testing.T) {
	t.Parallel()

	s := scene(affix.WithBridge(affix.BridgeArrow))
	if got, want := s.Positioning.Translation, geom.V(85, 140); got != want {
		t.Errorf("translation = %v, want %v", got, want)
	}
	if got := s.Positioning.Scheme; got != affix.EdgeUnder {
		t.Errorf("scheme = %v, want under", got)
	}
}

func TestHTML_PopupAndBridge(t *testing.T) {
	t.Parallel()

	doc := parse(t, scene(affix.WithBridge(affix.BridgeArrow), affix.WithPrefab(affix.PrefabCallout)))

	popup := find(doc, "float-affixed")
	if popup == nil {
		t.Fatal("popup element missing")
	}
	if got := attr(popup, "class"); got != "float-affixed under callout" {
		t.Errorf("class = %q, want %q", got, "float-affixed under callout")
	}
	st := attr(popup, "style")
	for _, want := range []string{"transform:translate(85px,140px)", "border-radius:5px", "position:fixed", "width:80px"} {
		if !strings.Contains(st, want) {
			t.Errorf("popup style %q missing %q", st, want)
		}
	}

	bridge := find(popup, "bridge")
	if bridge == nil {
		t.Fatal("bridge element missing")
	}
	if st := attr(bridge, "style"); !strings.Contains(st, "top:-20px;left:20px") {
		t.Errorf("bridge style = %q, want top:-20px;left:20px", st)
	}
	gs := findTag(bridge, "g")
	if len(gs) != 1 {
		t.Fatalf("g elements = %d, want 1", len(gs))
	}
	if got, want := attr(gs[0], "transform"), "translate(20,10),rotate(180,0,0)"; got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
	paths := findTag(bridge, "path")
	if len(paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(paths))
	}
	if got := attr(paths[0], "d"); got != affix.ArrowPath {
		t.Errorf("fill path = %q, want %q", got, affix.ArrowPath)
	}
	if got := attr(paths[1], "d"); got != affix.ArrowOutlinePath {
		t.Errorf("outline path = %q, want %q", got, affix.ArrowOutlinePath)
	}
}

func TestHTML_BridgeStyles(t *testing.T) {
	t.Parallel()

	doc := parse(t, scene(affix.WithBridge(affix.BridgeArrow), affix.WithBridgeStyle("red", "stroke:blue")))
	paths := findTag(doc, "path")
	if len(paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(paths))
	}
	if got, want := attr(paths[0], "style"), "fill:white;fill:red"; got != want {
		t.Errorf("fill style = %q, want %q", got, want)
	}
	if got, want := attr(paths[1], "style"), "fill:#808080;stroke:blue"; got != want {
		t.Errorf("outline style = %q, want %q", got, want)
	}
}

func TestHTML_ContainerAndBackdrop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []affix.Option
		wantID       string
		wantBackdrop bool
	}{
		{"root", nil, RootID, false},
		{"named container", []affix.Option{affix.WithContainerID("menus")}, "menus", false},
		{"backdrop", []affix.Option{affix.WithOnClickOutside(func() {})}, RootID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, scene(tt.opts...))
			c := find(doc, "affix-container")
			if c == nil {
				t.Fatal("container missing")
			}
			if got := attr(c, "id"); got != tt.wantID {
				t.Errorf("id = %q, want %q", got, tt.wantID)
			}
			bd := find(doc, "backdrop")
			if (bd != nil) != tt.wantBackdrop {
				t.Errorf("backdrop present = %v, want %v", bd != nil, tt.wantBackdrop)
			}
			if bd != nil && !strings.Contains(attr(bd, "style"), BackdropColor) {
				t.Errorf("backdrop style = %q", attr(bd, "style"))
			}
			if find(doc, "bridge") != nil {
				t.Error("bridge rendered without the arrow option")
			}
		})
	}
}

func TestHTML_RenderHookAndUnmeasured(t *testing.T) {
	t.Parallel()

	s := scene(affix.WithRender(func(scheme affix.Edge, st affix.RenderState) string {
		return "edge " + string(scheme)
	}))
	doc := parse(t, s)
	popup := find(doc, "float-affixed")
	if popup == nil || popup.FirstChild == nil || popup.FirstChild.Data != "edge under" {
		t.Errorf("popup content does not come from the render hook")
	}

	un := Scene{Positioning: affix.NewPositioning(affix.EdgeOver), Options: affix.NewOptions(affix.WithBridge(affix.BridgeArrow)), Viewport: geom.V(10, 10)}
	doc = parse(t, un)
	if find(doc, "anchor") != nil || find(doc, "bridge") != nil {
		t.Error("unmeasured scene should render only the popup")
	}
	if got := attr(find(doc, "float-affixed"), "class"); got != "float-affixed over" {
		t.Errorf("class = %q, want %q", got, "float-affixed over")
	}
}

func TestImage_Pixels(t *testing.T) {
	t.Parallel()

	img, err := Image(scene(affix.WithBridge(affix.BridgeArrow)), 1)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.Bounds().Size(); got != goimage.Pt(400, 300) {
		t.Fatalf("size = %v, want 400x300", got)
	}
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"viewport", 5, 5, ColorViewport},
		{"anchor", 110, 105, ColorAnchor},
		{"popup body", 120, 160, ColorPopup},
		{"popup border", 85, 160, ColorOutline},
		{"arrow interior", 125, 135, ColorPopup},
		{"beside arrow", 106, 121, ColorViewport},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s at (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestImage_ScaleAndErrors(t *testing.T) {
	t.Parallel()

	img, err := Image(scene(), 0.5)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.Bounds().Size(); got != goimage.Pt(200, 150) {
		t.Errorf("scaled size = %v, want 200x150", got)
	}

	if _, err := Image(Scene{}, 1); err != ErrEmptyViewport {
		t.Errorf("err = %v, want ErrEmptyViewport", err)
	}
}

func TestWritePNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WritePNG(&buf, scene(), 1); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("png = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
}

func TestHalfBlock(t *testing.T) {
	t.Parallel()

	img := goimage.NewRGBA(goimage.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	lines := HalfBlock(img, 4)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if strings.Count(line, "▄") != 4 {
			t.Errorf("line %d has %d blocks, want 4", i, strings.Count(line, "▄"))
		}
		if !strings.HasPrefix(line, "\x1b[48;2;255;0;0m\x1b[38;2;255;0;0m") {
			t.Errorf("line %d missing colour escapes: %q", i, line)
		}
		if !strings.HasSuffix(line, "\x1b[0m") {
			t.Errorf("line %d missing reset", i)
		}
	}

	if got := HalfBlock(goimage.NewRGBA(goimage.Rect(0, 0, 3, 3)), 4); len(got) != 2 {
		t.Errorf("odd height lines = %d, want 2", len(got))
	}
	if got := HalfBlock(img, 0); got != nil {
		t.Errorf("zero cols = %v, want nil", got)
	}
	if got := HalfBlock(goimage.NewRGBA(goimage.Rect(0, 0, 8, 4)), 4); len(got) != 1 {
		t.Errorf("downscaled lines = %d, want 1", len(got))
	}
}
