// ABOUTME: Raster diagram of a Scene: viewport, anchor, popup and bridge arrow
// ABOUTME: Draws with x/image/draw, encodes PNG, and previews as ANSI half-blocks

package snapshot

import (
	"errors"
	"fmt"
	goimage "image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

// ErrEmptyViewport is returned when the scene has no drawable area.
var ErrEmptyViewport = errors.New("snapshot: empty viewport")

// Palette colours of the diagram.
var (
	ColorViewport = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	ColorBackdrop = color.NRGBA{A: 0x2b}
	ColorAnchor   = color.RGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}
	ColorPopup    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorOutline  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	ColorShadow   = color.NRGBA{A: 0x60}
)

// Image draws s at one pixel per viewport unit, then resamples by scale.
// A non-positive scale means 1.
func Image(s Scene, scale float64) (*goimage.RGBA, error) {
	w, h := int(math.Ceil(s.Viewport.X)), int(math.Ceil(s.Viewport.Y))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyViewport
	}
	dst := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	fill(dst, dst.Bounds(), ColorViewport, draw.Src)

	pos := s.Positioning
	if pos.Measured {
		fill(dst, pixelRect(pos.AnchorRect), ColorAnchor, draw.Src)
		popup := pixelRect(pos.PopupRect)
		if s.Options.Prefab != affix.PrefabNone {
			fill(dst, popup.Add(goimage.Pt(2, 2)), ColorShadow, draw.Over)
		}
		fill(dst, popup, ColorPopup, draw.Src)
		stroke(dst, popup, ColorOutline)
		if b, ok := s.Bridge(); ok {
			drawArrow(dst, b, pos.PopupRect)
		}
	}
	if s.Options.OnClickOutside != nil {
		fill(dst, dst.Bounds(), ColorBackdrop, draw.Over)
	}

	if scale <= 0 || scale == 1 {
		return dst, nil
	}
	sw := max(1, int(math.Round(float64(w)*scale)))
	sh := max(1, int(math.Round(float64(h)*scale)))
	scaled := goimage.NewRGBA(goimage.Rect(0, 0, sw, sh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), dst, dst.Bounds(), draw.Over, nil)
	return scaled, nil
}

// WritePNG encodes the diagram of s as PNG.
func WritePNG(w io.Writer, s Scene, scale float64) error {
	img, err := Image(s, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func pixelRect(r geom.Rect) goimage.Rectangle {
	return goimage.Rect(
		int(math.Round(r.Left)), int(math.Round(r.Top)),
		int(math.Round(r.Right())), int(math.Round(r.Bottom())),
	)
}

func fill(dst draw.Image, r goimage.Rectangle, c color.Color, op draw.Op) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &goimage.Uniform{C: c}, goimage.Point{}, op)
}

func stroke(dst draw.Image, r goimage.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fill(dst, goimage.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c, draw.Src)
	fill(dst, goimage.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c, draw.Src)
	fill(dst, goimage.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c, draw.Src)
	fill(dst, goimage.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c, draw.Src)
}

// arrowTriangle returns the base corners and tip of the arrow inside the bridge
// box. The tip points away from the popup, toward the anchor.
func arrowTriangle(b affix.Bridge, popup geom.Rect) (geom.Vec2, geom.Vec2, geom.Vec2) {
	box := b.Rect(popup)
	c := box.Center()
	switch b.Side {
	case affix.SideTop:
		return geom.V(box.Left, box.Bottom()), geom.V(box.Right(), box.Bottom()), geom.V(c.X, box.Top)
	case affix.SideBottom:
		return geom.V(box.Left, box.Top), geom.V(box.Right(), box.Top), geom.V(c.X, box.Bottom())
	case affix.SideLeft:
		return geom.V(box.Right(), box.Top), geom.V(box.Right(), box.Bottom()), geom.V(box.Left, c.Y)
	default:
		return geom.V(box.Left, box.Top), geom.V(box.Left, box.Bottom()), geom.V(box.Right(), c.Y)
	}
}

func drawArrow(dst *goimage.RGBA, b affix.Bridge, popup geom.Rect) {
	p0, p1, tip := arrowTriangle(b, popup)
	area := pixelRect(b.Rect(popup)).Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			p := geom.V(float64(x)+0.5, float64(y)+0.5)
			if !inTriangle(p, p0, p1, tip) {
				continue
			}
			c := color.Color(ColorPopup)
			if nearEdge(p, p0, tip) || nearEdge(p, p1, tip) {
				c = ColorOutline
			}
			dst.Set(x, y, c)
		}
	}
}

func cross(o, a, b geom.Vec2) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func inTriangle(p, a, b, c geom.Vec2) bool {
	d1, d2, d3 := cross(a, b, p), cross(b, c, p), cross(c, a, p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// nearEdge reports whether p lies within one pixel of segment ab.
func nearEdge(p, a, b geom.Vec2) bool {
	l := math.Hypot(b.X-a.X, b.Y-a.Y)
	if l == 0 {
		return false
	}
	return math.Abs(cross(a, b, p))/l < 1
}

// HalfBlock converts an image to ANSI art using the lower-half block character (▄).
// Each line covers two pixel rows: background is the top pixel, foreground the bottom.
// The image is scaled down to maxCols preserving aspect ratio.
func HalfBlock(img goimage.Image, maxCols int) []string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 || maxCols <= 0 {
		return nil
	}

	targetW, targetH := srcW, srcH
	if targetW > maxCols {
		targetH = max(1, targetH*maxCols/targetW)
		targetW = maxCols
	}

	scaled := img
	if targetW != srcW || targetH != srcH {
		dst := goimage.NewRGBA(goimage.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		scaled = dst
	}
	origin := scaled.Bounds().Min

	lines := make([]string, 0, (targetH+1)/2)
	for y := 0; y < targetH; y += 2 {
		var b strings.Builder
		for x := range targetW {
			tr, tg, tb := rgbAt(scaled, origin.X+x, origin.Y+y)
			var br, bg, bb uint8
			if y+1 < targetH {
				br, bg, bb = rgbAt(scaled, origin.X+x, origin.Y+y+1)
			}
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m")
		lines = append(lines, b.String())
	}
	return lines
}

func rgbAt(img goimage.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
