// ABOUTME: Value types for overlay geometry: Vec2, Rect, Bounds
// ABOUTME: All operations return new values; nothing is mutated in place

package geom

import "math"

// Vec2 is a 2D point or offset in viewport coordinates.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Round rounds both components to the nearest integer, for cell-based hosts.
func (v Vec2) Round() Vec2 {
	return Vec2{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// Rect is an axis-aligned region. Left/Top is the minimum corner.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// R is shorthand for a Rect literal.
func R(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// RectAt builds a Rect of the given size with its minimum corner at min.
func RectAt(min, size Vec2) Rect {
	return Rect{Left: min.X, Top: min.Y, Width: size.X, Height: size.Y}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{X: r.Left, Y: r.Top} }

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() Vec2 { return Vec2{X: r.Left + r.Width, Y: r.Top + r.Height} }

// Right returns Left + Width.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns Top + Height.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Size returns (Width, Height).
func (r Rect) Size() Vec2 { return Vec2{X: r.Width, Y: r.Height} }

// Center returns the midpoint of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Left + r.Right()) * 0.5, Y: (r.Top + r.Bottom()) * 0.5}
}

// Inflate grows the rect outward by d on every side. Negative d shrinks it.
func (r Rect) Inflate(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Width: r.Width + d*2, Height: r.Height + d*2}
}

// Translate returns the rect moved by t.
func (r Rect) Translate(t Vec2) Rect {
	return Rect{Left: r.Left + t.X, Top: r.Top + t.Y, Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r. The right and bottom edges are outside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Horizontal returns the rect's extent along the x axis.
func (r Rect) Horizontal() Bounds { return Bounds{Min: r.Left, Max: r.Right()} }

// Vertical returns the rect's extent along the y axis.
func (r Rect) Vertical() Bounds { return Bounds{Min: r.Top, Max: r.Bottom()} }

// Bounds is a 1D interval along one axis.
type Bounds struct {
	Min, Max float64
}

// Extent returns Max - Min.
func (b Bounds) Extent() float64 { return b.Max - b.Min }

// Center returns the midpoint of the interval.
func (b Bounds) Center() float64 { return (b.Min + b.Max) * 0.5 }

// Clamp limits v to [lo, hi]. When lo > hi the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// MinOf returns the smallest value in xs, or 0 for an empty slice.
func MinOf(xs ...float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Min(m, x)
	}
	return m
}

// MaxOf returns the largest value in xs, or 0 for an empty slice.
func MaxOf(xs ...float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Max(m, x)
	}
	return m
}
