package wisp

import "math"

// Color is an sRGB color with a fractional straight alpha, as in CSS rgba().
type Color struct {
	R, G, B uint8
	A       float64
}

func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Premultiplied returns the color as premultiplied [r, g, b, a] in [0, 1].
func (c Color) Premultiplied() [4]float64 {
	a := Clamp01(c.A)
	return [4]float64{
		float64(c.R) / 255 * a,
		float64(c.G) / 255 * a,
		float64(c.B) / 255 * a,
		a,
	}
}

type ColorStop struct {
	Offset float64
	Color  Color
}

// Gradient is a concentric radial gradient centered on (X, Y) running from
// radius R0 to R1. Stops follow canvas semantics: sorted by offset, ties kept
// in insertion order, colors padded past the first and last stop.
type Gradient struct {
	X, Y   float64
	R0, R1 float64
	stops  []ColorStop
}

func NewRadialGradient(x, y, r0, r1 float64) *Gradient {
	return &Gradient{X: x, Y: y, R0: r0, R1: r1}
}

// AddColorStop inserts a stop after any existing stops at the same offset.
// Offsets are clamped to [0, 1].
func (g *Gradient) AddColorStop(offset float64, c Color) {
	offset = Clamp01(offset)
	i := len(g.stops)
	for i > 0 && g.stops[i-1].Offset > offset {
		i--
	}
	g.stops = append(g.stops, ColorStop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = ColorStop{Offset: offset, Color: c}
}

func (g *Gradient) Stops() []ColorStop {
	out := make([]ColorStop, len(g.stops))
	copy(out, g.stops)
	return out
}

// Empty reports whether the gradient paints nothing at all.
func (g *Gradient) Empty() bool {
	return len(g.stops) == 0 || g.R1 == g.R0
}

// ColorAt evaluates the gradient at position t along its radius and returns
// a premultiplied color.
func (g *Gradient) ColorAt(t float64) [4]float64 {
	if len(g.stops) == 0 {
		return [4]float64{}
	}
	c := g.stops[0].Color.Premultiplied()
	for i := 0; i+1 < len(g.stops); i++ {
		a, b := g.stops[i].Offset, g.stops[i+1].Offset
		switch {
		case t >= b:
			c = g.stops[i+1].Color.Premultiplied()
		case t >= a:
			return lerp4(g.stops[i].Color.Premultiplied(), g.stops[i+1].Color.Premultiplied(), (t-a)/(b-a))
		}
	}
	return c
}

// At evaluates the gradient at pixel-space point (x, y).
func (g *Gradient) At(x, y float64) [4]float64 {
	if g.Empty() {
		return [4]float64{}
	}
	d := math.Hypot(x-g.X, y-g.Y)
	return g.ColorAt((d - g.R0) / (g.R1 - g.R0))
}

func lerp4(a, b [4]float64, t float64) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
