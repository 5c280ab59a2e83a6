// Package wisp implements softly pulsing, drifting radial-gradient particles
// and the forest that animates them frame by frame.
package wisp

import (
	"math"
	"math/rand"

	"github.com/radialglo/wisp/internal/config"
)

// Wisp is a single particle.
//
// FR is a fade timer oscillating inside [0, HL]: DF is added every frame and
// flips sign once FR reaches either bound. Opacity peaks when FR is near 0,
// which is also when the wisp drifts slowest.
type Wisp struct {
	X, Y   float64
	R      float64
	DX, DY float64

	HL   float64 // upper bound of FR, scaled by radius
	FR   float64
	DF   float64
	Stop float64 // middle gradient stop offset

	Style Style
}

func newWisp(b Bounds, style Style, rng *rand.Rand) *Wisp {
	w := &Wisp{
		X:     b.W * rng.Float64(),
		Y:     b.H * rng.Float64(),
		R:     (config.MaxRadius-1)*rng.Float64() + 1,
		DX:    rng.Float64() * config.MaxX * randomSign(rng),
		DY:    rng.Float64() * config.MaxY * randomSign(rng),
		DF:    rng.Float64() + 1,
		Stop:  rng.Float64()*.2 + .4,
		Style: style,
	}
	w.HL = (float64(config.TTL) / config.FrameRate) * (w.R / config.MaxRadius)
	w.FR = rng.Float64() * w.HL
	return w
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() < .5 {
		return -1
	}
	return 1
}

// Fade advances the fade timer one step.
func (w *Wisp) Fade() {
	w.FR += w.DF
}

// Move drifts the wisp by its velocity scaled with the fade position and
// bounces off the edges of b.
func (w *Wisp) Move(b Bounds) {
	f := w.FR / w.HL
	w.X += f * w.DX
	w.Y += f * w.DY

	if w.X > b.W || w.X < 0 {
		w.DX = -w.DX
	}
	if w.Y > b.H || w.Y < 0 {
		w.DY = -w.DY
	}
}

// Opacity is 1 - FR/HL clamped to [0, 1].
func (w *Wisp) Opacity() float64 {
	return Clamp01(1 - w.FR/w.HL)
}

// Draw turns the fade around at the bounds and paints the wisp.
func (w *Wisp) Draw(s Surface) {
	if w.FR <= 0 || w.FR >= w.HL {
		w.DF = -w.DF
	}

	// the gradient radius shrinks with opacity, so it must not go negative
	op := w.Opacity()

	s.BeginPath()
	s.Arc(w.X, w.Y, w.R, 0, math.Pi*2)
	s.ClosePath()

	g := s.CreateRadialGradient(w.X, w.Y, 0, w.R*op)
	w.Style.paint(g, w.Stop, op)

	s.SetFillGradient(g)
	s.Fill()
}
