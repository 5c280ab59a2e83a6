package raster

import (
	"image"
	"math"
	"testing"

	"github.com/radialglo/wisp/internal/wisp"
)

func fillCircle(c *Canvas, x, y, r float64, g *wisp.Gradient) {
	c.BeginPath()
	c.Arc(x, y, r, 0, 2*math.Pi)
	c.ClosePath()
	c.SetFillGradient(g)
	c.Fill()
}

func TestCanvas_Resize(t *testing.T) {
	c := New()
	c.Resize(64, 32)
	if got := c.Image().Bounds(); got != image.Rect(0, 0, 64, 32) {
		t.Fatalf("Bounds() = %v", got)
	}
	img := c.Image()
	c.Resize(64, 32)
	if c.Image() != img {
		t.Error("same-size Resize reallocated the image")
	}
}

func TestCanvas_FillCircle(t *testing.T) {
	c := New()
	c.Resize(100, 100)

	g := c.CreateRadialGradient(50, 50, 0, 10)
	g.AddColorStop(0, wisp.Color{R: 255, G: 255, B: 255, A: 1})
	g.AddColorStop(1, wisp.Color{R: 255, G: 255, B: 255, A: 0})
	fillCircle(c, 50, 50, 10, g)

	img := c.Image()
	if a := img.RGBAAt(50, 50).A; a < 200 {
		t.Errorf("center alpha = %d, want > 200", a)
	}
	if a := img.RGBAAt(54, 50).A; a < 100 || a > 180 {
		t.Errorf("mid alpha = %d, want roughly half", a)
	}
	for _, p := range []image.Point{{70, 70}, {50, 62}, {0, 0}} {
		if a := img.RGBAAt(p.X, p.Y).A; a != 0 {
			t.Errorf("alpha at %v = %d, want 0 outside the circle", p, a)
		}
	}
}

func TestCanvas_PathClipsGradient(t *testing.T) {
	c := New()
	c.Resize(100, 100)

	// the gradient pads its last color far past the arc
	g := c.CreateRadialGradient(50, 50, 0, 2)
	g.AddColorStop(0, wisp.Color{B: 255, A: 1})
	g.AddColorStop(1, wisp.Color{B: 255, A: 1})
	fillCircle(c, 50, 50, 8, g)

	img := c.Image()
	if a := img.RGBAAt(55, 50).A; a != 255 {
		t.Errorf("alpha inside arc = %d, want 255", a)
	}
	if a := img.RGBAAt(60, 50).A; a != 0 {
		t.Errorf("alpha outside arc = %d, want 0", a)
	}
}

func TestCanvas_EmptyGradientPaintsNothing(t *testing.T) {
	c := New()
	c.Resize(40, 40)

	g := c.CreateRadialGradient(20, 20, 0, 0)
	g.AddColorStop(0, wisp.Color{R: 255, A: 1})
	fillCircle(c, 20, 20, 10, g)

	if a := c.Image().RGBAAt(20, 20).A; a != 0 {
		t.Errorf("alpha = %d, want 0", a)
	}
}

func TestCanvas_ClearRect(t *testing.T) {
	c := New()
	c.Resize(40, 40)

	g := c.CreateRadialGradient(20, 20, 0, 20)
	g.AddColorStop(0, wisp.Color{G: 255, A: 1})
	g.AddColorStop(1, wisp.Color{G: 255, A: 1})
	fillCircle(c, 20, 20, 15, g)

	c.ClearRect(0, 0, 20, 40)
	img := c.Image()
	if a := img.RGBAAt(15, 20).A; a != 0 {
		t.Errorf("cleared alpha = %d, want 0", a)
	}
	if a := img.RGBAAt(25, 20).A; a != 255 {
		t.Errorf("kept alpha = %d, want 255", a)
	}
}

func TestCanvas_OffscreenFill(t *testing.T) {
	c := New()
	c.Resize(20, 20)

	g := c.CreateRadialGradient(-50, -50, 0, 5)
	g.AddColorStop(0, wisp.Color{R: 255, A: 1})
	fillCircle(c, -50, -50, 5, g) // must not panic

	for _, px := range c.Image().Pix {
		if px != 0 {
			t.Fatal("offscreen fill touched the image")
		}
	}
}

func TestArcSegments(t *testing.T) {
	if n := arcSegments(1, 2*math.Pi); n < 24 {
		t.Errorf("small circle segments = %d, want >= 24", n)
	}
	if n := arcSegments(100, 2*math.Pi); n != 400 {
		t.Errorf("large circle segments = %d, want 400", n)
	}
	if n := arcSegments(5, 0); n != 1 {
		t.Errorf("empty sweep segments = %d, want 1", n)
	}
}
