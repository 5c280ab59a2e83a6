package game

import (
	_ "embed"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/radialglo/wisp/internal/wisp"
)

//go:embed shaders/radial_gradient.kage
var radialGradientKage []byte

// maxStops must match the uniform array sizes in radial_gradient.kage.
const maxStops = 8

// Canvas is a wisp.Surface backed by an offscreen Ebiten image. Paths are
// tessellated by the vector package and filled with a radial gradient shader.
type Canvas struct {
	img    *ebiten.Image
	shader *ebiten.Shader

	path    vector.Path
	started bool
	fill    *wisp.Gradient

	vs []ebiten.Vertex
	is []uint16
}

func NewCanvas() (*Canvas, error) {
	shader, err := ebiten.NewShader(radialGradientKage)
	if err != nil {
		return nil, fmt.Errorf("compile radial gradient shader: %w", err)
	}
	return &Canvas{shader: shader}, nil
}

// Image returns the offscreen image, or nil before the first Resize.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

func (c *Canvas) Resize(w, h int) {
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(max(w, 1), max(h, 1))
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	if c.img == nil {
		return
	}
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	c.img.SubImage(r).(*ebiten.Image).Clear()
}

func (c *Canvas) BeginPath() {
	c.path = vector.Path{}
	c.started = false
}

func (c *Canvas) Arc(x, y, r, startAngle, endAngle float64) {
	if !c.started {
		c.path.MoveTo(float32(x+r*math.Cos(startAngle)), float32(y+r*math.Sin(startAngle)))
		c.started = true
	}
	c.path.Arc(float32(x), float32(y), float32(r), float32(startAngle), float32(endAngle), vector.Clockwise)
}

func (c *Canvas) ClosePath() {
	c.path.Close()
}

func (c *Canvas) CreateRadialGradient(x, y, r0, r1 float64) *wisp.Gradient {
	return wisp.NewRadialGradient(x, y, r0, r1)
}

func (c *Canvas) SetFillGradient(g *wisp.Gradient) {
	c.fill = g
}

func (c *Canvas) Fill() {
	if c.img == nil || c.fill == nil || c.fill.Empty() {
		return
	}

	c.vs, c.is = c.path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	if len(c.is) == 0 {
		return
	}
	for i := range c.vs {
		c.vs[i].SrcX = 0
		c.vs[i].SrcY = 0
		c.vs[i].ColorR = 1
		c.vs[i].ColorG = 1
		c.vs[i].ColorB = 1
		c.vs[i].ColorA = 1
	}

	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: gradientUniforms(c.fill),
	}
	c.img.DrawTrianglesShader(c.vs, c.is, c.shader, op)
}

// gradientUniforms packs g for radial_gradient.kage. Stops past maxStops are dropped.
func gradientUniforms(g *wisp.Gradient) map[string]any {
	stops := g.Stops()
	if len(stops) > maxStops {
		stops = stops[:maxStops]
	}

	offsets := make([]float32, maxStops)
	colors := make([]float32, 4*maxStops)
	for i, s := range stops {
		offsets[i] = float32(s.Offset)
		p := s.Color.Premultiplied()
		for j := range p {
			colors[4*i+j] = float32(p[j])
		}
	}

	return map[string]any{
		"Center":  []float32{float32(g.X), float32(g.Y)},
		"Inner":   float32(g.R0),
		"Outer":   float32(g.R1),
		"Count":   float32(len(stops)),
		"Offsets": offsets,
		"Colors":  colors,
	}
}
