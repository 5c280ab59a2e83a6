// Package raster is a CPU wisp.Surface backed by an *image.RGBA, for hosts
// without a GPU such as headless recording.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/radialglo/wisp/internal/wisp"
)

type point struct{ x, y float64 }

type subpath struct {
	points []point
	closed bool
}

// Canvas rasterizes arc paths with golang.org/x/image/vector and composites
// the fill gradient with draw.Over.
type Canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	paths []subpath
	fill  *wisp.Gradient
}

func New() *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, 0, 0)),
		z:   vector.NewRasterizer(0, 0),
	}
}

// Image returns the backing image. It is replaced by Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Resize(w, h int) {
	if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) BeginPath() {
	c.paths = c.paths[:0]
}

// arcSegments picks a polyline resolution fine enough that wisps look round.
func arcSegments(r, sweep float64) int {
	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * math.Max(24, 4*r)))
	return max(n, 1)
}

func (c *Canvas) Arc(x, y, r, startAngle, endAngle float64) {
	if len(c.paths) == 0 || c.paths[len(c.paths)-1].closed {
		c.paths = append(c.paths, subpath{})
	}
	sp := &c.paths[len(c.paths)-1]

	n := arcSegments(r, endAngle-startAngle)
	for i := 0; i <= n; i++ {
		a := startAngle + (endAngle-startAngle)*float64(i)/float64(n)
		sp.points = append(sp.points, point{x + r*math.Cos(a), y + r*math.Sin(a)})
	}
}

func (c *Canvas) ClosePath() {
	if len(c.paths) > 0 {
		c.paths[len(c.paths)-1].closed = true
	}
}

func (c *Canvas) CreateRadialGradient(x, y, r0, r1 float64) *wisp.Gradient {
	return wisp.NewRadialGradient(x, y, r0, r1)
}

func (c *Canvas) SetFillGradient(g *wisp.Gradient) {
	c.fill = g
}

func (c *Canvas) Fill() {
	if c.fill == nil || c.fill.Empty() {
		return
	}
	bounds := c.pathBounds().Intersect(c.img.Bounds())
	if bounds.Empty() {
		return
	}

	c.z.Reset(bounds.Dx(), bounds.Dy())
	c.z.DrawOp = draw.Over
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	for _, sp := range c.paths {
		if len(sp.points) < 3 {
			continue
		}
		p := sp.points[0]
		c.z.MoveTo(float32(p.x-ox), float32(p.y-oy))
		for _, p := range sp.points[1:] {
			c.z.LineTo(float32(p.x-ox), float32(p.y-oy))
		}
		c.z.ClosePath()
	}
	c.z.Draw(c.img, bounds, gradientImage{c.fill}, bounds.Min)
}

func (c *Canvas) pathBounds() image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range c.paths {
		for _, p := range sp.points {
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// gradientImage presents a wisp.Gradient as an unbounded image, sampled at
// pixel centers.
type gradientImage struct {
	g *wisp.Gradient
}

var gradientBounds = image.Rect(-1<<24, -1<<24, 1<<24, 1<<24)

func (gi gradientImage) ColorModel() color.Model { return color.RGBA64Model }

func (gi gradientImage) Bounds() image.Rectangle { return gradientBounds }

func (gi gradientImage) At(x, y int) color.Color { return gi.RGBA64At(x, y) }

func (gi gradientImage) RGBA64At(x, y int) color.RGBA64 {
	p := gi.g.At(float64(x)+.5, float64(y)+.5)
	return color.RGBA64{
		R: uint16(p[0]*0xffff + .5),
		G: uint16(p[1]*0xffff + .5),
		B: uint16(p[2]*0xffff + .5),
		A: uint16(p[3]*0xffff + .5),
	}
}
