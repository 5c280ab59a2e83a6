package wisp

// Surface is the subset of a 2D canvas context the wisps draw with.
// Paths are built from arcs only.
type Surface interface {
	// Resize sets the drawable area in pixels.
	Resize(w, h int)
	ClearRect(x, y, w, h float64)
	BeginPath()
	// Arc appends a clockwise arc around (x, y) from startAngle to endAngle, in radians.
	Arc(x, y, r, startAngle, endAngle float64)
	ClosePath()
	CreateRadialGradient(x, y, r0, r1 float64) *Gradient
	SetFillGradient(g *Gradient)
	// Fill paints the current path with the fill gradient.
	Fill()
}

// Bounds is the area wisps bounce inside of.
type Bounds struct {
	W, H float64
}
