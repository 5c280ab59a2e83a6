package wisp

// recordingSurface is a Surface that only records what it was asked to do.
type recordingSurface struct {
	ops       []string
	w, h      int
	resizes   int
	clears    int
	fills     int
	arcs      [][5]float64
	gradients []*Gradient
	fill      *Gradient
}

func (s *recordingSurface) Resize(w, h int) {
	s.ops = append(s.ops, "resize")
	s.w, s.h = w, h
	s.resizes++
}

func (s *recordingSurface) ClearRect(x, y, w, h float64) {
	s.ops = append(s.ops, "clear")
	s.clears++
}

func (s *recordingSurface) BeginPath() {
	s.ops = append(s.ops, "begin")
}

func (s *recordingSurface) Arc(x, y, r, a0, a1 float64) {
	s.ops = append(s.ops, "arc")
	s.arcs = append(s.arcs, [5]float64{x, y, r, a0, a1})
}

func (s *recordingSurface) ClosePath() {
	s.ops = append(s.ops, "close")
}

func (s *recordingSurface) CreateRadialGradient(x, y, r0, r1 float64) *Gradient {
	s.ops = append(s.ops, "gradient")
	g := NewRadialGradient(x, y, r0, r1)
	s.gradients = append(s.gradients, g)
	return g
}

func (s *recordingSurface) SetFillGradient(g *Gradient) {
	s.ops = append(s.ops, "fillStyle")
	s.fill = g
}

func (s *recordingSurface) Fill() {
	s.ops = append(s.ops, "fill")
	s.fills++
}

func (s *recordingSurface) reset() {
	s.ops = nil
	s.arcs = nil
	s.gradients = nil
}
