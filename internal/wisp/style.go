package wisp

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidConfig is returned when a forest is configured with an unknown style.
var ErrInvalidConfig = errors.New("invalid configuration")

// Style selects how a wisp's gradient color stops are laid out.
type Style int

const (
	// Jellyfish is transparent in the middle and brightest at the rim.
	Jellyfish Style = iota
	// Firefly is brightest at the core and fades out toward the rim.
	Firefly
	// Orb combines both: a bright core and a bright rim.
	Orb
	// Random picks one of the fixed styles per wisp.
	Random
)

// fixedStyles are the styles Random samples from.
var fixedStyles = [...]Style{Jellyfish, Firefly, Orb}

var styleNames = map[Style]string{
	Jellyfish: "jellyfish",
	Firefly:   "firefly",
	Orb:       "orb",
	Random:    "random",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle maps a style selector to its Style.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown style %q (want jellyfish, firefly, orb or random)", ErrInvalidConfig, name)
}

// resolve returns s itself, or a uniformly sampled fixed style for Random.
func (s Style) resolve(rng *rand.Rand) Style {
	if s != Random {
		return s
	}
	return fixedStyles[rng.Intn(len(fixedStyles))]
}

var (
	skyBlue      = Color{R: 64, G: 185, B: 249}
	electricBlue = Color{R: 1, G: 162, B: 255}
)

// paint adds the style's color stops to g. stop is the wisp's middle stop
// offset and op its current opacity.
func (s Style) paint(g *Gradient, stop, op float64) {
	switch s {
	case Jellyfish:
		g.AddColorStop(0, skyBlue.WithAlpha(0))
		g.AddColorStop(stop, skyBlue.WithAlpha(op*.2))
		g.AddColorStop(1, electricBlue.WithAlpha(op))
	case Firefly:
		g.AddColorStop(0, electricBlue.WithAlpha(op))
		g.AddColorStop(stop, skyBlue.WithAlpha(op*.2))
		g.AddColorStop(1, skyBlue.WithAlpha(0))
	case Orb:
		Jellyfish.paint(g, stop, op)
		Firefly.paint(g, stop, op)
	}
}
