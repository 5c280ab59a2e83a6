package wisp

import (
	"math/rand"
	"sync"
	"time"

	"github.com/radialglo/wisp/internal/frame"
)

// Options configures a Forest.
type Options struct {
	Count  int
	Style  string // jellyfish, firefly, orb or random
	Width  int
	Height int
}

// Forest owns a fixed population of wisps and redraws all of them on every
// frame the scheduler hands it. Frames never overlap, whichever goroutine the
// scheduler runs them on.
type Forest struct {
	wisps   []*Wisp
	surface Surface
	sched   frame.Scheduler

	mu      sync.Mutex // held for a whole frame
	bounds  Bounds
	pending frame.ID
	running bool
	frames  uint64
}

// New validates opts, creates the wisps, sizes the surface and starts the
// loop by drawing the first frame. An unknown style returns an error wrapping
// ErrInvalidConfig before anything is created.
func New(opts Options, surface Surface, sched frame.Scheduler, rng *rand.Rand) (*Forest, error) {
	style, err := ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	f := &Forest{
		surface: surface,
		sched:   sched,
		bounds:  Bounds{W: float64(opts.Width), H: float64(opts.Height)},
	}

	f.wisps = make([]*Wisp, max(opts.Count, 0))
	for i := range f.wisps {
		f.wisps[i] = newWisp(f.bounds, style.resolve(rng), rng)
	}

	surface.Resize(opts.Width, opts.Height)

	f.running = true
	f.draw(time.Now())
	return f, nil
}

// draw is the loop body. The next frame is requested before any work so the
// loop keeps its cadence.
func (f *Forest) draw(time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return
	}

	f.pending = f.sched.RequestFrame(f.draw)
	f.frames++

	f.surface.ClearRect(0, 0, f.bounds.W, f.bounds.H)

	for _, w := range f.wisps {
		w.Fade()
		w.Move(f.bounds)
		w.Draw(f.surface)
	}
}

// Stop cancels the pending frame. The loop cannot be restarted; build a new
// Forest instead.
func (f *Forest) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return
	}
	f.running = false
	f.sched.CancelFrame(f.pending)
}

// Resize changes the area wisps bounce in and resizes the surface.
func (f *Forest) Resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bounds = Bounds{W: float64(w), H: float64(h)}
	f.surface.Resize(w, h)
}

// Wisps returns the population. Reading it while frames run on another
// goroutine is racy.
func (f *Forest) Wisps() []*Wisp {
	return f.wisps
}

func (f *Forest) Len() int {
	return len(f.wisps)
}

func (f *Forest) Bounds() Bounds {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds
}

// Frames is the number of frames drawn, including the first one drawn by New.
func (f *Forest) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
