// Package record renders a wisp forest headlessly and writes its frames as
// PNG files. Frames are driven by the timer fallback scheduler.
package record

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/radialglo/wisp/internal/config"
	"github.com/radialglo/wisp/internal/frame"
	"github.com/radialglo/wisp/internal/raster"
	"github.com/radialglo/wisp/internal/wisp"
)

type Options struct {
	Frames int
	Dir    string
	Prefix string
}

// capture forwards frame requests and writes the surface after each frame
// until limit frames have been written.
type capture struct {
	sched   frame.Scheduler
	limit   int
	n       int
	mu      sync.Mutex // held while a frame is drawn and written
	stopped atomic.Bool
	onFrame func(n int) error
	done    chan error
}

func (c *capture) RequestFrame(cb frame.Callback) frame.ID {
	return c.sched.RequestFrame(func(now time.Time) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.stopped.Load() || c.n >= c.limit {
			return
		}
		cb(now)
		c.n++
		if err := c.onFrame(c.n); err != nil {
			c.finish(err)
			return
		}
		if c.n == c.limit {
			c.finish(nil)
		}
	})
}

func (c *capture) CancelFrame(id frame.ID) {
	c.sched.CancelFrame(id)
}

func (c *capture) finish(err error) {
	c.stopped.Store(true)
	c.done <- err
}

// Run records ro.Frames frames of a forest built from opts, then stops the
// forest. It returns the number of files written.
func Run(ctx context.Context, opts wisp.Options, ro Options, rng *rand.Rand) (int, error) {
	return run(ctx, opts, ro, rng, frame.NewTimer(config.FrameInterval))
}

func run(ctx context.Context, opts wisp.Options, ro Options, rng *rand.Rand, sched frame.Scheduler) (int, error) {
	if ro.Frames <= 0 {
		return 0, fmt.Errorf("%w: frame count must be positive, got %d", wisp.ErrInvalidConfig, ro.Frames)
	}
	if err := os.MkdirAll(ro.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	prefix := ro.Prefix
	if prefix == "" {
		prefix = "frame"
	}

	canvas := raster.New()
	var written atomic.Int64
	c := &capture{
		sched: sched,
		limit: ro.Frames,
		done:  make(chan error, 1),
	}
	c.onFrame = func(n int) error {
		path := filepath.Join(ro.Dir, fmt.Sprintf("%s_%04d.png", prefix, n))
		if err := writePNG(path, canvas); err != nil {
			return err
		}
		written.Store(int64(n))
		return nil
	}

	forest, err := wisp.New(opts, canvas, c, rng)
	if err != nil {
		return 0, err
	}
	log.Printf("Recording %d frames of %d wisps to %s", ro.Frames, forest.Len(), ro.Dir)

	select {
	case err := <-c.done:
		forest.Stop()
		return int(written.Load()), err
	case <-ctx.Done():
		c.stopped.Store(true)
		forest.Stop()
		c.mu.Lock()
		n := int(written.Load())
		c.mu.Unlock()
		return n, ctx.Err()
	}
}

func writePNG(path string, canvas *raster.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
