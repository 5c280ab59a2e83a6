package game

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const levelSmoothing = 0.6

// levelTap wraps a beep.Streamer and keeps a smoothed loudness of what was
// last streamed, so the HUD can show the soundtrack is alive.
type levelTap struct {
	Source beep.Streamer
	level  float64
	mu     sync.RWMutex
}

func newLevelTap(src beep.Streamer) *levelTap {
	return &levelTap{Source: src}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		var sumSquares float64
		for i := 0; i < n; i++ {
			mono := (samples[i][0] + samples[i][1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(n))

		t.mu.Lock()
		t.level = levelSmoothing*t.level + (1-levelSmoothing)*math.Pow(rms, 0.3)
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

func (t *levelTap) Level() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.level
}

// ambient loops a single soundtrack under the animation.
type ambient struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *levelTap
	path     string
	initDone bool
}

func decodeAudio(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, streamer, format, nil
}

// play replaces the current soundtrack with path, looped forever.
// volume is in log2 units, 0 leaves the track unchanged.
func (a *ambient) play(path string, volume float64) error {
	f, streamer, format, err := decodeAudio(path)
	if err != nil {
		return err
	}

	tap := newLevelTap(beep.Loop(-1, streamer))
	vol := &effects.Volume{Streamer: tap, Base: 2, Volume: volume}
	ctrl := &beep.Ctrl{Streamer: vol, Paused: false}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !a.initDone || a.format.SampleRate != format.SampleRate {
		if a.initDone {
			speaker.Clear()
		}
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
		a.initDone = true
	} else {
		speaker.Clear()
	}

	a.closeTrack()
	a.file = f
	a.streamer = streamer
	a.format = format
	a.ctrl = ctrl
	a.tap = tap
	a.path = path

	speaker.Play(ctrl)
	return nil
}

func (a *ambient) setPaused(paused bool) {
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = paused
	speaker.Unlock()
}

// elapsed is the position inside the current loop iteration.
func (a *ambient) elapsed() time.Duration {
	if a.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := a.streamer.Position()
	speaker.Unlock()
	return a.format.SampleRate.D(pos)
}

func (a *ambient) level() float64 {
	if a.tap == nil {
		return 0
	}
	return a.tap.Level()
}

func (a *ambient) playing() bool {
	return a.streamer != nil
}

func (a *ambient) closeTrack() {
	if a.streamer != nil {
		_ = a.streamer.Close()
		a.streamer = nil
	}
	if a.file != nil {
		_ = a.file.Close()
		a.file = nil
	}
}

func (a *ambient) close() {
	if a.initDone {
		speaker.Clear()
	}
	a.closeTrack()
}
