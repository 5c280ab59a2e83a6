// Package game hosts a wisp forest in an Ebiten window. The Ebiten loop plays
// the part of the browser's animation-frame primitive: every Draw flushes the
// forest's pending frame request onto an offscreen canvas.
package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/radialglo/wisp/internal/config"
	"github.com/radialglo/wisp/internal/frame"
	"github.com/radialglo/wisp/internal/wisp"
)

type Game struct {
	cfg     config.Config
	rng     *rand.Rand
	queue   *frame.Queue
	canvas  *Canvas
	forest  *wisp.Forest
	ambient ambient
	reloads chan config.Config
	errs    chan error

	width, height int

	paused  bool
	dialogs bool
	lastErr error
}

// NewGame prepares the canvas. The forest itself is built on the first
// Update, once the window size is known.
func NewGame(cfg config.Config, rng *rand.Rand, dialogs bool) (*Game, error) {
	canvas, err := NewCanvas()
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		rng:     rng,
		queue:   frame.NewQueue(),
		canvas:  canvas,
		reloads: make(chan config.Config, 1),
		errs:    make(chan error, 1),
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
		dialogs: dialogs,
	}, nil
}

// Reload hands a new configuration to the game loop. It is safe to call from
// any goroutine; only the latest pending config is kept.
func (g *Game) Reload(cfg config.Config) {
	for {
		select {
		case g.reloads <- cfg:
			return
		default:
		}
		select {
		case <-g.reloads:
		default:
		}
	}
}

// ReportError records an error from outside the game loop, e.g. a config
// watcher, for the status line. Errors arriving faster than frames are only logged.
func (g *Game) ReportError(err error) {
	log.Printf("Error: %v", err)
	select {
	case g.errs <- err:
	default:
	}
}

func (g *Game) Update() error {
	if g.forest == nil {
		if err := g.rebuild(g.cfg); err != nil {
			return err
		}
		g.startAudio(g.cfg.Audio)
	}

	select {
	case cfg := <-g.reloads:
		g.applyReload(cfg)
	case err := <-g.errs:
		g.lastErr = err
	default:
	}

	if b := g.forest.Bounds(); int(b.W) != g.width || int(b.H) != g.height {
		g.forest.Resize(g.width, g.height)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.rebuild(g.cfg); err != nil {
			g.lastErr = err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		if err := g.openAudioDialog(); err != nil {
			g.lastErr = err
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.paused {
		g.queue.Flush(time.Now())
	}
	if img := g.canvas.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	g.drawStatus(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	if !g.cfg.Verbose && g.lastErr == nil {
		return
	}

	status := ""
	if g.forest != nil {
		status = fmt.Sprintf("%s: %d wisps (%s) %.0f TPS", g.cfg.ID, g.forest.Len(), g.cfg.Style, ebiten.ActualTPS())
	}
	if g.paused {
		status += " | paused"
	}
	if g.ambient.playing() {
		status += fmt.Sprintf(" | %s %s", formatDuration(g.ambient.elapsed()), levelBar(g.ambient.level(), 16))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window so the wisps always fill the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// rebuild replaces the running forest. On error the old forest keeps running.
func (g *Game) rebuild(cfg config.Config) error {
	next, err := wisp.New(wisp.Options{
		Count:  cfg.Count,
		Style:  cfg.Style,
		Width:  g.width,
		Height: g.height,
	}, g.canvas, g.queue, g.rng)
	if err != nil {
		return err
	}

	if g.forest != nil {
		g.forest.Stop()
	}
	g.forest = next
	log.Printf("Forest %q: %d wisps, style %s, %dx%d", cfg.ID, cfg.Count, cfg.Style, g.width, g.height)
	return nil
}

func (g *Game) applyReload(cfg config.Config) {
	if err := g.rebuild(cfg); err != nil {
		log.Printf("Reload rejected, keeping current forest: %v", err)
		g.lastErr = err
		return
	}
	if cfg.Audio != g.cfg.Audio {
		g.startAudio(cfg.Audio)
	}
	g.cfg = cfg
	g.lastErr = nil
}

func (g *Game) startAudio(a config.AudioConfig) {
	if a.Path == "" {
		return
	}
	if err := g.ambient.play(a.Path, a.Volume); err != nil {
		log.Printf("Failed to play %s: %v", a.Path, err)
		g.lastErr = err
		return
	}
	g.ambient.setPaused(g.paused)
	log.Printf("Playing %s", a.Path)
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.ambient.setPaused(g.paused)
	if g.paused {
		log.Println("Paused")
	} else {
		log.Println("Resumed")
	}
}

func (g *Game) openAudioDialog() error {
	if !g.dialogs {
		return nil
	}
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	audio := g.cfg.Audio
	audio.Path = filename
	if err := g.ambient.play(audio.Path, audio.Volume); err != nil {
		return err
	}
	g.ambient.setPaused(g.paused)
	g.cfg.Audio = audio
	return nil
}

// Close stops the forest and releases the soundtrack.
func (g *Game) Close() {
	if g.forest != nil {
		g.forest.Stop()
	}
	g.ambient.close()
}

// ShowError reports a fatal error in a dialog when dialogs are enabled.
func ShowError(title string, err error, dialogs bool) {
	log.Printf("Error: %v", err)
	if !dialogs {
		return
	}
	if derr := zenity.Error(err.Error(), zenity.Title(title)); derr != nil {
		log.Printf("Failed to show error dialog: %v", derr)
	}
}
