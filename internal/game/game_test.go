package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/radialglo/wisp/internal/config"
	"github.com/radialglo/wisp/internal/wisp"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 3*time.Second + 900*time.Millisecond, "12:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestLevelBar(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{0, "[....]"},
		{.5, "[##..]"},
		{1, "[####]"},
		{7, "[####]"},
		{-1, "[....]"},
	}
	for _, tt := range tests {
		if got := levelBar(tt.level, 4); got != tt.want {
			t.Errorf("levelBar(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelTap(t *testing.T) {
	// constant full-scale signal
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	tap := newLevelTap(src)

	buf := make([][2]float64, 512)
	for i := 0; i < 50; i++ {
		if n, ok := tap.Stream(buf); n != len(buf) || !ok {
			t.Fatalf("Stream() = %d, %v", n, ok)
		}
	}
	if got := tap.Level(); math.Abs(got-1) > 1e-6 {
		t.Errorf("Level() = %v, want ~1", got)
	}
	if tap.Err() != nil {
		t.Errorf("Err() = %v", tap.Err())
	}

	silent := newLevelTap(beep.Silence(-1))
	silent.Stream(buf)
	if got := silent.Level(); got != 0 {
		t.Errorf("silent Level() = %v, want 0", got)
	}
}

func TestDecodeAudio_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hum"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := decodeAudio(txt); err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("decodeAudio(.txt) error = %v, want unsupported file type", err)
	}

	bad := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(bad, []byte("not a riff"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := decodeAudio(bad); err == nil {
		t.Error("decodeAudio(broken.wav) error = nil")
	}

	if _, _, _, err := decodeAudio(filepath.Join(dir, "missing.mp3")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("decodeAudio(missing) error = %v, want not exist", err)
	}

	var a ambient
	if a.playing() || a.level() != 0 || a.elapsed() != 0 {
		t.Error("idle ambient reports playback")
	}
}

func TestGradientUniforms(t *testing.T) {
	g := wisp.NewRadialGradient(10, 20, 0, 5)
	g.AddColorStop(0, wisp.Color{R: 255, A: 1})
	g.AddColorStop(1, wisp.Color{B: 255, A: .5})

	u := gradientUniforms(g)
	if got := u["Center"].([]float32); got[0] != 10 || got[1] != 20 {
		t.Errorf("Center = %v", got)
	}
	if u["Inner"].(float32) != 0 || u["Outer"].(float32) != 5 || u["Count"].(float32) != 2 {
		t.Errorf("Inner/Outer/Count = %v/%v/%v", u["Inner"], u["Outer"], u["Count"])
	}

	offsets := u["Offsets"].([]float32)
	colors := u["Colors"].([]float32)
	if len(offsets) != maxStops || len(colors) != 4*maxStops {
		t.Fatalf("uniform sizes = %d, %d", len(offsets), len(colors))
	}
	if offsets[0] != 0 || offsets[1] != 1 {
		t.Errorf("Offsets = %v", offsets[:2])
	}
	want := []float32{1, 0, 0, 1, 0, 0, .5, .5}
	for i, w := range want {
		if colors[i] != w {
			t.Errorf("Colors[%d] = %v, want %v", i, colors[i], w)
		}
	}
}

func TestGradientUniforms_TruncatesStops(t *testing.T) {
	g := wisp.NewRadialGradient(0, 0, 0, 1)
	for i := 0; i < maxStops+3; i++ {
		g.AddColorStop(float64(i)/float64(maxStops+3), wisp.Color{A: 1})
	}
	if got := gradientUniforms(g)["Count"].(float32); got != maxStops {
		t.Errorf("Count = %v, want %d", got, maxStops)
	}
}

func TestGame_ReloadKeepsLatest(t *testing.T) {
	g := &Game{reloads: make(chan config.Config, 1)}

	first := config.Default()
	first.Count = 1
	second := config.Default()
	second.Count = 2

	g.Reload(first)
	g.Reload(second)

	select {
	case cfg := <-g.reloads:
		if cfg.Count != 2 {
			t.Errorf("pending reload count = %d, want 2", cfg.Count)
		}
	default:
		t.Fatal("no reload pending")
	}
}

func TestGame_ReportError(t *testing.T) {
	g := &Game{errs: make(chan error, 1)}
	g.ReportError(errors.New("first"))
	g.ReportError(errors.New("second")) // dropped, not blocking

	if err := <-g.errs; err.Error() != "first" {
		t.Errorf("pending error = %v, want first", err)
	}
}
