package soundtrack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func writeSilence(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ambient.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	return path
}

func TestOpenUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ambient.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Open(.ogg) = %v, want ErrUnsupported", err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) = %v, want os.ErrNotExist", err)
	}
}

func TestOpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil || errors.Is(err, ErrUnsupported) {
		t.Errorf("Open(corrupt) = %v, want decode error", err)
	}
}

func TestTrackLoopsAndReportsPosition(t *testing.T) {
	track, err := Open(writeSilence(t, 4410))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer track.Close()

	if got := track.Length(); got != 100*time.Millisecond {
		t.Errorf("Length() = %s, want 100ms", got)
	}
	if got := track.Position(); got != 0 {
		t.Errorf("Position() = %s before streaming", got)
	}

	buf := make([][2]float64, 3000)
	for i := 0; i < 2; i++ {
		n, ok := track.ctrl.Stream(buf)
		if n != len(buf) || !ok {
			t.Fatalf("Stream() = %d, %v; the loop should never drain", n, ok)
		}
	}

	// 6000 samples into a 4410 sample loop
	if got, want := track.Position(), track.Format().SampleRate.D(6000-4410); got != want {
		t.Errorf("Position() = %s, want %s", got, want)
	}
}

func TestPauseBeforePlay(t *testing.T) {
	track, err := Open(writeSilence(t, 441))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer track.Close()

	track.Pause()
	if !track.Paused() {
		t.Error("track not paused")
	}

	buf := make([][2]float64, 100)
	track.ctrl.Stream(buf)
	if track.Position() != 0 {
		t.Error("paused track advanced")
	}

	track.Resume()
	if track.Paused() {
		t.Error("track still paused")
	}
}

func TestCloseReleasesFile(t *testing.T) {
	track, err := Open(writeSilence(t, 441))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := track.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
