package soundtrack

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio file")

// Track is an ambient audio file looped for as long as the backdrop runs.
type Track struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *positionTap
	ctrl     *beep.Ctrl
	playing  bool
}

// Open decodes a wav, mp3 or flac file. Nothing is played until Play.
func Open(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open soundtrack: %w", err)
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
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode soundtrack %s: %w", path, err)
	}

	t := &Track{
		file:     f,
		streamer: streamer,
		format:   format,
	}
	t.tap = newPositionTap(beep.Loop(-1, streamer), streamer.Len())
	t.ctrl = &beep.Ctrl{Streamer: t.tap}
	return t, nil
}

func (t *Track) Format() beep.Format { return t.format }

// Length is the duration of one pass through the track.
func (t *Track) Length() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// Position is the playback offset inside the current loop.
func (t *Track) Position() time.Duration {
	return t.format.SampleRate.D(t.tap.offset())
}

// Play initializes the speaker for the track's sample rate and starts looping.
func (t *Track) Play() error {
	bufferSize := t.format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(t.format.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(t.ctrl)
	t.playing = true
	log.Printf("soundtrack playing, %s per loop", t.Length().Round(time.Second))
	return nil
}

func (t *Track) Pause()  { t.setPaused(true) }
func (t *Track) Resume() { t.setPaused(false) }

func (t *Track) Paused() bool {
	if !t.playing {
		return t.ctrl.Paused
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.ctrl.Paused
}

func (t *Track) setPaused(paused bool) {
	if !t.playing {
		t.ctrl.Paused = paused
		return
	}
	speaker.Lock()
	t.ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback and releases the file.
func (t *Track) Close() error {
	if t.playing {
		speaker.Clear()
		t.playing = false
	}
	err := t.streamer.Close()
	if cerr := t.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}
