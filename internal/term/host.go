package term

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-network/internal/config"
	"github.com/iburimskiy/particle-network/internal/particles"
)

// Track is the optional soundtrack; it follows terminal focus.
type Track interface {
	Pause()
	Resume()
}

type Options struct {
	CellWidth, CellHeight float64
	TicksPerSecond        int
	Background            color.RGBA
	Track                 Track
}

// Host drives a particle loop on a terminal screen. Frames come from a ticker;
// resize, focus and key events arrive from a polling goroutine.
type Host struct {
	screen tcell.Screen
	loop   *particles.Loop
	canvas *Canvas
	opts   Options
}

// New wraps an initialized screen and asks the loop to match its size.
func New(screen tcell.Screen, loop *particles.Loop, opts Options) *Host {
	cols, rows := screen.Size()
	h := &Host{
		screen: screen,
		loop:   loop,
		canvas: NewCanvas(cols, rows, opts.CellWidth, opts.CellHeight, opts.Background),
		opts:   opts,
	}
	loop.RequestResize(h.canvas.FieldSize())
	return h
}

func (h *Host) Canvas() *Canvas { return h.canvas }

// Run renders frames until ctx is done or a quit key is pressed.
func (h *Host) Run(ctx context.Context) error {
	tps := max(h.opts.TicksPerSecond, 1)
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go h.pump(ctx, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.frame()
		}
	}
}

// pump forwards screen events until the screen is finalized or ctx is done.
func (h *Host) pump(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (h *Host) frame() {
	if !h.loop.Tick(h.canvas) {
		return
	}
	h.canvas.Flush(h.screen)
}

// handle applies one event and reports whether the host keeps running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || (ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0)) {
			return false
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.canvas.Resize(cols, rows)
		h.loop.RequestResize(h.canvas.FieldSize())
		h.screen.Sync()

	case *tcell.EventFocus:
		if ev.Focused {
			h.loop.Resume()
			if h.opts.Track != nil {
				h.opts.Track.Resume()
			}
		} else {
			h.loop.Suspend()
			if h.opts.Track != nil {
				h.opts.Track.Pause()
			}
		}
	}
	return true
}

// Run opens the terminal, builds the field at the terminal's size and blocks
// until ctx is done or the user quits.
func Run(ctx context.Context, cfg config.Config, src particles.Source, track Track) error {
	settings, err := cfg.FieldSettings()
	if err != nil {
		return err
	}
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()
	screen.HideCursor()

	cols, rows := screen.Size()
	w, h := fieldSize(cols, rows, cfg.CellWidth, cfg.CellHeight)
	loop := particles.NewLoop(particles.NewField(settings, src, float64(w), float64(h)), time.Duration(cfg.ResizeDebounce))
	log.Printf("terminal backdrop %dx%d cells, field %dx%d", cols, rows, w, h)

	return New(screen, loop, Options{
		CellWidth:      cfg.CellWidth,
		CellHeight:     cfg.CellHeight,
		TicksPerSecond: cfg.TicksPerSecond,
		Background:     bg,
		Track:          track,
	}).Run(ctx)
}
