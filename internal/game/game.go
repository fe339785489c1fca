package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/particle-network/internal/config"
	"github.com/iburimskiy/particle-network/internal/particles"
)

// Track is the optional soundtrack playing under the backdrop.
type Track interface {
	Pause()
	Resume()
	Position() time.Duration
}

// Game hosts a particle loop in an ebiten window. Update advances the
// simulation, Draw renders it and Layout forwards window size changes.
type Game struct {
	loop       *particles.Loop
	track      Track
	background color.RGBA
	debug      bool

	focused bool
	started time.Time
}

func New(cfg config.Config, loop *particles.Loop, track Track) (*Game, error) {
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return &Game{
		loop:       loop,
		track:      track,
		background: bg,
		debug:      cfg.Debug,
		focused:    true,
		started:    time.Now(),
	}, nil
}

func (g *Game) Update() error {
	g.setFocused(ebiten.IsFocused())
	g.loop.Advance()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.loop.Render(screenSurface{img: screen, background: g.background})

	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	}
}

// Layout keeps the logical screen equal to the window so the field always
// covers the whole viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.loop.RequestResize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// setFocused mirrors a browser tab going to the background: an unfocused
// window stops the simulation and the soundtrack until focus returns.
func (g *Game) setFocused(focused bool) {
	if focused == g.focused {
		return
	}
	g.focused = focused

	if focused {
		g.loop.Resume()
		if g.track != nil {
			g.track.Resume()
		}
		return
	}
	g.loop.Suspend()
	if g.track != nil {
		g.track.Pause()
	}
}

func (g *Game) status() string {
	st := g.loop.Stats()
	size := g.loop.Field().Size()
	status := fmt.Sprintf("TPS %.0f  FPS %.0f  %dx%d  particles %d  links %d  resizes %d  up %s",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		int(size.X), int(size.Y),
		g.loop.Field().Len(), st.Connections, st.Resizes,
		formatDuration(time.Since(g.started)))
	if g.track != nil {
		status += "  track " + formatDuration(g.track.Position())
	}
	if g.loop.State() == particles.Suspended {
		status += "  [suspended]"
	}
	return status
}

// Run opens the window, builds the field at the configured window size and
// blocks until the window is closed.
func Run(cfg config.Config, src particles.Source, track Track) error {
	settings, err := cfg.FieldSettings()
	if err != nil {
		return err
	}
	field := particles.NewField(settings, src, float64(cfg.Width), float64(cfg.Height))
	g, err := New(cfg, particles.NewLoop(field, time.Duration(cfg.ResizeDebounce)), track)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Particle Network")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetTPS(cfg.TicksPerSecond)
	// keep Update running so focus loss is observed and reported to the loop
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
