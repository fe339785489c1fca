package particles

import (
	"log"
	"sync"
	"time"
)

type State int

const (
	Running State = iota
	// Suspended means the host scheduler has stopped delivering frames.
	Suspended
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

type Stats struct {
	Ticks       uint64
	Connections int // lines drawn by the last render
	Resizes     int
}

type resizeRequest struct {
	width, height int
	at            time.Time
}

// Loop drives a Field one step per host frame. Tick, Advance and Render must be
// called from a single goroutine; RequestResize, Suspend and Resume may be
// called from any goroutine.
type Loop struct {
	field    *Field
	debounce time.Duration
	now      func() time.Time

	mu            sync.Mutex
	width, height int // last applied size
	pending       *resizeRequest
	state         State

	stats Stats
}

func NewLoop(field *Field, debounce time.Duration) *Loop {
	size := field.Size()
	return &Loop{
		field:    field,
		debounce: debounce,
		now:      time.Now,
		width:    int(size.X),
		height:   int(size.Y),
	}
}

func (l *Loop) Field() *Field { return l.field }
func (l *Loop) Stats() Stats  { return l.stats }

func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) Suspend() { l.setState(Suspended) }
func (l *Loop) Resume()  { l.setState(Running) }

func (l *Loop) setState(s State) {
	l.mu.Lock()
	prev := l.state
	l.state = s
	l.mu.Unlock()

	if prev != s {
		log.Printf("particle loop %s", s)
	}
}

// RequestResize records a new surface size. It is applied at the start of a
// later tick once no further request has arrived for the debounce window, so a
// burst of resize events costs a single repopulation.
func (l *Loop) RequestResize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if width == l.width && height == l.height {
		// back to the current size: nothing left to apply
		l.pending = nil
		return
	}
	if l.pending != nil && l.pending.width == width && l.pending.height == height {
		return
	}
	l.pending = &resizeRequest{width: width, height: height, at: l.now()}
}

// Pending reports whether a resize is waiting to be applied.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending != nil
}

func (l *Loop) applyResize() {
	l.mu.Lock()
	req := l.pending
	if req == nil || l.now().Sub(req.at) < l.debounce {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.width, l.height = req.width, req.height
	l.mu.Unlock()

	l.field.Resize(float64(req.width), float64(req.height))
	l.stats.Resizes++
	log.Printf("particle field resized to %dx%d, %d particles", req.width, req.height, l.field.Len())
}

// Advance applies a due resize and moves every particle one step. It reports
// false without doing anything while the loop is suspended.
func (l *Loop) Advance() bool {
	if l.State() == Suspended {
		return false
	}
	l.applyResize()
	l.field.Update()
	l.stats.Ticks++
	return true
}

// Render clears the surface and draws the current particles and connections.
func (l *Loop) Render(s Surface) {
	s.Clear()
	hue := l.field.settings.Hue
	for i := range l.field.particles {
		l.field.particles[i].Render(s, hue)
	}
	l.stats.Connections = l.field.RenderConnections(s)
}

// Tick runs one full frame: clear, update and draw each particle, then draw
// the connections.
func (l *Loop) Tick(s Surface) bool {
	if l.State() == Suspended {
		return false
	}
	l.applyResize()

	s.Clear()
	f := l.field
	for i := range f.particles {
		f.particles[i].Update(f.size)
		f.particles[i].Render(s, f.settings.Hue)
	}
	l.stats.Connections = f.RenderConnections(s)
	l.stats.Ticks++
	return true
}
