package game

import (
	"image"
	"image/color"

	"github.com/Garsondee/tiny-voxel-engine/internal/config"
	"github.com/Garsondee/tiny-voxel-engine/internal/raster"
)

// Session is a windowless loop: a world, its canvas and an in-memory
// presenter. Tests and the headless report drive it tick by tick.
type Session struct {
	Loop   *Loop
	World  *World
	Canvas *image.RGBA
	Screen *MemoryPresenter
}

type sessionParams struct {
	width, height int
	cellSize      int
	radius        int
	speed         float64
	policy        CursorPolicy
	player        *raster.Vec
	cursor        Cursor
	palette       Palette
}

// SessionOption configures NewSession.
type SessionOption func(*sessionParams)

// WithCanvasSize sets the logical canvas size.
func WithCanvasSize(w, h int) SessionOption {
	return func(s *sessionParams) {
		s.width = w
		s.height = h
	}
}

// WithCellSize sets the grid spacing.
func WithCellSize(n int) SessionOption {
	return func(s *sessionParams) { s.cellSize = n }
}

// WithPlayer places the player at (x, y) with radius r.
func WithPlayer(x, y float64, r int) SessionOption {
	return func(s *sessionParams) {
		s.player = &raster.Vec{X: x, Y: y}
		s.radius = r
	}
}

// WithCursor starts the session with a known cursor.
func WithCursor(x, y float64) SessionOption {
	return func(s *sessionParams) { s.cursor = SomeCursor(raster.Vec{X: x, Y: y}) }
}

// WithSpeed sets the per-tick displacement.
func WithSpeed(v float64) SessionOption {
	return func(s *sessionParams) { s.speed = v }
}

// WithCursorPolicy picks the cursor behaviour when the pointer is absent.
func WithCursorPolicy(p CursorPolicy) SessionOption {
	return func(s *sessionParams) { s.policy = p }
}

// WithClearColor replaces the background colour.
func WithClearColor(c color.RGBA) SessionOption {
	return func(s *sessionParams) { s.palette.Clear = c }
}

// WithConfig copies the world settings from a loaded config.
func WithConfig(cfg config.Config) SessionOption {
	return func(s *sessionParams) {
		s.width, s.height = cfg.Width, cfg.Height
		s.cellSize = cfg.CellSize
		s.radius = cfg.Radius
		s.speed = cfg.Speed
		s.policy = CursorKeepLast
		if cfg.ClearCursorOutside {
			s.policy = CursorClearOutside
		}
	}
}

// NewSession builds a session. Defaults match config.Default.
func NewSession(opts ...SessionOption) *Session {
	def := config.Default()
	p := sessionParams{
		width:    def.Width,
		height:   def.Height,
		cellSize: def.CellSize,
		radius:   def.Radius,
		speed:    def.Speed,
		palette:  DefaultPalette,
	}
	for _, o := range opts {
		o(&p)
	}

	w := NewWorld(p.width, p.height, p.cellSize, p.radius)
	if p.player != nil {
		w.Player.Pos = *p.player
	}
	w.Cursor = p.cursor
	w.Speed = p.speed
	w.Policy = p.policy
	w.Palette = p.palette

	canvas := raster.NewCanvas(p.width, p.height)
	screen := NewMemoryPresenter()
	return &Session{
		Loop:   NewLoop(w, canvas, screen),
		World:  w,
		Canvas: canvas,
		Screen: screen,
	}
}

// Step delivers one input tick, then the redraw it requested. It returns
// false once the loop has exited.
func (s *Session) Step(in InputSnapshot) (bool, error) {
	if err := s.Loop.Dispatch(Event{Kind: EventInput, Input: in}); err != nil {
		return false, err
	}
	if s.Loop.RedrawPending() {
		if err := s.Loop.Dispatch(Event{Kind: EventRedraw}); err != nil {
			return false, err
		}
	}
	return !s.Loop.Exited(), nil
}

// DrawNow forces a redraw without an input tick.
func (s *Session) DrawNow() error {
	return s.Loop.Dispatch(Event{Kind: EventRedraw})
}

// RunTicks steps the session n times with input from script. It stops
// early on exit or error and returns the number of ticks delivered.
func (s *Session) RunTicks(n int, script Script) (int, error) {
	for i := 0; i < n; i++ {
		running, err := s.Step(script.At(i))
		if err != nil {
			return i + 1, err
		}
		if !running {
			return i + 1, nil
		}
	}
	return n, nil
}

// Script yields the input for a tick. A nil Script means no input.
type Script func(tick int) InputSnapshot

// At returns the input for tick, tolerating a nil script.
func (sc Script) At(tick int) InputSnapshot {
	if sc == nil {
		return InputSnapshot{}
	}
	return sc(tick)
}

// Hold returns a script that holds the given directions every tick.
func Hold(dirs ...Direction) Script {
	var in InputSnapshot
	for _, d := range dirs {
		in.Held[d] = true
	}
	return func(int) InputSnapshot { return in }
}

// CancelAt wraps sc so the cancel key is pressed on the given tick.
func CancelAt(tick int, sc Script) Script {
	return func(t int) InputSnapshot {
		in := sc.At(t)
		if t == tick {
			in.CancelPressed = true
		}
		return in
	}
}
