package game

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"
)

// EventKind tags the two events the loop reacts to.
type EventKind int

const (
	EventRedraw EventKind = iota
	EventInput
)

func (k EventKind) String() string {
	switch k {
	case EventRedraw:
		return "redraw"
	case EventInput:
		return "input"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one platform event. Input is only read for EventInput.
type Event struct {
	Kind  EventKind
	Input InputSnapshot
}

// LoopState is the driver state between and during events.
type LoopState int

const (
	StateIdle LoopState = iota
	StateDrawing
	StateExited
)

func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateExited:
		return "exited"
	}
	return fmt.Sprintf("LoopState(%d)", int(s))
}

// Presenter shows a finished canvas. Resize only changes how the canvas is
// scaled onto the surface; the canvas itself keeps its size.
type Presenter interface {
	Present(canvas *image.RGBA) error
	Resize(width, height int) error
}

// Loop is the single-threaded frame driver. Each Dispatch runs to completion
// so a redraw never observes a half-applied input tick.
type Loop struct {
	world     *World
	canvas    *image.RGBA
	presenter Presenter

	state         LoopState
	redrawPending bool
	tick          int
	redraws       int

	log     *FrameLog
	session uuid.UUID
}

// NewLoop wires a world to its canvas and presenter. The first frame is
// already requested.
func NewLoop(w *World, canvas *image.RGBA, p Presenter) *Loop {
	return &Loop{
		world:         w,
		canvas:        canvas,
		presenter:     p,
		redrawPending: true,
		log:           NewFrameLog(frameLogCapacity),
		session:       uuid.New(),
	}
}

// Dispatch handles one event. Events after exit are ignored. The only
// errors are presenter failures, which the caller should treat as fatal.
func (l *Loop) Dispatch(ev Event) error {
	if l.state == StateExited {
		return nil
	}
	switch ev.Kind {
	case EventRedraw:
		return l.redraw()
	case EventInput:
		return l.input(ev.Input)
	}
	return nil
}

func (l *Loop) redraw() error {
	l.state = StateDrawing
	l.world.Draw(l.canvas)
	l.redrawPending = false
	l.redraws++
	err := l.presenter.Present(l.canvas)
	l.state = StateIdle
	if err != nil {
		Logger().Error("present failed", slog.Int("tick", l.tick), slog.Any("err", err))
		return fmt.Errorf("present frame %d: %w", l.redraws, err)
	}
	l.log.Add(l.tick, KindRedraw, fmt.Sprintf("frame=%d", l.redraws))
	return nil
}

func (l *Loop) input(s InputSnapshot) error {
	l.tick++
	if s.ExitRequested() {
		reason := "cancel key"
		if s.CloseRequested {
			reason = "close requested"
		}
		l.state = StateExited
		l.log.Add(l.tick, KindExit, reason)
		Logger().Info("loop exit", slog.String("reason", reason), slog.Int("tick", l.tick),
			slog.String("session", l.session.String()))
		return nil
	}

	if s.Resized {
		if err := l.presenter.Resize(s.Size.X, s.Size.Y); err != nil {
			Logger().Error("resize failed", slog.Int("w", s.Size.X), slog.Int("h", s.Size.Y), slog.Any("err", err))
			return fmt.Errorf("resize surface to %dx%d: %w", s.Size.X, s.Size.Y, err)
		}
		l.log.Add(l.tick, KindResize, fmt.Sprintf("%dx%d", s.Size.X, s.Size.Y))
		Logger().Info("surface resized", slog.Int("w", s.Size.X), slog.Int("h", s.Size.Y))
	}

	l.world.HandleInput(s)
	l.redrawPending = true
	l.log.Add(l.tick, KindInput, fmt.Sprintf("held=%s pointer=%s", s.heldString(), cursorString(s.Pointer)))
	Logger().Debug("tick", slog.Int("tick", l.tick), slog.String("held", s.heldString()))
	return nil
}

// State returns the current driver state.
func (l *Loop) State() LoopState { return l.state }

// Exited reports whether an exit has been requested.
func (l *Loop) Exited() bool { return l.state == StateExited }

// RedrawPending reports whether the next redraw event has been requested.
func (l *Loop) RedrawPending() bool { return l.redrawPending }

// Tick returns the number of input ticks handled.
func (l *Loop) Tick() int { return l.tick }

// Redraws returns the number of frames drawn.
func (l *Loop) Redraws() int { return l.redraws }

// World returns the simulated world.
func (l *Loop) World() *World { return l.world }

// Canvas returns the logical frame buffer.
func (l *Loop) Canvas() *image.RGBA { return l.canvas }

// Log returns the frame log.
func (l *Loop) Log() *FrameLog { return l.log }

// Session identifies this run in logs and debug reports.
func (l *Loop) Session() uuid.UUID { return l.session }

func cursorString(c Cursor) string {
	p, ok := c.Get()
	if !ok {
		return "none"
	}
	return fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y)
}
