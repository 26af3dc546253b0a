package game

import (
	"image"
	"strings"

	"github.com/Garsondee/tiny-voxel-engine/internal/raster"
)

// Direction is one of the four movement keys.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

var dirNames = [dirCount]string{"U", "D", "L", "R"}

// CursorPolicy decides what happens to the cursor on a tick without
// pointer data.
type CursorPolicy int

const (
	// CursorKeepLast keeps the last in-window position.
	CursorKeepLast CursorPolicy = iota
	// CursorClearOutside forgets the cursor once the pointer leaves.
	CursorClearOutside
)

// InputSnapshot is one tick's worth of input, already sampled from the
// platform.
type InputSnapshot struct {
	Held           [dirCount]bool
	CancelPressed  bool   // cancel key went down this tick
	CloseRequested bool   // window close button
	Pointer        Cursor // absent when the pointer is outside the window
	Resized        bool
	Size           image.Point // new physical surface size when Resized
}

// ExitRequested reports whether this tick should stop the loop.
func (s InputSnapshot) ExitRequested() bool {
	return s.CloseRequested || s.CancelPressed
}

// heldString renders the held directions, e.g. "UR" or "-".
func (s InputSnapshot) heldString() string {
	var b strings.Builder
	for d := Direction(0); d < dirCount; d++ {
		if s.Held[d] {
			b.WriteString(dirNames[d])
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// HandleInput applies one tick of input to w. Each held direction moves the
// player by Speed on its own axis; diagonals are not normalised and the
// position is never clamped to the canvas.
func (w *World) HandleInput(s InputSnapshot) {
	if _, ok := s.Pointer.Get(); ok {
		w.Cursor = s.Pointer
	} else if w.Policy == CursorClearOutside {
		w.Cursor = Cursor{}
	}

	var dx, dy float64
	if s.Held[DirUp] {
		dy -= w.Speed
	}
	if s.Held[DirDown] {
		dy += w.Speed
	}
	if s.Held[DirLeft] {
		dx -= w.Speed
	}
	if s.Held[DirRight] {
		dx += w.Speed
	}
	w.Player.Pos = w.Player.Pos.Add(dx, dy)
}

// pointerAt builds a snapshot pointer from integer window coordinates,
// absent when (x, y) lies outside bounds.
func pointerAt(x, y int, bounds image.Rectangle) Cursor {
	if !(image.Point{X: x, Y: y}).In(bounds) {
		return Cursor{}
	}
	return SomeCursor(raster.Vec{X: float64(x), Y: float64(y)})
}
