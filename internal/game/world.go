package game

import (
	"image"
	"image/color"

	"github.com/Garsondee/tiny-voxel-engine/internal/raster"
)

// DefaultSpeed is the per-tick displacement of one held direction key.
const DefaultSpeed = 2.0

// Palette holds the colour of each draw layer.
type Palette struct {
	Clear  color.RGBA
	Grid   color.RGBA
	Player color.RGBA
	Line   color.RGBA
}

// DefaultPalette is the stock sky-blue grid with a violet player.
var DefaultPalette = Palette{
	Clear:  raster.Transparent,
	Grid:   color.RGBA{R: 0x48, G: 0xb2, B: 0xe8, A: 0xff},
	Player: color.RGBA{R: 0x5e, G: 0x48, B: 0xe8, A: 0xff},
	Line:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Player is the movable disc.
type Player struct {
	Pos    raster.Vec
	Radius int
}

// Cursor is an optional position. The zero value is absent.
type Cursor struct {
	pos raster.Vec
	ok  bool
}

// SomeCursor returns a present cursor at pos.
func SomeCursor(pos raster.Vec) Cursor {
	return Cursor{pos: pos, ok: true}
}

// Get returns the position and whether it is present.
func (c Cursor) Get() (raster.Vec, bool) {
	return c.pos, c.ok
}

// World is the whole simulation state: one player, an optional cursor and
// the grid spacing. It is created once and mutated every tick.
type World struct {
	Player   Player
	Cursor   Cursor
	CellSize int
	Speed    float64
	Policy   CursorPolicy
	Palette  Palette
}

// NewWorld returns a world with the player centred on a w×h canvas.
// cellSize below 1 is raised to 1 and a negative radius to 0.
func NewWorld(w, h, cellSize, radius int) *World {
	if cellSize < 1 {
		cellSize = 1
	}
	if radius < 0 {
		radius = 0
	}
	return &World{
		Player: Player{
			Pos:    raster.Vec{X: float64(w / 2), Y: float64(h / 2)},
			Radius: radius,
		},
		CellSize: cellSize,
		Speed:    DefaultSpeed,
		Palette:  DefaultPalette,
	}
}

// Draw renders the world into c. Layers are painted in a fixed order, each
// overwriting the last: clear, grid, player disc, cursor line. Every cell of
// c is defined on return.
func (w *World) Draw(c *image.RGBA) {
	raster.Clear(c, w.Palette.Clear)
	raster.DrawGrid(c, w.CellSize, w.Palette.Grid)

	center := w.Player.Pos.Round()
	raster.DrawDisc(c, center, w.Player.Radius, w.Palette.Player)

	if cur, ok := w.Cursor.Get(); ok {
		raster.DrawLine(c, center, cur.Round(), w.Palette.Line)
	}
}
