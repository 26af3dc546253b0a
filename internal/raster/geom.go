// Package raster holds the pixel primitives: positions, bounds tests and the
// shape rasterizers that write opaque colours into an RGBA canvas.
package raster

import (
	"image"
	"image/color"
	"math"
)

// Transparent is the all-zero colour used to clear a frame.
var Transparent = color.RGBA{}

// Vec is a sub-pixel position in canvas space. Movement accumulates in Vec;
// it is rounded to a pixel only when rasterized.
type Vec struct {
	X, Y float64
}

// Add returns v translated by (dx, dy).
func (v Vec) Add(dx, dy float64) Vec {
	return Vec{X: v.X + dx, Y: v.Y + dy}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Round snaps v to the nearest pixel, halves away from zero.
func (v Vec) Round() image.Point {
	return image.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// NewCanvas allocates a W×H canvas with a zero origin.
func NewCanvas(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// InBounds reports whether p addresses a cell of c.
func InBounds(c *image.RGBA, p image.Point) bool {
	return p.In(c.Rect)
}

// put writes col at p. Callers have already clipped p.
func put(c *image.RGBA, x, y int, col color.RGBA) {
	i := c.PixOffset(x, y)
	s := c.Pix[i : i+4 : i+4]
	s[0] = col.R
	s[1] = col.G
	s[2] = col.B
	s[3] = col.A
}
