package raster

import (
	"image"
	"image/color"
)

// Clear sets every cell of c to col.
func Clear(c *image.RGBA, col color.RGBA) {
	w := c.Rect.Dx()
	if w <= 0 || c.Rect.Dy() <= 0 {
		return
	}
	// Fill the first row, then copy it down.
	first := c.Pix[c.PixOffset(c.Rect.Min.X, c.Rect.Min.Y):]
	row := first[: w*4 : w*4]
	for i := 0; i < len(row); i += 4 {
		row[i] = col.R
		row[i+1] = col.G
		row[i+2] = col.B
		row[i+3] = col.A
	}
	for y := c.Rect.Min.Y + 1; y < c.Rect.Max.Y; y++ {
		i := c.PixOffset(c.Rect.Min.X, y)
		copy(c.Pix[i:i+w*4], row)
	}
}

// DrawGrid paints every row whose y is a multiple of cellSize, then every
// column whose x is a multiple of cellSize. A cellSize below 1 is treated as 1.
func DrawGrid(c *image.RGBA, cellSize int, col color.RGBA) {
	if cellSize < 1 {
		cellSize = 1
	}
	r := c.Rect
	for y := firstMultiple(r.Min.Y, cellSize); y < r.Max.Y; y += cellSize {
		for x := r.Min.X; x < r.Max.X; x++ {
			put(c, x, y, col)
		}
	}
	for x := firstMultiple(r.Min.X, cellSize); x < r.Max.X; x += cellSize {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			put(c, x, y, col)
		}
	}
}

// firstMultiple returns the smallest multiple of step that is >= v.
func firstMultiple(v, step int) int {
	m := v - v%step
	if m < v {
		m += step
	}
	return m
}

// DrawDisc fills every cell within radius of center (dx²+dy² <= r²).
// Cells off the canvas are skipped. radius 0 draws the centre pixel only,
// a negative radius draws nothing.
func DrawDisc(c *image.RGBA, center image.Point, radius int, col color.RGBA) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	// Clip the bounding square once instead of testing every cell.
	x0, x1 := max(center.X-radius, c.Rect.Min.X), min(center.X+radius, c.Rect.Max.X-1)
	y0, y1 := max(center.Y-radius, c.Rect.Min.Y), min(center.Y+radius, c.Rect.Max.Y-1)
	for y := y0; y <= y1; y++ {
		dy := y - center.Y
		for x := x0; x <= x1; x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= r2 {
				put(c, x, y, col)
			}
		}
	}
}

// LinePoints walks the 8-connected Bresenham line from p0 to p1 inclusive,
// calling fn for every point in order. The error term is always accumulated
// from the lower endpoint (by X, then Y) so that a line and its reverse cover
// the same pixels; a reversed call visits them back to front.
func LinePoints(p0, p1 image.Point, fn func(image.Point)) {
	if pointLess(p0, p1) || p0 == p1 {
		bresenham(p0, p1, fn)
		return
	}
	var pts []image.Point
	bresenham(p1, p0, func(p image.Point) { pts = append(pts, p) })
	for i := len(pts) - 1; i >= 0; i-- {
		fn(pts[i])
	}
}

func bresenham(p0, p1 image.Point, fn func(image.Point)) {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx + dy
	p := p0
	for {
		fn(p)
		if p == p1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

func pointLess(a, b image.Point) bool {
	return a.X < b.X || (a.X == b.X && a.Y < b.Y)
}

// DrawLine draws the Bresenham line from p0 to p1, writing only the points
// that fall inside c.
func DrawLine(c *image.RGBA, p0, p1 image.Point, col color.RGBA) {
	if pointLess(p1, p0) {
		p0, p1 = p1, p0
	}
	LinePoints(p0, p1, func(p image.Point) {
		if InBounds(c, p) {
			put(c, p.X, p.Y, col)
		}
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
