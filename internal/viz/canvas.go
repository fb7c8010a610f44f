package viz

import (
	"math"
	"strings"
)

// Braille cells pack a 2x4 block of dots into a single rune, giving
// the canvas twice the horizontal and four times the vertical
// resolution of its character grid.
const (
	brailleBlank = '⠀'
	cellDotsX    = 2
	cellDotsY    = 4
)

// brailleOffsets[y][x] is the bit for dot (x, y) within one cell.
var brailleOffsets = [cellDotsY][cellDotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface measured in character cells.
// Dot (0, 0) is the top-left corner.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]rune, cols*rows),
	}
	c.Clear()
	return c
}

// DotWidth returns the drawable width in dots.
func (c *Canvas) DotWidth() int { return c.cols * cellDotsX }

// DotHeight returns the drawable height in dots.
func (c *Canvas) DotHeight() int { return c.rows * cellDotsY }

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	cell := (y/cellDotsY)*c.cols + x/cellDotsX
	c.cells[cell] |= brailleOffsets[y%cellDotsY][x%cellDotsX]
}

// Line draws a straight dot line from (x0, y0) to (x1, y1), endpoints
// included.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for r := 0; r < c.rows; r++ {
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.cells[r*c.cols+col])
		}
		if r < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Extent maps simulation coordinates onto the canvas: x grows left to
// right, y grows bottom to top.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (e Extent) valid() bool {
	return e.XMax > e.XMin && e.YMax > e.YMin
}

func (c *Canvas) dot(ext Extent, x, y float64) (int, int) {
	px := int(math.Round((x - ext.XMin) / (ext.XMax - ext.XMin) * float64(c.DotWidth()-1)))
	py := int(math.Round((ext.YMax - y) / (ext.YMax - ext.YMin) * float64(c.DotHeight()-1)))
	return clamp(px, 0, c.DotWidth()-1), clamp(py, 0, c.DotHeight()-1)
}

// DrawSeries plots ys against xs, connecting consecutive samples.
// Points outside the extent are clamped to the border.
func (c *Canvas) DrawSeries(ext Extent, xs, ys []float64) {
	if !ext.valid() {
		return
	}
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	var prevX, prevY int
	for i := 0; i < n; i++ {
		px, py := c.dot(ext, xs[i], ys[i])
		if i == 0 {
			c.Set(px, py)
		} else {
			c.Line(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}

// DrawCurve samples f at every dot column and connects the samples.
func (c *Canvas) DrawCurve(ext Extent, f func(x float64) float64) {
	if !ext.valid() {
		return
	}
	w := c.DotWidth()
	var prevX, prevY int
	for i := 0; i < w; i++ {
		x := ext.XMin + (ext.XMax-ext.XMin)*float64(i)/float64(w-1)
		px, py := c.dot(ext, x, f(x))
		if i == 0 {
			c.Set(px, py)
		} else {
			c.Line(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
