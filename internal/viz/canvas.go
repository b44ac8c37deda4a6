package viz

import "strings"

const brailleBlank = 0x2800

// Dot bits of a braille cell, indexed by [row][col]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Each cell holds 2x4 dots, so a canvas
// of Width x Height cells has (2*Width) x (4*Height) addressable dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// DotSize returns the canvas size in dots.
func (c *Canvas) DotSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	row, col = y/4, x/2
	if row >= c.Height || col >= c.Width {
		return 0, 0, 0, false
	}
	return row, col, dotBits[y%4][x%2], true
}

// Set turns on the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.locate(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.locate(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.locate(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Disc fills a square of radius r around (x, y).
func (c *Canvas) Disc(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// DrawLine draws a Bresenham line between two dots.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rows renders each cell row as a string.
func (c *Canvas) Rows() []string {
	rows := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		rows[i] = string(row)
	}
	return rows
}

func (c *Canvas) String() string {
	return strings.Join(c.Rows(), "\n") + "\n"
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
