package viz

import "strings"

// Braille cells pack a 2x4 dot grid into a single rune, so a terminal
// cell grid of WxH characters addresses 2W x 4H dots.
const brailleBase = 0x2800

// dotBits maps a sub-cell position [row][col] to its bit in the
// braille pattern.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a dot-addressable drawing surface backed by braille runes.
type Canvas struct {
	Width  int // character cells
	Height int
	Grid   [][]rune
}

func NewCanvas(width, height int) *Canvas {
	grid := make([][]rune, height)
	for row := range grid {
		grid[row] = make([]rune, width)
		for col := range grid[row] {
			grid[row][col] = brailleBase
		}
	}
	return &Canvas{Width: width, Height: height, Grid: grid}
}

// PixelSize returns the dot resolution of the canvas.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at pixel coordinates (x, y). Out-of-range
// coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

// DotAt reports whether the dot at pixel coordinates (x, y) is lit.
func (c *Canvas) DotAt(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return false
	}
	return c.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

// Clear turns every dot off.
func (c *Canvas) Clear() {
	for row := range c.Grid {
		for col := range c.Grid[row] {
			c.Grid[row][col] = brailleBase
		}
	}
}

// DrawLine rasterizes a segment between two pixel coordinates using
// Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
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
	b.Grow(c.Height * (c.Width + 1))
	for row := range c.Grid {
		for _, r := range c.Grid[row] {
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
