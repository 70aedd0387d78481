package main

// Fixed chart domain in dBm. Every chart shares this scale so shapes stay
// comparable between devices; readings outside it pin to the edges.
const (
	chartMinDBM = -100
	chartMaxDBM = -30
)

// Dots per cell for braille charts and the coarse block fallback.
const (
	brailleDensityX = 2
	brailleDensityY = 4
	blockDensityX   = 1
	blockDensityY   = 1
)

// Braille dot bits by (row, column) within a cell.
var brailleDotBits = [brailleDensityY][brailleDensityX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// chartCanvas is a dot-matrix drawing surface for signal sparklines. The
// logical size is measured in terminal cells; the backing dot buffer is
// logical size times the dot density and is only reallocated when the
// density changes.
type chartCanvas struct {
	cols, rows         int
	densityX, densityY int
	dots               []bool
}

func newChartCanvas(cols, rows int) *chartCanvas {
	c := &chartCanvas{cols: cols, rows: rows}
	c.SetDensity(brailleDensityX, brailleDensityY)
	return c
}

// SetDensity switches the dots-per-cell resolution, resizing the backing
// buffer only when the density actually changes.
func (c *chartCanvas) SetDensity(dx, dy int) {
	if dx == c.densityX && dy == c.densityY {
		return
	}
	c.densityX = dx
	c.densityY = dy
	c.dots = make([]bool, c.cols*dx*c.rows*dy)
}

func (c *chartCanvas) width() int  { return c.cols * c.densityX }
func (c *chartCanvas) height() int { return c.rows * c.densityY }

func (c *chartCanvas) clear() {
	for i := range c.dots {
		c.dots[i] = false
	}
}

func (c *chartCanvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.width() || y >= c.height() {
		return
	}
	c.dots[y*c.width()+x] = true
}

func (c *chartCanvas) at(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width() || y >= c.height() {
		return false
	}
	return c.dots[y*c.width()+x]
}

// signalY maps a dBm reading to a vertical dot position on a surface of
// the given height, clamping to the shared chart domain. Stronger signals
// sit higher (smaller y).
func signalY(dbm, height int) int {
	if dbm < chartMinDBM {
		dbm = chartMinDBM
	}
	if dbm > chartMaxDBM {
		dbm = chartMaxDBM
	}
	span := chartMaxDBM - chartMinDBM
	return (chartMaxDBM - dbm) * (height - 1) / span
}

// Plot draws a signal history as a polyline. X positions are spaced evenly
// by sample index; a single reading draws as a point at mid-width. The
// latest reading gets a marker blob. The surface is cleared first, so
// nothing accumulates across frames.
func (c *chartCanvas) Plot(history []int) {
	c.clear()
	if len(history) == 0 {
		return
	}

	w, h := c.width(), c.height()
	if len(history) == 1 {
		x, y := w/2, signalY(history[0], h)
		c.set(x, y)
		c.marker(x, y)
		return
	}

	last := len(history) - 1
	prevX, prevY := 0, 0
	for i, dbm := range history {
		x := i * (w - 1) / last
		y := signalY(dbm, h)
		if i == 0 {
			c.set(x, y)
		} else {
			c.line(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}
	c.marker(prevX, prevY)
}

// line draws a Bresenham segment between two dot positions.
func (c *chartCanvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.set(x0, y0)
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

// marker thickens the most recent sample into a 2x2 blob so it stands out.
func (c *chartCanvas) marker(x, y int) {
	mx, my := x, y
	if mx+1 >= c.width() {
		mx = c.width() - 2
	}
	if my+1 >= c.height() {
		my = c.height() - 2
	}
	c.set(mx, my)
	c.set(mx+1, my)
	c.set(mx, my+1)
	c.set(mx+1, my+1)
}

// Render converts the dot buffer to one rune row per logical row.
func (c *chartCanvas) Render() [][]rune {
	out := make([][]rune, c.rows)
	for row := 0; row < c.rows; row++ {
		line := make([]rune, c.cols)
		for col := 0; col < c.cols; col++ {
			line[col] = c.cellRune(col, row)
		}
		out[row] = line
	}
	return out
}

func (c *chartCanvas) cellRune(col, row int) rune {
	if c.densityX == brailleDensityX && c.densityY == brailleDensityY {
		r := rune(0x2800)
		for dy := 0; dy < brailleDensityY; dy++ {
			for dx := 0; dx < brailleDensityX; dx++ {
				if c.at(col*brailleDensityX+dx, row*brailleDensityY+dy) {
					r |= brailleDotBits[dy][dx]
				}
			}
		}
		if r == 0x2800 {
			return ' '
		}
		return r
	}

	// Coarse fallback: any lit dot fills the whole cell.
	for dy := 0; dy < c.densityY; dy++ {
		for dx := 0; dx < c.densityX; dx++ {
			if c.at(col*c.densityX+dx, row*c.densityY+dy) {
				return '█'
			}
		}
	}
	return ' '
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
