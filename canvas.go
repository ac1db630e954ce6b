package main

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Canvas rasterizes a layout into terminal cells. The view window is scaled
// to fit the grid and centered, like an SVG viewBox with "xMidYMid meet".
// A cell counts as twice as tall as it is wide.
type Canvas struct {
	width  int
	height int
	cells  [][]rune
	view   Rect
	scale  float64
	offX   float64
	offY   float64
	hits   []nodeHit
}

type nodeHit struct {
	id     string
	x0, y0 int
	x1, y1 int
}

// Box-drawing sets for plain and selected nodes.
var (
	plainBorder    = [6]rune{'╭', '╮', '╰', '╯', '─', '│'}
	selectedBorder = [6]rune{'#', '#', '#', '#', '#', '#'}
)

func NewCanvas(width, height int, view Rect) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{
		width:  width,
		height: height,
		view:   view,
		cells:  make([][]rune, height),
	}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", width))
	}

	c.scale = 1
	if !view.Empty() {
		c.scale = math.Min(float64(width)/view.Width, float64(2*height)/view.Height)
	}
	c.offX = (float64(width) - view.Width*c.scale) / 2
	c.offY = (float64(2*height) - view.Height*c.scale) / 2
	return c
}

// project maps a layout point to a cell.
func (c *Canvas) project(x, y float64) (int, int) {
	px := (x-c.view.X)*c.scale + c.offX
	py := (y-c.view.Y)*c.scale + c.offY
	return int(math.Floor(px)), int(math.Floor(py / 2))
}

// Draw renders edges first and nodes on top of them.
func (c *Canvas) Draw(tree *Node, l *Layout, selectedID string, text TextConfig) {
	c.hits = c.hits[:0]
	for _, e := range l.Edges {
		x1, y1 := c.project(e.X1, e.Y1)
		x2, y2 := c.project(e.X2, e.Y2)
		c.drawLine(x1, y1, x2, y2)
	}

	nodes := make(map[string]*Node, len(l.Positions))
	Walk(tree, func(n *Node, _ int) bool {
		nodes[n.ID] = n
		return !n.Collapsed
	})
	for _, p := range l.Positions {
		n := nodes[p.ID]
		if n == nil {
			continue
		}
		cx, cy := c.project(p.X, p.Y)
		c.drawNode(n, cx, cy, n.ID == selectedID, text)
	}
}

func (c *Canvas) drawNode(n *Node, cx, cy int, selected bool, text TextConfig) {
	lines := WrapTitle(n.Title, text.TitleChars, text.TitleLines)
	if len(lines) == 0 {
		lines = []string{"·"}
	}
	inner := 0
	for i, line := range lines {
		lines[i] = FitCells(line, c.width-2)
		if w := runewidth.StringWidth(lines[i]); w > inner {
			inner = w
		}
	}

	border := plainBorder
	if selected {
		border = selectedBorder
	}
	boxW := inner + 2
	boxH := len(lines) + 2
	x0 := cx - boxW/2
	y0 := cy - boxH/2

	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			c.set(x0+x, y0+y, ' ')
		}
	}
	for x := 1; x < boxW-1; x++ {
		c.set(x0+x, y0, border[4])
		c.set(x0+x, y0+boxH-1, border[4])
	}
	for y := 1; y < boxH-1; y++ {
		c.set(x0, y0+y, border[5])
		c.set(x0+boxW-1, y0+y, border[5])
	}
	c.set(x0, y0, border[0])
	c.set(x0+boxW-1, y0, border[1])
	c.set(x0, y0+boxH-1, border[2])
	c.set(x0+boxW-1, y0+boxH-1, border[3])
	if n.Collapsed && n.HasChildren() {
		c.set(x0+boxW-1, y0+boxH/2, '+')
	}

	for i, line := range lines {
		pad := (inner - runewidth.StringWidth(line)) / 2
		c.writeString(x0+1+pad, y0+1+i, line)
	}

	c.hits = append(c.hits, nodeHit{id: n.ID, x0: x0, y0: y0, x1: x0 + boxW - 1, y1: y0 + boxH - 1})
}

// drawLine walks the cells between two points (Bresenham).
func (c *Canvas) drawLine(x1, y1, x2, y2 int) {
	ch := lineRune(x2-x1, y2-y1)
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x1, y1, ch)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case abs(dx) > 3*abs(dy):
		return '─'
	case abs(dy) > 3*abs(dx):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (c *Canvas) set(x, y int, r rune) {
	if c.isValidPos(x, y) {
		c.cells[y][x] = r
	}
}

func (c *Canvas) writeString(x, y int, s string) {
	for _, r := range s {
		c.set(x, y, r)
		x += runewidth.RuneWidth(r)
	}
}

func (c *Canvas) isValidPos(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

// Lines returns the grid as one string per row.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = string(row)
	}
	return lines
}

// NodeAt returns the id of the node drawn at the given cell. Nodes drawn
// later win, matching what is visible.
func (c *Canvas) NodeAt(x, y int) (string, bool) {
	for i := len(c.hits) - 1; i >= 0; i-- {
		h := c.hits[i]
		if x >= h.x0 && x <= h.x1 && y >= h.y0 && y <= h.y1 {
			return h.id, true
		}
	}
	return "", false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
