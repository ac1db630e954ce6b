package main

import "math"

// Position places one visible node; X and Y are the node's center.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge connects a parent to one of its visible children. The endpoints sit
// on the node circles, not at their centers.
type Edge struct {
	FromID string  `json:"fromId"`
	ToID   string  `json:"toId"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Layout is the derived, throwaway geometry of one tree snapshot.
type Layout struct {
	Positions []Position `json:"positions"`
	Edges     []Edge     `json:"edges"`

	index map[string]int
}

// Position returns the placement of the node with the given id.
func (l *Layout) Position(id string) (Position, bool) {
	if l.index == nil {
		for _, p := range l.Positions {
			if p.ID == id {
				return p, true
			}
		}
		return Position{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Position{}, false
	}
	return l.Positions[i], true
}

// Bounds returns the smallest box enclosing every node circle of the given
// radius and every edge. An empty layout yields the zero Rect.
func (l *Layout) Bounds(radius float64) Rect {
	if len(l.Positions) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x0, y0, x1, y1 float64) {
		minX = math.Min(minX, math.Min(x0, x1))
		minY = math.Min(minY, math.Min(y0, y1))
		maxX = math.Max(maxX, math.Max(x0, x1))
		maxY = math.Max(maxY, math.Max(y0, y1))
	}
	for _, p := range l.Positions {
		grow(p.X-radius, p.Y-radius, p.X+radius, p.Y+radius)
	}
	for _, e := range l.Edges {
		grow(e.X1, e.Y1, e.X2, e.Y2)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ComputeLayout lays out root with the default spacing.
func ComputeLayout(root *Node) *Layout {
	return DefaultLayoutConfig().Layout(root)
}

// Layout walks the tree once, placing the root at the origin and every
// visible child one HGap to the right of its parent. Children share the
// parent's vertical extent in proportion to their own extents, so the parent
// ends up centered against them.
func (c LayoutConfig) Layout(root *Node) *Layout {
	l := &Layout{
		Positions: []Position{},
		Edges:     []Edge{},
	}
	if root == nil {
		return l
	}
	extents := newExtentCache(c)
	c.place(l, extents, root, 0, 0)

	l.index = make(map[string]int, len(l.Positions))
	for i, p := range l.Positions {
		l.index[p.ID] = i
	}
	return l
}

func (c LayoutConfig) place(l *Layout, extents *extentCache, n *Node, x, y float64) {
	l.Positions = append(l.Positions, Position{ID: n.ID, X: x, Y: y})
	if n.Collapsed {
		return
	}

	offsetY := y - extents.extent(n)/2
	for _, child := range n.Children {
		childExtent := extents.extent(child)
		childX := x + c.HGap
		childY := offsetY + childExtent/2

		l.Edges = append(l.Edges, Edge{
			FromID: n.ID,
			ToID:   child.ID,
			X1:     x + c.NodeRadius,
			Y1:     y,
			X2:     childX - c.NodeRadius,
			Y2:     childY,
		})
		c.place(l, extents, child, childX, childY)

		offsetY += childExtent
	}
}
