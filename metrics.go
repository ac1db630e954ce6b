package main

// LayoutConfig carries the spacing constants of the mind map.
type LayoutConfig struct {
	HGap       float64 `yaml:"h_gap" validate:"gt=0"`
	VGap       float64 `yaml:"v_gap" validate:"gt=0"`
	NodeRadius float64 `yaml:"node_radius" validate:"gt=0"`
}

// DefaultLayoutConfig returns the spacing the mind map is designed around.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		HGap:       defaultHGap,
		VGap:       defaultVGap,
		NodeRadius: defaultNodeRadius,
	}
}

// SubtreeExtent is the vertical space the visible part of a subtree
// reserves: one row for a collapsed or childless node, otherwise the sum of
// the children's extents. Hidden descendants are never visited.
func (c LayoutConfig) SubtreeExtent(n *Node) float64 {
	return newExtentCache(c).extent(n)
}

// extentCache memoizes SubtreeExtent for one layout pass so every node is
// measured once.
type extentCache struct {
	cfg     LayoutConfig
	extents map[*Node]float64
}

func newExtentCache(cfg LayoutConfig) *extentCache {
	return &extentCache{cfg: cfg, extents: make(map[*Node]float64)}
}

func (e *extentCache) extent(n *Node) float64 {
	if v, ok := e.extents[n]; ok {
		return v
	}
	v := e.cfg.VGap
	if !n.Collapsed && len(n.Children) > 0 {
		v = 0
		for _, child := range n.Children {
			v += e.extent(child)
		}
	}
	e.extents[n] = v
	return v
}
