package main

import (
	"fmt"

	"pgregory.net/rapid"
)

// leaf and branch build small trees for table tests.
func leaf(id string) *Node {
	return &Node{ID: id, Title: id, Children: []*Node{}}
}

func branch(id string, collapsed bool, children ...*Node) *Node {
	return &Node{ID: id, Title: id, Collapsed: collapsed, Children: children}
}

// sampleTree is r(a(a1, a2), b[collapsed](b1(b11))).
func sampleTree() *Node {
	return branch("r", false,
		branch("a", false, leaf("a1"), leaf("a2")),
		branch("b", true, branch("b1", true, leaf("b11"))),
	)
}

// treeGen draws trees with unique ids and random collapse flags.
func treeGen() *rapid.Generator[*Node] {
	return rapid.Custom(func(t *rapid.T) *Node {
		next := 0
		var build func(depth int) *Node
		build = func(depth int) *Node {
			n := &Node{
				ID:        fmt.Sprintf("n%d", next),
				Title:     fmt.Sprintf("Node %d", next),
				Collapsed: rapid.Bool().Draw(t, "collapsed"),
				Children:  []*Node{},
			}
			next++
			if depth >= 4 {
				return n
			}
			count := rapid.IntRange(0, 3).Draw(t, "children")
			for i := 0; i < count; i++ {
				n.Children = append(n.Children, build(depth+1))
			}
			return n
		}
		return build(0)
	})
}

func allIDs(root *Node) []string {
	var ids []string
	Walk(root, func(n *Node, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}
