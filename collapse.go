package main

// Toggle flips the node with the given id and returns the new tree. An
// expanded node collapses together with its whole subtree. A collapsed node
// opens one level: it expands while every descendant is collapsed, so
// grandchildren stay hidden until toggled themselves.
//
// Only the path from the root to the target is rebuilt; every other subtree
// is shared with the input. An unknown id returns root itself.
func Toggle(root *Node, id string) *Node {
	return rebuildPath(root, id, func(target *Node) *Node {
		if !target.Collapsed {
			return CollapseAll(target)
		}
		opened := *target
		opened.Collapsed = false
		opened.Children = make([]*Node, len(target.Children))
		for i, child := range target.Children {
			opened.Children[i] = CollapseAll(child)
		}
		return &opened
	})
}

// CollapseAll returns a copy of the subtree with every node collapsed.
// Subtrees that are already fully collapsed are shared, not copied.
func CollapseAll(n *Node) *Node {
	if fullyCollapsed(n) {
		return n
	}
	clone := *n
	clone.Collapsed = true
	clone.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		clone.Children[i] = CollapseAll(child)
	}
	return &clone
}

func fullyCollapsed(n *Node) bool {
	if !n.Collapsed {
		return false
	}
	for _, child := range n.Children {
		if !fullyCollapsed(child) {
			return false
		}
	}
	return true
}

// UpdateContent replaces the title and summary of the node with the
// matching id. Collapse state and children stay as they are. An unknown id
// returns root itself.
func UpdateContent(root *Node, content Content) *Node {
	return rebuildPath(root, content.ID, func(target *Node) *Node {
		if target.Title == content.Title && target.Summary == content.Summary {
			return target
		}
		updated := *target
		updated.Title = content.Title
		updated.Summary = content.Summary
		return &updated
	})
}

// rebuildPath copies the ancestors of the node with the given id and swaps
// in whatever change returns for it. When nothing changes the original
// pointer comes back.
func rebuildPath(n *Node, id string, change func(*Node) *Node) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return change(n)
	}
	for i, child := range n.Children {
		replaced := rebuildPath(child, id, change)
		if replaced == child {
			continue
		}
		parent := *n
		parent.Children = make([]*Node, len(n.Children))
		copy(parent.Children, n.Children)
		parent.Children[i] = replaced
		return &parent
	}
	return n
}
