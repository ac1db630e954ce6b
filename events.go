package main

// Event is one discrete user or lifecycle interaction with the mind map.
type Event interface {
	isEvent()
}

// ToggleEvent collapses or opens a node.
type ToggleEvent struct{ ID string }

// EditEvent replaces a node's title and summary.
type EditEvent struct{ Content Content }

// SelectEvent moves the selection without changing the tree.
type SelectEvent struct{ ID string }

// ResetEvent restores the initial tree and clears the selection.
type ResetEvent struct{}

// FitEvent recomputes the view window.
type FitEvent struct{}

// ReplaceInitialEvent swaps the tree that Reset restores.
type ReplaceInitialEvent struct{ Tree *Node }

func (ToggleEvent) isEvent()         {}
func (EditEvent) isEvent()           {}
func (SelectEvent) isEvent()         {}
func (ResetEvent) isEvent()          {}
func (FitEvent) isEvent()            {}
func (ReplaceInitialEvent) isEvent() {}

// State is everything the mind map view is derived from.
type State struct {
	Tree       *Node
	Initial    *Node
	SelectedID string
	View       Rect
}

// Reducer applies events to states. It holds no state of its own.
type Reducer struct {
	Layout LayoutConfig
	Fit    FitConfig
}

// NewState builds the starting state for tree with a fitted view.
func (r Reducer) NewState(tree, initial *Node) State {
	st := State{Tree: tree, Initial: initial}
	st.View = r.fit(st.Tree)
	return st
}

// Apply returns the state that follows st after ev.
func (r Reducer) Apply(st State, ev Event) State {
	switch ev := ev.(type) {
	case ToggleEvent:
		st.Tree = Toggle(st.Tree, ev.ID)
		st.SelectedID = ev.ID
		st.View = r.fit(st.Tree)
	case EditEvent:
		st.Tree = UpdateContent(st.Tree, ev.Content)
		st.SelectedID = ev.Content.ID
		if r.Fit.OnEdit {
			st.View = r.fit(st.Tree)
		}
	case SelectEvent:
		st.SelectedID = ev.ID
	case ResetEvent:
		st.Tree = st.Initial
		st.SelectedID = ""
		st.View = r.fit(st.Tree)
	case FitEvent:
		st.View = r.fit(st.Tree)
	case ReplaceInitialEvent:
		if ev.Tree != nil {
			st.Initial = ev.Tree
		}
	}
	return st
}

func (r Reducer) fit(tree *Node) Rect {
	return FitLayout(r.Layout.Layout(tree), r.Layout, r.Fit)
}
