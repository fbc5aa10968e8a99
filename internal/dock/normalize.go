package dock

import "github.com/Higashi-Kota/drawing-explorer/internal/debug"

// normalize restores invariants 2, 3, 4, and 6 after a structural
// mutation: degenerate Containers collapse to their surviving child,
// TabContainers with one panel collapse to that panel, TabContainers
// with zero panels vanish, and activeId is clamped to an existing
// member. Rebalance and optimise are a single recursive pass here:
// the rebalance rule for same-direction nested
// Containers ("left nested... the engine does not re-associate
// splits") requires no code of its own — movePanel and addPanel never
// produce an association that would need to be flattened, so the
// only Container-level behaviour rebalance and optimise both ask for
// is the null-child collapse performed below.
func normalize(s *State) {
	s.Root = optimise(s.Root)
	recalculateActivePanels(s)
	if s.MaximizedPanelID != "" {
		if node, _, _ := locate(s.Root, s.MaximizedPanelID); node == nil || node.Kind != KindPanel {
			s.MaximizedPanelID = ""
		}
	}
	debug.Log(debug.DOCK_NORMALIZE, "normalize: %d active tab containers", len(s.ActivePanels))
}

// optimise returns the normalized form of the subtree rooted at n: a
// Container missing one child collapses to the survivor; a
// TabContainer with zero panels vanishes; one with a single panel
// collapses to that panel.
func optimise(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindPanel:
		return n
	case KindContainer:
		n.First = optimise(n.First)
		n.Second = optimise(n.Second)
		switch {
		case n.First == nil && n.Second == nil:
			return nil
		case n.First == nil:
			return n.Second
		case n.Second == nil:
			return n.First
		default:
			return n
		}
	case KindTabContainer:
		switch len(n.Panels) {
		case 0:
			return nil
		case 1:
			return n.Panels[0]
		default:
			return n
		}
	default:
		return n
	}
}

// recalculateActivePanels rebuilds the TabContainer.id -> Panel.id map
// by walking the (already optimised) tree: a stored activeId that
// still names a member is kept; otherwise the previously recorded
// active id is preferred if it is still a member; otherwise the first
// panel wins.
func recalculateActivePanels(s *State) {
	next := make(map[string]string)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindContainer:
			walk(n.First)
			walk(n.Second)
		case KindTabContainer:
			active := n.ActiveID
			if !containsPanel(n.Panels, active) {
				if prev, ok := s.ActivePanels[n.ID]; ok && containsPanel(n.Panels, prev) {
					active = prev
				} else {
					active = n.Panels[0].ID
				}
				n.ActiveID = active
			}
			next[n.ID] = active
		}
	}
	walk(s.Root)

	s.ActivePanels = next
}
