package dock

import "fmt"

// CheckInvariants walks s.Root and verifies the tree invariants: ids
// are unique, no Container has a nil child, every TabContainer holds at
// least two Panels and an activeId naming one of them, and a non-empty
// MaximizedPanelID names an existing Panel. Nested Containers sharing a
// split direction are not checked. Tests call it after their
// mutations; production code never calls it.
func CheckInvariants(s *State) error {
	seen := map[string]bool{}
	if err := checkNode(s.Root, seen); err != nil {
		return err
	}
	if s.MaximizedPanelID != "" {
		node, _, _ := locate(s.Root, s.MaximizedPanelID)
		if node == nil || node.Kind != KindPanel {
			return fmt.Errorf("maximizedPanelId %q does not refer to an existing panel", s.MaximizedPanelID)
		}
	}
	return nil
}

func checkNode(n *Node, seen map[string]bool) error {
	if n == nil {
		return nil
	}
	if seen[n.ID] {
		return fmt.Errorf("duplicate id %q", n.ID)
	}
	seen[n.ID] = true

	switch n.Kind {
	case KindContainer:
		if n.First == nil || n.Second == nil {
			return fmt.Errorf("container %q has a nil child", n.ID)
		}
		if err := checkNode(n.First, seen); err != nil {
			return err
		}
		return checkNode(n.Second, seen)
	case KindTabContainer:
		if len(n.Panels) < 2 {
			return fmt.Errorf("tab container %q has %d panels, want >= 2", n.ID, len(n.Panels))
		}
		if !containsPanel(n.Panels, n.ActiveID) {
			return fmt.Errorf("tab container %q activeId %q is not a member", n.ID, n.ActiveID)
		}
		for _, p := range n.Panels {
			if p.Kind != KindPanel {
				return fmt.Errorf("tab container %q holds a non-panel member %q", n.ID, p.ID)
			}
			if err := checkNode(p, seen); err != nil {
				return err
			}
		}
	}
	return nil
}
