// Package dock implements the recursive dock-tree manager: the
// workspace's layout of panels, binary splits, and tab groups, with
// an event bus announcing every mutation.
package dock

import "github.com/Higashi-Kota/drawing-explorer/internal/geometry"

// Kind discriminates the DockNode tagged union.
type Kind int

const (
	KindPanel Kind = iota
	KindContainer
	KindTabContainer
)

// SplitDirection is a Container's split axis.
type SplitDirection string

const (
	Horizontal SplitDirection = "horizontal"
	Vertical   SplitDirection = "vertical"
)

// Node is a DockNode: a Panel leaf, a binary-split Container, or a
// TabContainer holding a stack of Panels. Which fields are meaningful
// depends on Kind; there are no parent pointers — callers navigate by
// id through the Manager, never by walking up from a Node.
type Node struct {
	Kind Kind
	ID   string

	// Panel fields.
	Title      string
	ContentKey string
	Content    any

	// Container fields.
	SplitDirection SplitDirection
	First, Second  *Node
	Size           float64

	// TabContainer fields. Panels always holds Nodes of Kind Panel.
	Panels   []*Node
	ActiveID string
}

func newPanel(id, title, contentKey string) *Node {
	return &Node{Kind: KindPanel, ID: id, Title: title, ContentKey: contentKey}
}

func newContainer(id string, dir SplitDirection, first, second *Node, size float64) *Node {
	return &Node{Kind: KindContainer, ID: id, SplitDirection: dir, First: first, Second: second, Size: clampSize(size)}
}

func newTabContainer(id string, panels []*Node, activeID string) *Node {
	return &Node{Kind: KindTabContainer, ID: id, Panels: panels, ActiveID: activeID}
}

// NewPanel constructs a standalone Panel node with an explicit id, for
// callers assembling a caller-supplied initial layout.
func NewPanel(id, title, contentKey string) *Node {
	return newPanel(id, title, contentKey)
}

// NewContainer constructs a standalone Container node with an
// explicit id, for callers assembling a caller-supplied initial
// layout.
func NewContainer(id string, dir SplitDirection, first, second *Node, size float64) *Node {
	return newContainer(id, dir, first, second, size)
}

// NewTabContainer constructs a standalone TabContainer node with an
// explicit id, for callers assembling a caller-supplied initial
// layout.
func NewTabContainer(id string, panels []*Node, activeID string) *Node {
	return newTabContainer(id, panels, activeID)
}

func clampSize(size float64) float64 {
	switch {
	case size < 0.1:
		return 0.1
	case size > 0.9:
		return 0.9
	default:
		return size
	}
}

// State is the DockState: the tree root, the per-TabContainer active
// panel map, an opaque instance token, and the currently maximized
// panel (empty string means none).
type State struct {
	Root             *Node
	ActivePanels     map[string]string
	InstanceID       string
	MaximizedPanelID string
}

// cloneNode returns a deep structural copy of n, used to hand callers a
// snapshot they cannot mutate into the manager's owned tree.
func cloneNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.First = cloneNode(n.First)
	out.Second = cloneNode(n.Second)
	if n.Panels != nil {
		out.Panels = make([]*Node, len(n.Panels))
		for i, p := range n.Panels {
			out.Panels[i] = cloneNode(p)
		}
	}
	return &out
}

// Snapshot returns a deep copy of s safe for a host to hold across a
// re-render.
func (s *State) Snapshot() State {
	activePanels := make(map[string]string, len(s.ActivePanels))
	for k, v := range s.ActivePanels {
		activePanels[k] = v
	}
	return State{
		Root:             cloneNode(s.Root),
		ActivePanels:     activePanels,
		InstanceID:       s.InstanceID,
		MaximizedPanelID: s.MaximizedPanelID,
	}
}

// locate finds the node with id anywhere in the subtree rooted at
// root. It returns the node, its direct parent (nil if root itself
// matched), and a slot describing where within the parent it lives:
// for a Container parent, 0 is First and 1 is Second; for a
// TabContainer parent, slot is the index into Panels.
func locate(root *Node, id string) (node, parent *Node, slot int) {
	if root == nil {
		return nil, nil, -1
	}
	if root.ID == id {
		return root, nil, -1
	}
	return searchChildren(root, id)
}

func searchChildren(n *Node, id string) (*Node, *Node, int) {
	switch n.Kind {
	case KindContainer:
		children := [2]*Node{n.First, n.Second}
		for slot, child := range children {
			if child == nil {
				continue
			}
			if child.ID == id {
				return child, n, slot
			}
			if found, p, s := searchChildren(child, id); found != nil {
				return found, p, s
			}
		}
	case KindTabContainer:
		for i, p := range n.Panels {
			if p.ID == id {
				return p, n, i
			}
		}
	}
	return nil, nil, -1
}

// setChild replaces the child at (parent, slot) with newChild. A nil
// parent means root itself. A nil newChild on a Container slot leaves
// a temporarily dangling child (invariant 2 is restored by the next
// normalize pass); on a TabContainer slot it removes that panel
// outright.
func setChild(s *State, parent *Node, slot int, newChild *Node) {
	if parent == nil {
		s.Root = newChild
		return
	}
	switch parent.Kind {
	case KindContainer:
		if slot == 0 {
			parent.First = newChild
		} else {
			parent.Second = newChild
		}
	case KindTabContainer:
		if newChild == nil {
			parent.Panels = append(parent.Panels[:slot:slot], parent.Panels[slot+1:]...)
			return
		}
		parent.Panels[slot] = newChild
	}
}

func insertAt(s []*Node, idx int, n *Node) []*Node {
	if idx < 0 {
		idx = 0
	}
	if idx > len(s) {
		idx = len(s)
	}
	s = append(s, nil)
	copy(s[idx+1:], s[idx:])
	s[idx] = n
	return s
}

func containsPanel(panels []*Node, id string) bool {
	for _, p := range panels {
		if p.ID == id {
			return true
		}
	}
	return false
}

// collectPanelTitles walks the tree collecting every Panel's display
// title, for the unique-title policy in addPanel.
func collectPanelTitles(n *Node, into map[string]bool) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindPanel:
		into[n.Title] = true
	case KindContainer:
		collectPanelTitles(n.First, into)
		collectPanelTitles(n.Second, into)
	case KindTabContainer:
		for _, p := range n.Panels {
			collectPanelTitles(p, into)
		}
	}
}

// Position re-exports geometry.Position: the same seven drop intents
// classify both the panel-level drop target in movePanel.
type Position = geometry.Position

const (
	Top       = geometry.Top
	Right     = geometry.Right
	Bottom    = geometry.Bottom
	Left      = geometry.Left
	TabBefore = geometry.TabBefore
	TabAfter  = geometry.TabAfter
	TabInto   = geometry.TabInto
)
