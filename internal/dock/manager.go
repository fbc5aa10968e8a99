package dock

import (
	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
	"github.com/Higashi-Kota/drawing-explorer/internal/eventbus"
	"github.com/Higashi-Kota/drawing-explorer/internal/idgen"
)

// Manager owns one DockState and publishes every mutation over an
// event bus. All operations are total: a failed precondition returns
// false/nil and leaves state untouched; nothing is emitted on
// failure.
type Manager struct {
	state State
	bus   *eventbus.Bus
}

// NewManager returns a Manager seeded with a single default panel
// titled "Panel".
func NewManager() *Manager {
	root := newPanel(idgen.Fresh(0), "Panel", "")
	return &Manager{
		state: State{
			Root:         root,
			ActivePanels: map[string]string{},
			InstanceID:   idgen.Fresh(0),
		},
		bus: eventbus.New(),
	}
}

// NewManagerWithRoot returns a Manager seeded with a caller-supplied
// initial layout.
func NewManagerWithRoot(root *Node) *Manager {
	m := &Manager{
		state: State{
			Root:         root,
			ActivePanels: map[string]string{},
			InstanceID:   idgen.Fresh(0),
		},
		bus: eventbus.New(),
	}
	normalize(&m.state)
	return m
}

// Subscribe registers handler for name and returns an unsubscribe
// token.
func (m *Manager) Subscribe(name string, handler func(payload any)) eventbus.Token {
	return m.bus.Subscribe(name, handler)
}

// Snapshot returns a deep copy of the current state.
func (m *Manager) Snapshot() State {
	return m.state.Snapshot()
}

func (m *Manager) emitLayoutChanged() {
	m.bus.Emit(EventLayoutChanged, LayoutChangedPayload{State: m.state.Snapshot()})
}

// AddPanel creates a new Panel and inserts it following the addPanel
// algorithm: it wraps a lone root Panel, splits a Container's second
// child, or appends to a root TabContainer. If title is empty, a
// unique display name is generated via idgen.UniqueName.
func (m *Manager) AddPanel(contentKey, title string) *Node {
	if title == "" {
		titles := map[string]bool{}
		collectPanelTitles(m.state.Root, titles)
		title = idgen.UniqueName("Panel", titles)
	}

	panel := newPanel(idgen.Fresh(0), title, contentKey)

	switch {
	case m.state.Root == nil:
		m.state.Root = panel
	case m.state.Root.Kind == KindPanel:
		m.state.Root = newContainer(idgen.Fresh(0), Horizontal, m.state.Root, panel, 0.5)
	case m.state.Root.Kind == KindContainer:
		m.state.Root.Second = newContainer(idgen.Fresh(0), Vertical, m.state.Root.Second, panel, 0.5)
	case m.state.Root.Kind == KindTabContainer:
		m.state.Root.Panels = append(m.state.Root.Panels, panel)
		m.state.Root.ActiveID = panel.ID
	}

	normalize(&m.state)
	debug.Log(debug.DOCK, "AddPanel: created %q (%s)", title, panel.ID)
	m.bus.Emit(EventPanelAdded, PanelPayload{PanelID: panel.ID})
	m.emitLayoutChanged()
	return panel
}

// AddTab wraps targetID (a Panel) in a new TabContainer with a fresh
// panel, or appends a fresh panel if targetID is already a
// TabContainer. Returns the new panel and true, or (nil, false) if
// targetID does not exist or is neither.
func (m *Manager) AddTab(targetID, contentKey, title string) (*Node, bool) {
	target, parent, slot := locate(m.state.Root, targetID)
	if target == nil || (target.Kind != KindPanel && target.Kind != KindTabContainer) {
		return nil, false
	}

	if title == "" {
		titles := map[string]bool{}
		collectPanelTitles(m.state.Root, titles)
		title = idgen.UniqueName("Panel", titles)
	}
	panel := newPanel(idgen.Fresh(0), title, contentKey)

	switch {
	case target.Kind == KindPanel && parent != nil && parent.Kind == KindTabContainer:
		// Target is already a tab; join its TabContainer instead of
		// nesting one inside another.
		parent.Panels = insertAt(parent.Panels, slot+1, panel)
		parent.ActiveID = panel.ID
	case target.Kind == KindPanel:
		tc := newTabContainer(idgen.Fresh(0), []*Node{target, panel}, panel.ID)
		setChild(&m.state, parent, slot, tc)
	default:
		target.Panels = append(target.Panels, panel)
		target.ActiveID = panel.ID
	}

	normalize(&m.state)
	m.bus.Emit(EventPanelAdded, PanelPayload{PanelID: panel.ID})
	m.emitLayoutChanged()
	return panel, true
}

// RemovePanel deletes the Panel with id. Returns false if no such
// panel exists.
func (m *Manager) RemovePanel(id string) bool {
	node, parent, slot := locate(m.state.Root, id)
	if node == nil || node.Kind != KindPanel {
		return false
	}

	setChild(&m.state, parent, slot, nil)
	if m.state.MaximizedPanelID == id {
		m.state.MaximizedPanelID = ""
	}

	normalize(&m.state)
	debug.Log(debug.DOCK, "RemovePanel: removed %s", id)
	m.bus.Emit(EventPanelRemoved, PanelPayload{PanelID: id})
	m.emitLayoutChanged()
	return true
}

// canAcceptPosition reports whether a general (non-fast-path) insert
// of position against (tgtNode, tgtParent) is legal, without
// mutating anything.
func canAcceptPosition(tgtNode, tgtParent *Node, position Position) bool {
	switch position {
	case TabInto:
		return tgtNode.Kind == KindPanel || tgtNode.Kind == KindTabContainer
	case TabBefore, TabAfter:
		return tgtNode.Kind == KindTabContainer || (tgtParent != nil && tgtParent.Kind == KindTabContainer)
	case Top, Bottom, Left, Right:
		return true
	default:
		return false
	}
}

// MovePanel relocates sourceID relative to targetID per position. It
// fails without mutating state if any panel is maximized, if source
// equals target, if source is not a Panel, or if targetID does not
// resolve.
func (m *Manager) MovePanel(sourceID, targetID string, position Position) bool {
	if m.state.MaximizedPanelID != "" {
		return false
	}
	if sourceID == targetID {
		return false
	}

	srcNode, srcParent, srcSlot := locate(m.state.Root, sourceID)
	if srcNode == nil || srcNode.Kind != KindPanel {
		return false
	}
	tgtNode, tgtParent, tgtSlot := locate(m.state.Root, targetID)
	if tgtNode == nil {
		return false
	}

	isTabPosition := position == TabBefore || position == TabAfter || position == TabInto

	// Fast path: source and target already share a TabContainer
	// parent. Reorder the Panels slice in place instead of detaching
	// and reinserting, avoiding flicker; the moved panel becomes the
	// active tab.
	if isTabPosition && srcParent != nil && srcParent.Kind == KindTabContainer &&
		srcParent == tgtParent {
		reorderTabInPlace(srcParent, srcSlot, tgtSlot, position)
		m.state.ActivePanels[srcParent.ID] = sourceID
		debug.Log(debug.DOCK, "MovePanel: reordered %s to %v of %s in place", sourceID, position, targetID)
		m.bus.Emit(EventPanelMoved, PanelMovedPayload{SourceID: sourceID, TargetID: targetID, Position: position})
		m.emitLayoutChanged()
		return true
	}

	if !canAcceptPosition(tgtNode, tgtParent, position) {
		return false
	}

	setChild(&m.state, srcParent, srcSlot, nil)

	// Re-locate the target: detaching source may have shifted sibling
	// slice indices under a TabContainer that the target does not
	// belong to, so stale (parent, slot) from before detach cannot be
	// trusted.
	tgtNode, tgtParent, tgtSlot = locate(m.state.Root, targetID)

	switch position {
	case TabInto:
		switch {
		case tgtNode.Kind == KindPanel && tgtParent != nil && tgtParent.Kind == KindTabContainer:
			// Target is already a tab; join its TabContainer instead of
			// nesting one inside another.
			tgtParent.Panels = insertAt(tgtParent.Panels, tgtSlot+1, srcNode)
			tgtParent.ActiveID = srcNode.ID
		case tgtNode.Kind == KindPanel:
			tc := newTabContainer(idgen.Fresh(0), []*Node{tgtNode, srcNode}, srcNode.ID)
			setChild(&m.state, tgtParent, tgtSlot, tc)
		default:
			tgtNode.Panels = append(tgtNode.Panels, srcNode)
			tgtNode.ActiveID = srcNode.ID
		}
	case TabBefore, TabAfter:
		if tgtNode.Kind == KindTabContainer {
			idx := 0
			if position == TabAfter {
				idx = len(tgtNode.Panels)
			}
			tgtNode.Panels = insertAt(tgtNode.Panels, idx, srcNode)
			tgtNode.ActiveID = srcNode.ID
		} else {
			idx := tgtSlot
			if position == TabAfter {
				idx++
			}
			tgtParent.Panels = insertAt(tgtParent.Panels, idx, srcNode)
			tgtParent.ActiveID = srcNode.ID
		}
	case Top, Bottom, Left, Right:
		if tgtParent != nil && tgtParent.Kind == KindTabContainer {
			// An edge drop on a tab splits its whole TabContainer, so
			// Panels never receives a Container.
			tgtNode, tgtParent, tgtSlot = locate(m.state.Root, tgtParent.ID)
		}
		dir := Horizontal
		if position == Top || position == Bottom {
			dir = Vertical
		}
		var first, second *Node
		if position == Top || position == Left {
			first, second = srcNode, tgtNode
		} else {
			first, second = tgtNode, srcNode
		}
		cont := newContainer(idgen.Fresh(0), dir, first, second, 0.5)
		setChild(&m.state, tgtParent, tgtSlot, cont)
	}

	normalize(&m.state)
	debug.Log(debug.DOCK, "MovePanel: moved %s to %v of %s", sourceID, position, targetID)
	m.bus.Emit(EventPanelMoved, PanelMovedPayload{SourceID: sourceID, TargetID: targetID, Position: position})
	m.emitLayoutChanged()
	return true
}

func reorderTabInPlace(tc *Node, srcSlot, tgtSlot int, position Position) {
	moved := tc.Panels[srcSlot]
	tc.Panels = append(tc.Panels[:srcSlot:srcSlot], tc.Panels[srcSlot+1:]...)

	idx := tgtSlot
	if tgtSlot > srcSlot {
		idx--
	}
	if position == TabAfter {
		idx++
	}

	tc.Panels = insertAt(tc.Panels, idx, moved)
	tc.ActiveID = moved.ID
}

// ResizeContainer sets a Container's split fraction, clamped to
// [0.1, 0.9]. Fails while any panel is maximized or if nodeId is not
// a Container.
func (m *Manager) ResizeContainer(nodeID string, newSize float64) bool {
	if m.state.MaximizedPanelID != "" {
		return false
	}
	node, _, _ := locate(m.state.Root, nodeID)
	if node == nil || node.Kind != KindContainer {
		return false
	}

	node.Size = clampSize(newSize)
	m.bus.Emit(EventResize, ResizePayload{ContainerID: nodeID, Size: node.Size})
	m.emitLayoutChanged()
	return true
}

// ActivatePanel finds panelID's TabContainer ancestor and activates
// it. No-op if the panel has no TabContainer ancestor.
func (m *Manager) ActivatePanel(panelID string) bool {
	_, parent, _ := locate(m.state.Root, panelID)
	if parent == nil || parent.Kind != KindTabContainer {
		return false
	}

	parent.ActiveID = panelID
	m.state.ActivePanels[parent.ID] = panelID
	m.bus.Emit(EventActivePanelChanged, PanelPayload{PanelID: panelID})
	return true
}

// CycleTab moves a TabContainer's active panel to the next (forward)
// or previous panel, wrapping around.
func (m *Manager) CycleTab(tabContainerID string, forward bool) bool {
	node, _, _ := locate(m.state.Root, tabContainerID)
	if node == nil || node.Kind != KindTabContainer || len(node.Panels) == 0 {
		return false
	}

	idx := 0
	for i, p := range node.Panels {
		if p.ID == node.ActiveID {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(node.Panels)
	} else {
		idx = (idx - 1 + len(node.Panels)) % len(node.Panels)
	}

	node.ActiveID = node.Panels[idx].ID
	m.state.ActivePanels[node.ID] = node.ActiveID
	m.bus.Emit(EventActivePanelChanged, PanelPayload{PanelID: node.ActiveID})
	return true
}

// Maximize sets the maximized panel. Fails if panelID does not
// resolve to a Panel.
func (m *Manager) Maximize(panelID string) bool {
	node, _, _ := locate(m.state.Root, panelID)
	if node == nil || node.Kind != KindPanel {
		return false
	}
	m.state.MaximizedPanelID = panelID
	m.bus.Emit(EventPanelMaximized, PanelPayload{PanelID: panelID})
	return true
}

// Restore clears the maximized panel, if any.
func (m *Manager) Restore() bool {
	if m.state.MaximizedPanelID == "" {
		return false
	}
	id := m.state.MaximizedPanelID
	m.state.MaximizedPanelID = ""
	m.bus.Emit(EventPanelRestored, PanelPayload{PanelID: id})
	return true
}

// EditPanel sets both title and contentKey in one mutation, emitting
// panelEdited and layoutChanged (the title half of the contract).
func (m *Manager) EditPanel(panelID, title, contentKey string) bool {
	node, _, _ := locate(m.state.Root, panelID)
	if node == nil || node.Kind != KindPanel {
		return false
	}
	node.Title = title
	node.ContentKey = contentKey
	m.bus.Emit(EventPanelEdited, PanelEditedPayload{PanelID: panelID, Title: title, ContentKey: contentKey})
	m.emitLayoutChanged()
	return true
}

// UpdatePanelContentKey changes only a panel's contentKey.
func (m *Manager) UpdatePanelContentKey(panelID, contentKey string) bool {
	node, _, _ := locate(m.state.Root, panelID)
	if node == nil || node.Kind != KindPanel {
		return false
	}
	node.ContentKey = contentKey
	m.bus.Emit(EventPanelEdited, PanelEditedPayload{PanelID: panelID, Title: node.Title, ContentKey: contentKey})
	return true
}

// UpdatePanelTitle changes only a panel's title, additionally
// emitting layoutChanged since title affects the rendered layout.
func (m *Manager) UpdatePanelTitle(panelID, title string) bool {
	node, _, _ := locate(m.state.Root, panelID)
	if node == nil || node.Kind != KindPanel {
		return false
	}
	node.Title = title
	m.bus.Emit(EventPanelEdited, PanelEditedPayload{PanelID: panelID, Title: title, ContentKey: node.ContentKey})
	m.emitLayoutChanged()
	return true
}
