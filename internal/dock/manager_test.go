package dock

import "testing"

func newTestManager(root *Node) *Manager {
	return NewManagerWithRoot(root)
}

func TestSplitScenario(t *testing.T) {
	a := NewPanel("A", "A", "")
	m := newTestManager(a)

	b := m.AddPanel("k", "B")
	if m.state.Root.Kind != KindContainer || m.state.Root.SplitDirection != Horizontal {
		t.Fatalf("after AddPanel: root = %+v, want horizontal container", m.state.Root)
	}
	if m.state.Root.First.ID != "A" || m.state.Root.Second.ID != b.ID {
		t.Fatalf("after AddPanel: first=%s second=%s, want A,%s", m.state.Root.First.ID, m.state.Root.Second.ID, b.ID)
	}

	if !m.MovePanel(b.ID, "A", Right) {
		t.Fatal("MovePanel(B,A,right) = false, want true")
	}
	if m.state.Root.Kind != KindContainer || m.state.Root.SplitDirection != Horizontal {
		t.Fatalf("after move right: root = %+v, want horizontal container", m.state.Root)
	}

	if !m.MovePanel(b.ID, "A", Bottom) {
		t.Fatal("MovePanel(B,A,bottom) = false, want true")
	}
	if m.state.Root.Kind != KindContainer || m.state.Root.SplitDirection != Vertical {
		t.Fatalf("after move bottom: root = %+v, want vertical container", m.state.Root)
	}
	if err := CheckInvariants(&m.state); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestTabifyScenario(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewContainer("c1", Horizontal, a, b, 0.5)
	m := newTestManager(root)

	if !m.MovePanel("B", "A", TabInto) {
		t.Fatal("MovePanel(B,A,tab-into) = false, want true")
	}
	if m.state.Root.Kind != KindTabContainer {
		t.Fatalf("root = %+v, want TabContainer", m.state.Root)
	}
	if m.state.Root.ActiveID != "B" {
		t.Fatalf("active = %q, want B", m.state.Root.ActiveID)
	}
	if len(m.state.Root.Panels) != 2 {
		t.Fatalf("panels = %v, want 2", m.state.Root.Panels)
	}
	if err := CheckInvariants(&m.state); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestTabReorderInPlace(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	c := NewPanel("C", "C", "")
	root := NewTabContainer("tc", []*Node{a, b, c}, "A")
	m := newTestManager(root)

	var moveEvents int
	m.Subscribe(EventPanelMoved, func(any) { moveEvents++ })

	if !m.MovePanel("C", "A", TabBefore) {
		t.Fatal("MovePanel(C,A,tab-before) = false, want true")
	}

	ids := make([]string, len(m.state.Root.Panels))
	for i, p := range m.state.Root.Panels {
		ids[i] = p.ID
	}
	want := []string{"C", "A", "B"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("panels = %v, want %v", ids, want)
		}
	}
	if m.state.Root.ActiveID != "C" {
		t.Fatalf("active = %q, want C", m.state.Root.ActiveID)
	}
	if moveEvents != 1 {
		t.Fatalf("panelMoved fired %d times, want exactly 1", moveEvents)
	}
}

func TestRemoveCollapseScenario(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	tab := NewTabContainer("tc", []*Node{a, b}, "A")
	left := NewPanel("L", "L", "")
	root := NewContainer("outer", Horizontal, left, tab, 0.5)
	m := newTestManager(root)

	if !m.RemovePanel("A") {
		t.Fatal("RemovePanel(A) = false, want true")
	}
	if m.state.Root.Kind != KindContainer {
		t.Fatalf("root = %+v, want Container", m.state.Root)
	}
	if m.state.Root.Second == nil || m.state.Root.Second.Kind != KindPanel || m.state.Root.Second.ID != "B" {
		t.Fatalf("second child = %+v, want Panel B directly", m.state.Root.Second)
	}
	if err := CheckInvariants(&m.state); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestMoveTabIntoMemberPanelJoinsItsTabContainer(t *testing.T) {
	l := NewPanel("L", "L", "")
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	tab := NewTabContainer("tc", []*Node{a, b}, "A")
	root := NewContainer("outer", Horizontal, l, tab, 0.5)
	m := newTestManager(root)

	if !m.MovePanel("L", "A", TabInto) {
		t.Fatal("MovePanel(L,A,tab-into) = false, want true")
	}
	// The container lost its left child and collapses; the moved panel
	// joins A's TabContainer rather than nesting a new one inside it.
	if m.state.Root.Kind != KindTabContainer {
		t.Fatalf("root = %+v, want the surviving TabContainer", m.state.Root)
	}
	if len(m.state.Root.Panels) != 3 {
		t.Fatalf("panels = %d, want 3", len(m.state.Root.Panels))
	}
	if m.state.Root.ActiveID != "L" {
		t.Fatalf("active = %q, want L", m.state.Root.ActiveID)
	}
	if err := CheckInvariants(&m.state); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestAddTabOnMemberPanelJoinsItsTabContainer(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewTabContainer("tc", []*Node{a, b}, "A")
	m := newTestManager(root)

	p, ok := m.AddTab("A", "", "C")
	if !ok {
		t.Fatal("AddTab(A) = false, want true")
	}
	if m.state.Root.Kind != KindTabContainer || len(m.state.Root.Panels) != 3 {
		t.Fatalf("root = %+v, want the same TabContainer with 3 panels", m.state.Root)
	}
	if m.state.Root.Panels[1].ID != p.ID {
		t.Fatalf("new tab at index %v, want inserted after A", m.state.Root.Panels)
	}
	if err := CheckInvariants(&m.state); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestMovePanelRejectsWhenMaximized(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewContainer("c1", Horizontal, a, b, 0.5)
	m := newTestManager(root)
	m.Maximize("A")

	before := m.Snapshot()
	if m.MovePanel("B", "A", Right) {
		t.Fatal("MovePanel succeeded while a panel is maximized")
	}
	after := m.Snapshot()
	if !statesStructurallyEqual(before.Root, after.Root) {
		t.Fatal("state mutated despite a rejected MovePanel")
	}
}

func TestMovePanelRejectsUnknownTarget(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewContainer("c1", Horizontal, a, b, 0.5)
	m := newTestManager(root)

	before := m.Snapshot()
	if m.MovePanel("B", "does-not-exist", Right) {
		t.Fatal("MovePanel succeeded against an unknown target")
	}
	after := m.Snapshot()
	if !statesStructurallyEqual(before.Root, after.Root) {
		t.Fatal("state mutated despite a rejected MovePanel")
	}
}

func TestActivatePanelNoTabContainerAncestorIsNoOp(t *testing.T) {
	a := NewPanel("A", "A", "")
	m := newTestManager(a)

	if m.ActivatePanel("A") {
		t.Fatal("ActivatePanel on a lone root panel reported success")
	}
}

func TestCycleTabWraps(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewTabContainer("tc", []*Node{a, b}, "A")
	m := newTestManager(root)

	if !m.CycleTab("tc", true) {
		t.Fatal("CycleTab forward failed")
	}
	if m.state.Root.ActiveID != "B" {
		t.Fatalf("active = %q, want B", m.state.Root.ActiveID)
	}
	if !m.CycleTab("tc", true) {
		t.Fatal("CycleTab forward (wrap) failed")
	}
	if m.state.Root.ActiveID != "A" {
		t.Fatalf("active after wrap = %q, want A", m.state.Root.ActiveID)
	}
}

func TestMaximizeRestore(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewContainer("c1", Horizontal, a, b, 0.5)
	m := newTestManager(root)

	if !m.Maximize("A") {
		t.Fatal("Maximize(A) = false")
	}
	if m.state.MaximizedPanelID != "A" {
		t.Fatalf("maximizedPanelId = %q, want A", m.state.MaximizedPanelID)
	}
	if m.ResizeContainer("c1", 0.7) {
		t.Fatal("ResizeContainer succeeded while maximized")
	}
	if !m.Restore() {
		t.Fatal("Restore() = false")
	}
	if m.state.MaximizedPanelID != "" {
		t.Fatalf("maximizedPanelId after Restore = %q, want empty", m.state.MaximizedPanelID)
	}
}

func TestResizeContainerClamps(t *testing.T) {
	a := NewPanel("A", "A", "")
	b := NewPanel("B", "B", "")
	root := NewContainer("c1", Horizontal, a, b, 0.5)
	m := newTestManager(root)

	m.ResizeContainer("c1", 0.0)
	if m.state.Root.Size != 0.1 {
		t.Fatalf("size = %v, want clamped to 0.1", m.state.Root.Size)
	}
	m.ResizeContainer("c1", 1.0)
	if m.state.Root.Size != 0.9 {
		t.Fatalf("size = %v, want clamped to 0.9", m.state.Root.Size)
	}
}

func TestUniqueTitlePolicy(t *testing.T) {
	m := NewManager() // seeds a single panel titled "Panel"
	p2 := m.AddPanel("", "")
	if p2.Title != "Panel (1)" {
		t.Fatalf("second untitled panel = %q, want %q", p2.Title, "Panel (1)")
	}
}

func statesStructurallyEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.ID != b.ID {
		return false
	}
	switch a.Kind {
	case KindPanel:
		return a.Title == b.Title && a.ContentKey == b.ContentKey
	case KindContainer:
		return a.SplitDirection == b.SplitDirection && a.Size == b.Size &&
			statesStructurallyEqual(a.First, b.First) && statesStructurallyEqual(a.Second, b.Second)
	case KindTabContainer:
		if a.ActiveID != b.ActiveID || len(a.Panels) != len(b.Panels) {
			return false
		}
		for i := range a.Panels {
			if !statesStructurallyEqual(a.Panels[i], b.Panels[i]) {
				return false
			}
		}
		return true
	}
	return false
}
