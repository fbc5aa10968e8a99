package content

import (
	"testing"

	"github.com/Higashi-Kota/drawing-explorer/internal/dock"
)

type fakeComponent struct{ key string }

func (f fakeComponent) PanelComponent() {}

func TestResolveByContentKey(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{Key: "draw", Label: "Drawing", Content: fakeComponent{key: "draw-instance"}})

	panel := dock.NewPanel("p1", "Panel", "draw")
	got := Resolve(panel, reg)
	if got != (fakeComponent{key: "draw-instance"}) {
		t.Fatalf("Resolve() = %v, want the registered descriptor's content", got)
	}
}

func TestResolveFallsBackToEmbeddedContent(t *testing.T) {
	reg := NewRegistry()
	panel := dock.NewPanel("p1", "Panel", "missing-key")
	panel.Content = "embedded"

	got := Resolve(panel, reg)
	if got != "embedded" {
		t.Fatalf("Resolve() = %v, want embedded content fallback", got)
	}
}

func TestInstanceKeyForPanelComponentUsesContentKey(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{Key: "draw", Content: fakeComponent{key: "instance-a"}})
	panel := dock.NewPanel("p1", "Panel", "draw")

	resolved := Resolve(panel, reg)
	if key := InstanceKeyFor(panel, resolved); key != "draw" {
		t.Fatalf("InstanceKeyFor() = %q, want the panel's contentKey", key)
	}
}

func TestInstanceKeyForNonComponentUsesPanelID(t *testing.T) {
	panel := dock.NewPanel("p1", "Panel", "")
	panel.Content = "plain string"

	if key := InstanceKeyFor(panel, panel.Content); key != "p1" {
		t.Fatalf("InstanceKeyFor() = %q, want panel id for non-component content", key)
	}
}

func TestAvailablePreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{Key: "a"})
	reg.Register(Descriptor{Key: "b"})
	reg.Register(Descriptor{Key: "a"}) // re-register, shouldn't duplicate or reorder

	got := reg.Available()
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "b" {
		t.Fatalf("Available() = %+v, want [a, b] in registration order", got)
	}
}

func TestBindWiresManagerOperations(t *testing.T) {
	a := dock.NewPanel("A", "A", "")
	b := dock.NewPanel("B", "B", "")
	root := dock.NewTabContainer("tc", []*dock.Node{a, b}, "A")
	m := dock.NewManagerWithRoot(root)
	cb := Bind(m)

	if !cb.OnActivate("B") {
		t.Fatal("Callbacks.OnActivate did not delegate to the manager")
	}
	if !cb.OnMaximize("B") {
		t.Fatal("Callbacks.OnMaximize did not delegate to the manager")
	}
	if !cb.OnRestore() {
		t.Fatal("Callbacks.OnRestore did not delegate to the manager")
	}
}
