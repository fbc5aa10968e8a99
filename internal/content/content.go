// Package content implements the content binding layer: the contract a
// host uses to resolve a dock panel's contentKey to a renderable
// descriptor, and the callback surface that forwards UI gestures back
// into the dock manager.
package content

import (
	"github.com/Higashi-Kota/drawing-explorer/internal/dock"
)

// PanelComponent is the marker a content Descriptor's Content may
// implement. When present, the host re-keys the rendered instance on
// the panel's contentKey, so switching which descriptor a panel binds
// to always creates a fresh component instance instead of reusing
// state from whatever the panel rendered before — this is what
// prevents cross-panel state leaks when a panel's contentKey changes.
type PanelComponent interface {
	// PanelComponent marks the implementer; it carries no behaviour.
	PanelComponent()
}

// Descriptor is one entry of availableContents: a content binding a
// panel can select via its contentKey.
type Descriptor struct {
	Key     string
	Label   string
	Content any
}

// Registry holds the set of Descriptors a host can bind panels to.
type Registry struct {
	descriptors map[string]Descriptor
	order       []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: map[string]Descriptor{}}
}

// Register adds or replaces a Descriptor. Registration order is
// preserved for Available's iteration order.
func (r *Registry) Register(d Descriptor) {
	if _, exists := r.descriptors[d.Key]; !exists {
		r.order = append(r.order, d.Key)
	}
	r.descriptors[d.Key] = d
}

// Available returns every registered Descriptor, in registration
// order — the list of content types a host can offer in a panel
// chooser.
func (r *Registry) Available() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, k := range r.order {
		out[i] = r.descriptors[k]
	}
	return out
}

// Resolve implements the lookup rule: the content whose key equals
// panel's contentKey, falling back to panel's own embedded Content
// field when no descriptor matches (or contentKey is empty).
func Resolve(panel *dock.Node, registry *Registry) any {
	if panel == nil {
		return nil
	}
	if panel.ContentKey != "" {
		if d, ok := registry.descriptors[panel.ContentKey]; ok {
			return d.Content
		}
	}
	return panel.Content
}

// InstanceKeyFor returns the re-keying identity a host should cache a
// panel's rendered component under: when the resolved content is a
// PanelComponent, keying on contentKey (not panel id) forces a fresh
// instance whenever the panel is re-bound to a different descriptor.
// Content that isn't a PanelComponent is assumed to be stateless and
// keys on the panel id instead, since nothing distinguishes instances.
func InstanceKeyFor(panel *dock.Node, resolved any) string {
	if panel == nil {
		return ""
	}
	if _, ok := resolved.(PanelComponent); ok {
		return panel.ContentKey
	}
	return panel.ID
}

// Callbacks is the host-facing surface named here: onMove, onRemove,
// onMaximize, onRestore, onActivate, onResize. Bind wires each to
// the dock Manager's corresponding operation.
type Callbacks struct {
	OnMove     func(sourceID, targetID string, position dock.Position) bool
	OnRemove   func(id string) bool
	OnMaximize func(id string) bool
	OnRestore  func() bool
	OnActivate func(id string) bool
	OnResize   func(nodeID string, size float64) bool
}

// Bind returns a Callbacks wired directly to manager's operations, the
// glue a host installs once per dock Manager instance.
func Bind(manager *dock.Manager) Callbacks {
	return Callbacks{
		OnMove:     manager.MovePanel,
		OnRemove:   manager.RemovePanel,
		OnMaximize: manager.Maximize,
		OnRestore:  manager.Restore,
		OnActivate: manager.ActivatePanel,
		OnResize:   manager.ResizeContainer,
	}
}
