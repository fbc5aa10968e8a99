// Package hotkey implements the keyboard shortcut dispatcher: binding
// lookup, modifier matching (with the macOS ctrl/meta equivalence),
// text-entry scoping, and platform-sensitive display formatting. It
// works against its own host-agnostic KeyEvent type, so it carries no
// dependency on a concrete widget toolkit.
package hotkey

import (
	"strings"

	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
)

// Modifiers is the set of modifier keys held during a KeyEvent.
type Modifiers struct {
	Ctrl, Shift, Alt, Meta bool
}

// KeyEvent is a host-agnostic description of a key press. Name is
// compared case-insensitively against a Binding's Key.
type KeyEvent struct {
	Name              string
	Modifiers         Modifiers
	TargetIsTextEntry bool
}

// Binding is a single keyboard shortcut.
type Binding struct {
	Command     string
	Key         string
	Modifiers   Modifiers
	Description string
}

// matches reports whether e satisfies b, applying the macOS ctrl/meta
// equivalence when isMacOS is true: either side of ctrl/meta in the
// event satisfies a ctrl or meta requirement in the binding.
func (b Binding) matches(e KeyEvent, isMacOS bool) bool {
	if !strings.EqualFold(b.Key, e.Name) {
		return false
	}
	if e.Modifiers.Shift != b.Modifiers.Shift || e.Modifiers.Alt != b.Modifiers.Alt {
		return false
	}

	if isMacOS {
		// ctrl and meta are equivalent: collapse both sides to "either
		// held" before comparing.
		held := e.Modifiers.Ctrl || e.Modifiers.Meta
		wanted := b.Modifiers.Ctrl || b.Modifiers.Meta
		return held == wanted
	}

	return e.Modifiers.Ctrl == b.Modifiers.Ctrl && e.Modifiers.Meta == b.Modifiers.Meta
}

// Dispatcher resolves KeyEvents against a registered set of Bindings,
// applying text-entry scoping and platform-sensitive matching.
type Dispatcher struct {
	isMacOS  bool
	bindings []Binding
}

// NewDispatcher returns a Dispatcher for the given platform. isMacOS
// selects the ctrl/meta equivalence and display formatting rules.
func NewDispatcher(isMacOS bool) *Dispatcher {
	return &Dispatcher{isMacOS: isMacOS}
}

// Register adds a binding. Later registrations are not deduplicated;
// callers should not register conflicting bindings for the same key.
func (d *Dispatcher) Register(b Binding) {
	d.bindings = append(d.bindings, b)
}

// Bindings returns the registered bindings, in registration order.
func (d *Dispatcher) Bindings() []Binding {
	out := make([]Binding, len(d.bindings))
	copy(out, d.bindings)
	return out
}

// Dispatch resolves e against the registered bindings. Dispatch is
// suppressed when e.TargetIsTextEntry is true, unless the key is
// Escape. Returns the matching command and true, or ("", false) if
// nothing matches or dispatch is suppressed.
func (d *Dispatcher) Dispatch(e KeyEvent) (command string, ok bool) {
	if e.TargetIsTextEntry && !strings.EqualFold(e.Name, "Escape") {
		return "", false
	}

	for _, b := range d.bindings {
		if b.matches(e, d.isMacOS) {
			debug.Log(debug.HOTKEY, "Dispatch: %s -> %s", e.Name, b.Command)
			return b.Command, true
		}
	}
	return "", false
}

// Display formats b for presentation: on macOS, "⌘/⌥/⇧" joined with no
// separator; elsewhere "Ctrl/Alt/Shift" joined with "+". The key name
// itself is rendered Delete→Del, Backspace→⌫, otherwise upper-cased.
func (d *Dispatcher) Display(b Binding) string {
	return formatBinding(b, d.isMacOS)
}

func formatBinding(b Binding, isMacOS bool) string {
	var parts []string
	if isMacOS {
		if b.Modifiers.Alt {
			parts = append(parts, "⌥")
		}
		if b.Modifiers.Shift {
			parts = append(parts, "⇧")
		}
		if b.Modifiers.Ctrl || b.Modifiers.Meta {
			parts = append(parts, "⌘")
		}
		parts = append(parts, formatKeyName(b.Key))
		return strings.Join(parts, "")
	}

	if b.Modifiers.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if b.Modifiers.Alt {
		parts = append(parts, "Alt")
	}
	if b.Modifiers.Shift {
		parts = append(parts, "Shift")
	}
	if b.Modifiers.Meta {
		parts = append(parts, "Meta")
	}
	parts = append(parts, formatKeyName(b.Key))
	return strings.Join(parts, "+")
}

func formatKeyName(key string) string {
	switch strings.ToLower(key) {
	case "delete", "del":
		return "Del"
	case "backspace":
		return "⌫"
	default:
		return strings.ToUpper(key)
	}
}
