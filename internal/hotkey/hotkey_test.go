package hotkey

import "testing"

func TestDispatchExactModifierMatch(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(Binding{Command: "save", Key: "S", Modifiers: Modifiers{Ctrl: true}})

	cmd, ok := d.Dispatch(KeyEvent{Name: "s", Modifiers: Modifiers{Ctrl: true}})
	if !ok || cmd != "save" {
		t.Fatalf("Dispatch(ctrl+s) = (%q,%v), want (save,true)", cmd, ok)
	}

	_, ok = d.Dispatch(KeyEvent{Name: "s", Modifiers: Modifiers{Ctrl: true, Shift: true}})
	if ok {
		t.Fatal("Dispatch matched with an extra modifier held, want no match")
	}
}

func TestDispatchMacOSCtrlMetaEquivalence(t *testing.T) {
	d := NewDispatcher(true)
	d.Register(Binding{Command: "undo", Key: "Z", Modifiers: Modifiers{Ctrl: true}})

	_, ok := d.Dispatch(KeyEvent{Name: "Z", Modifiers: Modifiers{Meta: true}})
	if !ok {
		t.Fatal("macOS dispatch did not accept meta in place of ctrl")
	}

	_, ok = d.Dispatch(KeyEvent{Name: "Z", Modifiers: Modifiers{Ctrl: true}})
	if !ok {
		t.Fatal("macOS dispatch did not accept ctrl directly")
	}
}

func TestDispatchNonMacOSKeepsCtrlAndMetaDistinct(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(Binding{Command: "undo", Key: "Z", Modifiers: Modifiers{Ctrl: true}})

	_, ok := d.Dispatch(KeyEvent{Name: "Z", Modifiers: Modifiers{Meta: true}})
	if ok {
		t.Fatal("non-macOS dispatch accepted meta for a ctrl binding")
	}
}

func TestDispatchSuppressedInTextEntry(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(Binding{Command: "save", Key: "S", Modifiers: Modifiers{Ctrl: true}})

	_, ok := d.Dispatch(KeyEvent{Name: "s", Modifiers: Modifiers{Ctrl: true}, TargetIsTextEntry: true})
	if ok {
		t.Fatal("Dispatch fired inside a text entry target")
	}
}

func TestDispatchEscapeBypassesTextEntrySuppression(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(Binding{Command: "cancel", Key: "Escape"})

	cmd, ok := d.Dispatch(KeyEvent{Name: "Escape", TargetIsTextEntry: true})
	if !ok || cmd != "cancel" {
		t.Fatalf("Dispatch(Escape in text entry) = (%q,%v), want (cancel,true)", cmd, ok)
	}
}

func TestMatchExclusivity(t *testing.T) {
	d := NewDispatcher(false)
	RegisterDefaults(d)

	events := []KeyEvent{
		{Name: "Z", Modifiers: Modifiers{Ctrl: true}},
		{Name: "Z", Modifiers: Modifiers{Ctrl: true, Shift: true}},
		{Name: "S", Modifiers: Modifiers{Ctrl: true}},
		{Name: "3"},
		{Name: "5", Modifiers: Modifiers{Shift: true}},
	}

	for _, e := range events {
		matches := 0
		for _, b := range d.Bindings() {
			if b.matches(e, d.isMacOS) {
				matches++
			}
		}
		if matches > 1 {
			t.Errorf("event %+v matched %d bindings, want at most 1", e, matches)
		}
	}
}

func TestDisplayFormattingNonMacOS(t *testing.T) {
	d := NewDispatcher(false)
	got := d.Display(Binding{Key: "S", Modifiers: Modifiers{Ctrl: true}})
	if got != "Ctrl+S" {
		t.Fatalf("Display = %q, want Ctrl+S", got)
	}
}

func TestDisplayFormattingMacOS(t *testing.T) {
	d := NewDispatcher(true)
	got := d.Display(Binding{Key: "Z", Modifiers: Modifiers{Meta: true, Shift: true}})
	if got != "⇧⌘Z" {
		t.Fatalf("Display = %q, want ⇧⌘Z", got)
	}
}

func TestDisplayKeyNameSubstitutions(t *testing.T) {
	d := NewDispatcher(false)
	if got := d.Display(Binding{Key: "Delete"}); got != "Del" {
		t.Errorf("Display(Delete) = %q, want Del", got)
	}
	if got := d.Display(Binding{Key: "Backspace"}); got != "⌫" {
		t.Errorf("Display(Backspace) = %q, want ⌫", got)
	}
	if got := d.Display(Binding{Key: "a"}); got != "A" {
		t.Errorf("Display(a) = %q, want A", got)
	}
}
