//go:build !darwin

package hotkey

// platformDefaults returns the Windows/Linux default bindings: Ctrl
// for undo/redo/save, using ctrl+z/ctrl+shift+z/ctrl+y/
// ctrl+s/ctrl+delete defaults.
func platformDefaults() []Binding {
	return []Binding{
		{Command: CmdToolPencil, Key: "P", Description: "Pencil tool"},
		{Command: CmdToolEraser, Key: "E", Description: "Eraser tool"},
		{Command: CmdUndo, Key: "Z", Modifiers: Modifiers{Ctrl: true}, Description: "Undo"},
		{Command: CmdRedo, Key: "Z", Modifiers: Modifiers{Ctrl: true, Shift: true}, Description: "Redo"},
		{Command: CmdRedo, Key: "Y", Modifiers: Modifiers{Ctrl: true}, Description: "Redo (alternate)"},
		{Command: CmdSave, Key: "S", Modifiers: Modifiers{Ctrl: true}, Description: "Save"},
		{Command: CmdClear, Key: "Delete", Modifiers: Modifiers{Ctrl: true}, Description: "Clear canvas"},
	}
}
