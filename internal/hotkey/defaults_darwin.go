//go:build darwin

package hotkey

// platformDefaults returns the macOS default bindings: Cmd for
// undo/redo/save, matching macOS convention.
func platformDefaults() []Binding {
	return []Binding{
		{Command: CmdToolPencil, Key: "P", Description: "Pencil tool"},
		{Command: CmdToolEraser, Key: "E", Description: "Eraser tool"},
		{Command: CmdUndo, Key: "Z", Modifiers: Modifiers{Meta: true}, Description: "Undo"},
		{Command: CmdRedo, Key: "Z", Modifiers: Modifiers{Meta: true, Shift: true}, Description: "Redo"},
		{Command: CmdRedo, Key: "Y", Modifiers: Modifiers{Meta: true}, Description: "Redo (alternate)"},
		{Command: CmdSave, Key: "S", Modifiers: Modifiers{Meta: true}, Description: "Save"},
		{Command: CmdClear, Key: "Delete", Modifiers: Modifiers{Meta: true}, Description: "Clear canvas"},
	}
}
