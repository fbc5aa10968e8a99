package hotkey

// Command names for the drawing tools, history, and brush bindings
// shared by every platform's default set.
const (
	CmdToolPencil = "tool.pencil"
	CmdToolEraser = "tool.eraser"
	CmdUndo       = "history.undo"
	CmdRedo       = "history.redo"
	CmdSave       = "file.save"
	CmdClear      = "canvas.clear"
)

func brushSizeCommand(n int) string {
	return "brush.size." + string(rune('0'+n))
}

func colorSlotCommand(n int) string {
	return "color.slot." + string(rune('0'+n))
}

// registerSharedDefaults registers every platform-independent default:
// brush sizes 1-5 and colour slots 1-8 (shift+digit). Platform
// defaults (tools, undo/redo, save, clear) are added by
// RegisterDefaults, which also calls this.
func registerSharedDefaults(d *Dispatcher) {
	for n := 1; n <= 5; n++ {
		d.Register(Binding{
			Command:     brushSizeCommand(n),
			Key:         string(rune('0' + n)),
			Description: "Set brush size",
		})
	}
	for n := 1; n <= 8; n++ {
		d.Register(Binding{
			Command:     colorSlotCommand(n),
			Key:         string(rune('0' + n)),
			Modifiers:   Modifiers{Shift: true},
			Description: "Select colour slot",
		})
	}
}

// RegisterDefaults installs the full default binding set (tool
// selection, undo/redo, save, clear, brush sizes, colour slots) onto
// d, using the platform-appropriate modifier set.
func RegisterDefaults(d *Dispatcher) {
	for _, b := range platformDefaults() {
		d.Register(b)
	}
	registerSharedDefaults(d)
}
