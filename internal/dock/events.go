package dock

// Event names emitted by Manager. Every
// structural mutation emits its granular event(s) first, then
// EventLayoutChanged last; purely cosmetic changes (activation,
// maximize/restore) do not touch layoutChanged.
const (
	EventPanelAdded         = "panelAdded"
	EventPanelRemoved       = "panelRemoved"
	EventPanelEdited        = "panelEdited"
	EventPanelMoved         = "panelMoved"
	EventResize             = "resize"
	EventActivePanelChanged = "activePanelChanged"
	EventLayoutChanged      = "layoutChanged"
	EventPanelMaximized     = "panelMaximized"
	EventPanelRestored      = "panelRestored"
)

// PanelPayload carries a single panel id, used by panelAdded,
// panelRemoved, panelMaximized, panelRestored, and activePanelChanged.
type PanelPayload struct {
	PanelID string
}

// PanelEditedPayload describes what changed on a panel.
type PanelEditedPayload struct {
	PanelID    string
	Title      string
	ContentKey string
}

// PanelMovedPayload describes a completed move.
type PanelMovedPayload struct {
	SourceID string
	TargetID string
	Position Position
}

// ResizePayload describes a container resize.
type ResizePayload struct {
	ContainerID string
	Size        float64
}

// LayoutChangedPayload carries a snapshot of the state after a
// structural mutation.
type LayoutChangedPayload struct {
	State State
}
