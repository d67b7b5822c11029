package tui

import (
	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// FocusZone identifies which component currently has keyboard focus.
type FocusZone int

const (
	FocusList   FocusZone = iota
	FocusSearch           // Search box
	FocusDetail           // Detail pane, read-only scroll
)

// --- Messages from background work ---

// SnapshotMsg carries a committed task list from the store.
type SnapshotMsg struct{ Snapshot store.Snapshot }

// AlertMsg asks the view to show a blocking failure alert.
type AlertMsg struct{ Err error }

// ToggledMsg reports the outcome of a completion toggle.
type ToggledMsg struct {
	ID     int64
	Result commands.ToggleResult
}

// DetailMsg carries a freshly loaded task for the detail pane.
type DetailMsg struct {
	Task tasks.Task
	Err  error
}

// CreatedMsg reports the outcome of the add-task overlay.
type CreatedMsg struct {
	Task tasks.Task
	Err  error
}

// OverlayCloseMsg is emitted when any overlay is dismissed.
type OverlayCloseMsg struct {
	Draft     tasks.Draft // submitted draft (add-task overlay)
	Confirmed bool        // true = Submit/OK, false = Esc
}
