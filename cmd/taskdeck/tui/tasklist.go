package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// TaskList is a scrollable list of task rows with a cursor.
type TaskList struct {
	tasks   []tasks.Task
	pending map[int64]bool // toggles awaiting reconciliation
	cursor  int
	height  int // number of visible rows
	width   int
	offset  int // scroll offset for long lists
	focused bool
	loaded  bool // false until the first snapshot arrives
}

// NewTaskList creates an empty list.
func NewTaskList() TaskList {
	return TaskList{
		height:  20,
		pending: make(map[int64]bool),
	}
}

// SetTasks replaces the rows. The cursor stays on the same task id when it
// is still present, otherwise it is clamped to the new length.
func (l *TaskList) SetTasks(list []tasks.Task) {
	var current int64
	if t, ok := l.Selected(); ok {
		current = t.ID
	}
	l.tasks = list
	l.loaded = true

	l.cursor = min(l.cursor, max(len(list)-1, 0))
	for i, t := range list {
		if t.ID == current {
			l.cursor = i
			break
		}
	}
	l.clampScroll()
}

// Tasks returns the rows currently displayed.
func (l TaskList) Tasks() []tasks.Task {
	return l.tasks
}

// Selected returns the task under the cursor.
func (l TaskList) Selected() (tasks.Task, bool) {
	if l.cursor < 0 || l.cursor >= len(l.tasks) {
		return tasks.Task{}, false
	}
	return l.tasks[l.cursor], true
}

// Cursor returns the index of the highlighted row.
func (l TaskList) Cursor() int {
	return l.cursor
}

// DoneCount returns the number of completed rows.
func (l TaskList) DoneCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// MarkPending flags a row as having a toggle in flight.
func (l *TaskList) MarkPending(id int64, pending bool) {
	if pending {
		l.pending[id] = true
	} else {
		delete(l.pending, id)
	}
}

// SetHeight sets the number of visible rows.
func (l *TaskList) SetHeight(h int) {
	l.height = h
	l.clampScroll()
}

// SetWidth sets the available width.
func (l *TaskList) SetWidth(w int) {
	l.width = w
}

// SetFocused sets whether the list has keyboard focus.
func (l *TaskList) SetFocused(f bool) {
	l.focused = f
}

// Update handles cursor movement keys.
func (l TaskList) Update(msg tea.Msg) (TaskList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.moveCursor(-1)
		case "down", "j":
			l.moveCursor(+1)
		case "home", "g":
			l.cursor = 0
			l.clampScroll()
		case "end", "G":
			l.cursor = max(len(l.tasks)-1, 0)
			l.clampScroll()
		}
	}
	return l, nil
}

// View renders the visible rows with scroll indicators.
func (l TaskList) View() string {
	if !l.loaded {
		return ContentPaneStyle.Render(DimStyle.Render("Loading tasks..."))
	}
	if len(l.tasks) == 0 {
		return ContentPaneStyle.Render(DimStyle.Render("(no tasks)"))
	}

	// Reserve lines for scroll indicators so total output stays within l.height.
	visible := l.height
	hasAbove := l.offset > 0
	hasBelow := l.offset+l.height < len(l.tasks)
	if hasAbove {
		visible--
	}
	if hasBelow {
		visible--
	}
	visible = max(visible, 1)

	var b strings.Builder
	if hasAbove {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}

	end := min(l.offset+visible, len(l.tasks))
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(i) + "\n")
	}

	if end < len(l.tasks) {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}
	return ContentPaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (l TaskList) renderRow(i int) string {
	t := l.tasks[i]

	cursor := "  "
	if l.focused && i == l.cursor {
		cursor = "> "
	}

	var checkbox, title, suffix string
	switch {
	case t.IsCompleted:
		checkbox = DoneStyle.Render("[x]")
	default:
		checkbox = OpenStyle.Render("[ ]")
	}

	// The checkbox shows server state; a toggle in flight only adds a hint.
	if l.pending[t.ID] {
		suffix = " " + DimStyle.Render("saving…")
	}

	title = t.Title
	if room := l.width - 8 - ansi.StringWidth(suffix); l.width > 8 && room > 0 {
		title = ansi.Truncate(title, room, "…")
	}
	switch {
	case l.focused && i == l.cursor:
		title = CursorRowStyle.Render(title)
	case t.IsCompleted:
		title = DimStyle.Strikethrough(true).Render(title)
	}
	return cursor + checkbox + " " + title + suffix
}

func (l *TaskList) moveCursor(dir int) {
	next := l.cursor + dir
	if next < 0 || next >= len(l.tasks) {
		return
	}
	l.cursor = next
	l.clampScroll()
}

// clampScroll keeps the cursor within the visible window.
func (l *TaskList) clampScroll() {
	if l.height <= 0 {
		return
	}
	// When rows overflow, scroll indicators take up to 2 lines.
	effective := l.height
	if len(l.tasks) > l.height {
		effective -= 2
	}
	effective = max(effective, 1)

	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+effective {
		l.offset = l.cursor - effective + 1
	}
	l.offset = min(l.offset, max(len(l.tasks)-effective, 0))
}
