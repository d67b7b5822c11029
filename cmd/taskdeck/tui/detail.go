package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// Detail shows one task's fields in a scrollable viewport.
type Detail struct {
	task     tasks.Task
	viewport viewport.Model
	loading  bool
}

// NewDetail creates an empty detail pane.
func NewDetail() Detail {
	return Detail{viewport: viewport.New(40, 10)}
}

// Show displays t. loading marks the content as possibly stale until the
// fresh copy arrives.
func (d *Detail) Show(t tasks.Task, loading bool) {
	d.task = t
	d.loading = loading
	d.viewport.SetContent(d.render())
	d.viewport.GotoTop()
}

// Task returns the task on display.
func (d Detail) Task() tasks.Task {
	return d.task
}

// SetSize sets the viewport dimensions.
func (d *Detail) SetSize(w, h int) {
	d.viewport.Width = max(w, 10)
	d.viewport.Height = max(h, 1)
	d.viewport.SetContent(d.render())
}

// Update scrolls the viewport.
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the pane.
func (d Detail) View() string {
	return DetailBorderStyle.Render(d.viewport.View())
}

func (d Detail) render() string {
	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render(d.task.Title))
	if d.loading {
		b.WriteString(" " + DimStyle.Render("(refreshing)"))
	}
	b.WriteString("\n\n")

	status := OpenStyle.Render("open")
	if d.task.IsCompleted {
		status = DoneStyle.Render("done")
	}
	field := func(label, value string) {
		b.WriteString(DetailLabelStyle.Render(label) + value + "\n")
	}
	field("Status", status)
	field("Created", formatTime(d.task.CreatedAt))
	field("Updated", formatTime(d.task.UpdatedAt))
	b.WriteString("\n")

	desc := d.task.DescriptionText()
	if desc == "" {
		b.WriteString(DimStyle.Render("No description."))
	} else {
		b.WriteString(ansi.Wordwrap(desc, max(d.viewport.Width-2, 10), " "))
	}
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
