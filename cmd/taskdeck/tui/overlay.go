package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayAlert   OverlayType = iota // Failure message with a single OK button
	OverlayAddTask                    // Title and description inputs
)

// Overlay renders a centered modal box on top of existing content.
type Overlay struct {
	overlayType OverlayType
	title       string
	message     string
	inputs      []textinput.Model // title, description (add-task)
	focusIdx    int
	errText     string
	width       int
	active      bool
}

// NewAlertOverlay creates a blocking alert. Enter or Esc dismisses it.
func NewAlertOverlay(title, message string) Overlay {
	return Overlay{
		overlayType: OverlayAlert,
		title:       title,
		message:     message,
		active:      true,
	}
}

// NewAddTaskOverlay creates the add-task form.
func NewAddTaskOverlay() Overlay {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 40
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1000
	desc.Width = 40

	return Overlay{
		overlayType: OverlayAddTask,
		title:       "New task",
		inputs:      []textinput.Model{title, desc},
		active:      true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Type returns the overlay kind.
func (o Overlay) Type() OverlayType {
	return o.overlayType
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	switch o.overlayType {
	case OverlayAlert:
		return o.updateAlert(msg)
	case OverlayAddTask:
		return o.updateAddTask(msg)
	}
	return o, nil
}

func (o Overlay) updateAlert(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "esc", " ":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: true}
			}
		}
	}
	return o, nil
}

func (o Overlay) updateAddTask(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		case "tab", "shift+tab", "up", "down":
			o.focusIdx = 1 - o.focusIdx
			for i := range o.inputs {
				if i == o.focusIdx {
					o.inputs[i].Focus()
				} else {
					o.inputs[i].Blur()
				}
			}
			return o, nil
		case "enter":
			draft := tasks.NewDraft(o.inputs[0].Value(), o.inputs[1].Value())
			if err := draft.Validate(); err != nil {
				o.errText = err.Error()
				return o, nil
			}
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Draft: draft, Confirmed: true}
			}
		}
	}

	// Delegate other keys to the focused input.
	var cmd tea.Cmd
	o.inputs[o.focusIdx], cmd = o.inputs[o.focusIdx].Update(msg)
	o.errText = ""
	return o, cmd
}

// View renders the overlay box. Compositing over a background is the
// caller's job, using Composite.
func (o Overlay) View() string {
	if !o.active {
		return ""
	}
	switch o.overlayType {
	case OverlayAlert:
		return AlertOverlayStyle.Render(o.viewAlert())
	case OverlayAddTask:
		return OverlayStyle.Render(o.viewAddTask())
	}
	return ""
}

func (o Overlay) viewAlert() string {
	var b strings.Builder
	b.WriteString(AlertTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	msg := o.message
	if o.width > 8 {
		msg = ansi.Wordwrap(msg, o.width-8, " /")
	}
	b.WriteString(msg)
	b.WriteString("\n\n")
	b.WriteString(OverlayButtonActiveStyle.Render("OK"))
	return b.String()
}

func (o Overlay) viewAddTask() string {
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	for _, in := range o.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if o.errText != "" {
		b.WriteString(AlertTitleStyle.Render(o.errText) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(OverlayHintStyle.Render("Enter: save  Tab: next field  Esc: cancel"))
	return b.String()
}

// SetWidth sets the overlay box width hint.
func (o *Overlay) SetWidth(w int) {
	o.width = w
	inputWidth := max(w-8, 20) // account for overlay padding and border
	for i := range o.inputs {
		o.inputs[i].Width = inputWidth
	}
}

// OverlayMaxWidth returns a reasonable maximum width for the overlay content.
func OverlayMaxWidth(termWidth int) int {
	return min(max(termWidth*2/3, 40), 60)
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}

		// Cut by display cells so styled backgrounds are not split mid-sequence.
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)
		left := ansi.Truncate(bgLine, startCol, "")
		if pad := startCol - bgWidth; pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < bgWidth {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + overlayLine + right
	}

	return strings.Join(bgLines[:max(totalHeight, 1)], "\n")
}
