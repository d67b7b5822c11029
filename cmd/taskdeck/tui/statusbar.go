package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with list counts and keyboard shortcuts.
type StatusBar struct {
	done    int
	total   int
	query   string
	loading string // spinner frame while a fetch is in flight
	focus   FocusZone
	width   int
}

// NewStatusBar creates a status bar with default values.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the counts and the applied query.
func (s *StatusBar) Update(done, total int, query string, focus FocusZone) {
	s.done = done
	s.total = total
	s.query = query
	s.focus = focus
}

// SetLoading shows frame next to the counts, or nothing when frame is empty.
func (s *StatusBar) SetLoading(frame string) {
	s.loading = frame
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := fmt.Sprintf("%d/%d done", s.done, s.total)
	if s.query != "" {
		left += fmt.Sprintf(" · search %q", s.query)
	}
	if s.loading != "" {
		left += " " + s.loading
	}

	rightPart := strings.Join(s.shortcuts(), " · ")

	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(rightPart)
	availableWidth := s.width - 2 // account for StatusBarStyle padding
	if leftWidth+rightWidth+1 > availableWidth {
		// Counts and query win over shortcuts on narrow terminals.
		rightPart = ansi.Truncate(rightPart, max(availableWidth-leftWidth-1, 0), "…")
		rightWidth = ansi.StringWidth(rightPart)
	}
	gap := max(availableWidth-leftWidth-rightWidth, 1)

	content := ansi.Truncate(left+strings.Repeat(" ", gap)+rightPart, max(availableWidth, 0), "…")
	return StatusBarStyle.Width(s.width).Render(content)
}

func (s StatusBar) shortcuts() []string {
	key := StatusBarKeyStyle.Render
	switch s.focus {
	case FocusSearch:
		return []string{key("Enter") + ": apply", key("Esc") + ": list"}
	case FocusDetail:
		return []string{key("↑↓") + ": scroll", key("Esc") + ": back"}
	default:
		return []string{
			key("Space") + ": toggle",
			key("/") + ": search",
			key("a") + ": add",
			key("r") + ": refresh",
			key("q") + ": quit",
		}
	}
}
