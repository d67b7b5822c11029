package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Header and search box.
var (
	// TitleStyle renders the app name in the header row.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorMauve).
			Padding(0, 1).
			Bold(true)

	// SearchBoxStyle wraps the search input when it does not have focus.
	SearchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	// SearchBoxFocusedStyle wraps the search input while typing.
	SearchBoxFocusedStyle = SearchBoxStyle.
				BorderForeground(colorBlue)

	// SpinnerStyle colors the loading spinner.
	SpinnerStyle = lipgloss.NewStyle().Foreground(colorMauve)
)

// Task list styles.
var (
	// DoneStyle is used for the checkbox and title of completed tasks.
	DoneStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// OpenStyle is used for the checkbox of open tasks.
	OpenStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// CursorRowStyle highlights the task under the cursor.
	CursorRowStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	// DimStyle is used for scroll hints and empty-list text.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// ContentPaneStyle wraps the list and detail panes.
	ContentPaneStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)
)

// Detail pane styles.
var (
	// DetailLabelStyle renders field labels in the detail pane.
	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0).
				Width(10)

	// DetailTitleStyle renders the task title in the detail pane.
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// DetailBorderStyle frames the detail pane.
	DetailBorderStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(colorBlue).
				PaddingLeft(1)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for modal overlays.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// AlertOverlayStyle is used for failure alerts.
	AlertOverlayStyle = OverlayStyle.
				BorderForeground(colorRed)

	// OverlayTitleStyle is used for the title text in overlays.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// AlertTitleStyle is used for the title of failure alerts.
	AlertTitleStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	// OverlayButtonActiveStyle is used for the focused button in overlays.
	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 2)

	// OverlayHintStyle is used for key hints inside overlays.
	OverlayHintStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0)
)
