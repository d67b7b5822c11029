package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/focus"
	"github.com/ruminaider/taskdeck/internal/logging"
	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// Controller is the list screen logic driven by the model. *commands.Home
// implements it.
type Controller interface {
	Query() string
	Search(text string)
	SubmitSearch()
	Refresh() error
	Toggle(id int64, desired bool) commands.ToggleResult
}

// Deps wires the model to the shared store and the remote API.
type Deps struct {
	Home   Controller
	Store  *store.Store
	Focus  *focus.Emitter
	API    commands.TaskAPI
	Events *Events
	Logger *slog.Logger
}

// Model is the root bubbletea model for the task list screen.
type Model struct {
	ctx  context.Context
	deps Deps

	// Layout components.
	search    textinput.Model
	spinner   spinner.Model
	list      TaskList
	detail    Detail
	statusBar StatusBar
	overlay   Overlay

	// Alerts waiting behind the one on screen.
	alerts []error

	// State.
	focusZone     FocusZone
	lastSearch    string
	width, height int
	ready         bool // set after first WindowSizeMsg
	quitting      bool
}

// NewModel creates the list screen. ctx bounds the detail and create
// requests issued from the view.
func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "Search tasks..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	m := Model{
		ctx:       ctx,
		deps:      deps,
		search:    ti,
		spinner:   sp,
		list:      NewTaskList(),
		detail:    NewDetail(),
		statusBar: NewStatusBar(),
		focusZone: FocusList,
	}
	m.list.SetFocused(true)
	return m
}

// Init satisfies tea.Model. The first focus event triggers the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.deps.Events.Next(), appear(m.deps.Focus))
}

// appear reports the list as shown again. Emit blocks for the refresh, so it
// runs as a command rather than inside Update.
func appear(f *focus.Emitter) tea.Cmd {
	return func() tea.Msg {
		f.Emit()
		return nil
	}
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.distributeSize()
		return m, nil

	case tea.FocusMsg:
		return m, appear(m.deps.Focus)

	case tea.BlurMsg:
		m.deps.Focus.Blur()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncStatusBar()
		return m, cmd

	case SnapshotMsg:
		m.list.SetTasks(msg.Snapshot.Tasks)
		if m.focusZone == FocusDetail {
			if t, ok := tasks.Find(msg.Snapshot.Tasks, m.detail.Task().ID); ok {
				m.detail.Show(t, false)
			}
		}
		m.syncStatusBar()
		return m, m.deps.Events.Next()

	case AlertMsg:
		m = m.pushAlert(msg.Err)
		return m, m.deps.Events.Next()

	case ToggledMsg:
		m.list.MarkPending(msg.ID, false)
		return m, nil

	case DetailMsg:
		if msg.Err != nil {
			m.deps.Logger.Warn("load task failed", "id", m.detail.Task().ID, "error", msg.Err)
			m.detail.Show(m.detail.Task(), false)
			return m.pushAlert(msg.Err), nil
		}
		if m.focusZone == FocusDetail && msg.Task.ID == m.detail.Task().ID {
			m.detail.Show(msg.Task, false)
		}
		return m, nil

	case CreatedMsg:
		if msg.Err != nil {
			m.deps.Logger.Warn("create task failed", "error", msg.Err)
			return m.pushAlert(msg.Err), nil
		}
		m.deps.Logger.Info("task created", "id", msg.Task.ID)
		return m, nil
	}

	// When overlay is active, route ALL messages to the overlay.
	if m.overlay.Active() {
		return m.updateOverlay(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focusZone == FocusSearch {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.focusZone {
	case FocusSearch:
		return m.updateSearch(key)
	case FocusDetail:
		return m.updateDetail(key)
	}
	return m.updateList(key)
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m.quit()
	case "/":
		m.setFocus(FocusSearch)
		return m, textinput.Blink
	case " ":
		t, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.list.MarkPending(t.ID, true)
		return m, toggle(m.deps.Home, t.ID, !t.IsCompleted)
	case "enter":
		t, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.detail.Show(t, true)
		m.setFocus(FocusDetail)
		return m, loadDetail(m.ctx, m.deps.API, t.ID)
	case "a":
		m.overlay = NewAddTaskOverlay()
		m.overlay.SetWidth(OverlayMaxWidth(m.width))
		return m, textinput.Blink
	case "r":
		return m, refresh(m.deps.Home)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(key)
	return m, cmd
}

func (m Model) updateSearch(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.setFocus(FocusList)
		home := m.deps.Home
		return m, func() tea.Msg {
			home.SubmitSearch()
			return nil
		}
	case "esc":
		m.setFocus(FocusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	if v := m.search.Value(); v != m.lastSearch {
		m.lastSearch = v
		m.deps.Home.Search(v)
	}
	return m, cmd
}

func (m Model) updateDetail(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "enter", "q", "backspace":
		m.setFocus(FocusList)
		return m, appear(m.deps.Focus)
	case " ":
		t := m.detail.Task()
		m.list.MarkPending(t.ID, true)
		return m, toggle(m.deps.Home, t.ID, !t.IsCompleted)
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(key)
	return m, cmd
}

func (m Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasActive := m.overlay.Active()
	kind := m.overlay.Type()
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.Update(msg)

	// When the overlay just closed, the cmd is an OverlayCloseMsg producer.
	// Handle it directly instead of sending through the event loop.
	if wasActive && !m.overlay.Active() && cmd != nil {
		if closeMsg := extractOverlayClose(cmd); closeMsg != nil {
			return m.handleOverlayClose(kind, *closeMsg)
		}
	}
	return m, cmd
}

func (m Model) handleOverlayClose(kind OverlayType, msg OverlayCloseMsg) (tea.Model, tea.Cmd) {
	switch kind {
	case OverlayAlert:
		return m.showNextAlert(), nil
	case OverlayAddTask:
		if !msg.Confirmed {
			return m.showNextAlert(), appear(m.deps.Focus)
		}
		return m.showNextAlert(), create(m.ctx, m.deps.API, m.deps.Focus, msg.Draft)
	}
	return m, nil
}

// pushAlert queues err and shows it unless another overlay is on screen.
func (m Model) pushAlert(err error) Model {
	m.alerts = append(m.alerts, err)
	if !m.overlay.Active() {
		return m.showNextAlert()
	}
	return m
}

func (m Model) showNextAlert() Model {
	if len(m.alerts) == 0 {
		return m
	}
	err := m.alerts[0]
	m.alerts = m.alerts[1:]
	m.overlay = NewAlertOverlay(alertTitle(err), err.Error())
	m.overlay.SetWidth(OverlayMaxWidth(m.width))
	return m
}

func alertTitle(err error) string {
	if errors.Is(err, tasks.ErrEmptyTitle) {
		return "Invalid task"
	}
	return "Error"
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setFocus(z FocusZone) {
	m.focusZone = z
	m.list.SetFocused(z == FocusList)
	if z == FocusSearch {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
	m.syncStatusBar()
}

// --- Commands ---

func toggle(home Controller, id int64, desired bool) tea.Cmd {
	return func() tea.Msg {
		return ToggledMsg{ID: id, Result: home.Toggle(id, desired)}
	}
}

// refresh re-fetches the list. Failures reach the view as AlertMsg through
// the controller's alerter.
func refresh(home Controller) tea.Cmd {
	return func() tea.Msg {
		_ = home.Refresh()
		return nil
	}
}

func loadDetail(ctx context.Context, api commands.TaskAPI, id int64) tea.Cmd {
	return func() tea.Msg {
		t, err := commands.ShowTask(ctx, api, id)
		return DetailMsg{Task: t, Err: err}
	}
}

// create submits the draft, then reports the list as shown again so the
// refetch includes the new task.
func create(ctx context.Context, api commands.TaskAPI, f *focus.Emitter, d tasks.Draft) tea.Cmd {
	return func() tea.Msg {
		t, err := commands.AddTask(ctx, api, d)
		f.Emit()
		if err != nil {
			return CreatedMsg{Err: err}
		}
		return CreatedMsg{Task: t}
	}
}

// --- View ---

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	boxStyle := SearchBoxStyle
	if m.focusZone == FocusSearch {
		boxStyle = SearchBoxFocusedStyle
	}
	title := TitleStyle.Render("taskdeck")
	searchBox := boxStyle.Width(max(m.width-lipgloss.Width(title)-3, 10)).Render(m.search.View())
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", searchBox)

	var body string
	if m.focusZone == FocusDetail {
		body = m.detail.View()
	} else {
		body = m.list.View()
	}
	body = clampHeight(body, m.bodyHeight())

	frame := header + "\n" + body + "\n" + m.statusBar.View()
	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

// --- Layout helpers ---

const headerHeight = 3 // search box with border

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-1, 1)
}

func (m *Model) distributeSize() {
	m.list.SetHeight(m.bodyHeight())
	m.list.SetWidth(m.width)
	m.detail.SetSize(m.width-3, m.bodyHeight())
	m.statusBar.SetWidth(m.width)
	if m.overlay.Active() {
		m.overlay.SetWidth(OverlayMaxWidth(m.width))
	}
}

func (m *Model) syncStatusBar() {
	m.statusBar.Update(m.list.DoneCount(), len(m.list.Tasks()), m.deps.Home.Query(), m.focusZone)
	if m.deps.Store != nil && m.deps.Store.InFlight() > 0 {
		m.statusBar.SetLoading(m.spinner.View())
	} else {
		m.statusBar.SetLoading("")
	}
}

// clampHeight pads or truncates s to exactly maxLines lines.
func clampHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// extractOverlayClose runs a tea.Cmd synchronously to extract the message it
// produces. Overlay commands are simple closures returning a message.
func extractOverlayClose(cmd tea.Cmd) *OverlayCloseMsg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if m, ok := msg.(OverlayCloseMsg); ok {
		return &m
	}
	return nil
}

// Accessors used by the command layer and tests.

// Focus returns the focus zone.
func (m Model) Focus() FocusZone { return m.focusZone }

// List returns the task list component.
func (m Model) List() TaskList { return m.list }

// Overlay returns the active overlay.
func (m Model) Overlay() Overlay { return m.overlay }

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// Ensure Model satisfies tea.Model at compile time.
var _ tea.Model = Model{}
