package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ruminaider/taskdeck/internal/debounce"
	"github.com/ruminaider/taskdeck/internal/focus"
	"github.com/ruminaider/taskdeck/internal/logging"
	"github.com/ruminaider/taskdeck/internal/store"
)

// Alerter shows a blocking failure notification to the user.
type Alerter interface {
	Alert(err error)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(error)

// Alert calls f(err).
func (f AlertFunc) Alert(err error) { f(err) }

// HomeOptions wires a Home controller.
type HomeOptions struct {
	Store    *store.Store
	Patcher  Patcher
	Focus    focus.Source
	Alerter  Alerter
	Logger   *slog.Logger
	Debounce time.Duration // quiet period for Search; 0 means debounce.DefaultDelay
}

// Home drives the task list view: it debounces search input, refreshes on
// focus and toggles completion. It owns the current search query, which
// stays empty until the first debounced search settles.
type Home struct {
	store   *store.Store
	patcher Patcher
	alerter Alerter
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	query string

	debouncer *debounce.Debouncer
	trigger   *focus.Trigger
	closeOnce sync.Once
}

// NewHome creates the controller and subscribes it to focus events.
func NewHome(opts HomeOptions) *Home {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Home{
		store:   opts.Store,
		patcher: opts.Patcher,
		alerter: opts.Alerter,
		logger:  opts.Logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	if h.logger == nil {
		h.logger = logging.Discard()
	}
	if h.alerter == nil {
		h.alerter = AlertFunc(func(error) {})
	}

	h.debouncer = debounce.New(opts.Debounce, h.applySearch)
	if opts.Focus != nil {
		// Emit blocks for the fetch; hosts call it off their UI goroutine.
		h.trigger = focus.NewTrigger(opts.Focus, func() { _ = h.Refresh() })
	}
	return h
}

// Query returns the search query currently applied to the list.
func (h *Home) Query() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query
}

// Search records a keystroke's worth of search text. The list is fetched
// once the text has been stable for the debounce delay.
func (h *Home) Search(text string) {
	h.debouncer.Push(text)
}

// SubmitSearch applies pending search text immediately.
func (h *Home) SubmitSearch() {
	h.debouncer.Flush()
}

// SearchPending reports whether search text is waiting for the quiet period.
func (h *Home) SearchPending() bool {
	return h.debouncer.Pending()
}

func (h *Home) applySearch(text string) {
	h.mu.Lock()
	h.query = text
	h.mu.Unlock()
	_ = h.Refresh()
}

// Refresh fetches the list for the current query. A failure leaves the
// previous list in place and raises exactly one alert. After Close, Refresh
// returns context.Canceled without touching the store.
func (h *Home) Refresh() error {
	if err := h.ctx.Err(); err != nil {
		return err
	}
	query := h.Query()
	err := h.store.FetchTasks(h.ctx, query)
	if err == nil {
		return nil
	}
	if h.ctx.Err() != nil {
		return err
	}
	h.logger.Error("fetch tasks failed", "query", query, "error", err)
	h.alerter.Alert(err)
	return err
}

// Toggle sets a task's completion flag and reconciles the list with the
// server using the current query. Failures are logged, never alerted.
func (h *Home) Toggle(id int64, desired bool) ToggleResult {
	return ToggleCompletion(h.ctx, h.patcher, h.store, h.logger, id, desired, h.Query())
}

// Close cancels outstanding requests and stops the debouncer and the focus
// trigger, waiting for a refresh already running in either. Pending search
// text is dropped. Once Close returns neither starts another fetch and no
// alert is raised.
func (h *Home) Close() {
	h.closeOnce.Do(func() {
		// Cancel first so the stops below only wait on aborted requests.
		h.cancel()
		h.debouncer.Stop()
		if h.trigger != nil {
			h.trigger.Stop()
		}
	})
}
