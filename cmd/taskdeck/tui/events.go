package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/taskdeck/internal/store"
)

const eventBuffer = 64

// Events forwards store commits and alerts raised on background goroutines
// into the Bubble Tea event loop. It satisfies commands.Alerter.
type Events struct {
	ch        chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewEvents creates an open event pump.
func NewEvents() *Events {
	return &Events{
		ch:   make(chan tea.Msg, eventBuffer),
		done: make(chan struct{}),
	}
}

// Alert queues a blocking alert for err.
func (e *Events) Alert(err error) {
	e.send(AlertMsg{Err: err})
}

// Watch forwards every commit of s until the returned function is called.
func (e *Events) Watch(s *store.Store) (unwatch func()) {
	return s.Subscribe(func(snap store.Snapshot) {
		e.send(SnapshotMsg{Snapshot: snap})
	})
}

// Close stops delivery. Later sends are dropped.
func (e *Events) Close() {
	e.closeOnce.Do(func() { close(e.done) })
}

func (e *Events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	case <-e.done:
	}
}

// Next returns a command that waits for the next event. The model re-issues
// it after handling each event.
func (e *Events) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-e.ch:
			return msg
		case <-e.done:
			return nil
		}
	}
}
