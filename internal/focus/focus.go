// Package focus turns view focus events into refreshes.
package focus

import (
	"sync"
)

// Source delivers focus events to subscribers.
type Source interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Emitter is a Source driven by the hosting view. The host calls Emit when
// the view becomes active and Blur when it loses focus.
type Emitter struct {
	mu      sync.Mutex
	subs    map[int]func()
	nextID  int
	focused bool
}

// NewEmitter creates an Emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[int]func())}
}

// Subscribe registers fn for every later Emit.
func (e *Emitter) Subscribe(fn func()) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Emit marks the view focused and notifies every subscriber.
func (e *Emitter) Emit() {
	e.mu.Lock()
	e.focused = true
	subs := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Blur marks the view as not focused. Subscribers are not notified.
func (e *Emitter) Blur() {
	e.mu.Lock()
	e.focused = false
	e.mu.Unlock()
}

// Focused reports whether the last event was a focus rather than a blur.
func (e *Emitter) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// Trigger calls refresh on every focus event from its source until stopped.
type Trigger struct {
	refresh     func()
	unsubscribe func()

	mu      sync.RWMutex
	stopped bool
}

// NewTrigger subscribes to src and calls refresh on every event.
func NewTrigger(src Source, refresh func()) *Trigger {
	t := &Trigger{refresh: refresh}
	t.unsubscribe = src.Subscribe(t.onFocus)
	return t
}

func (t *Trigger) onFocus() {
	// Holding the read lock across refresh makes Stop wait for a refresh
	// already in progress, so none can start after Stop returns.
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.stopped {
		return
	}
	t.refresh()
}

// Stop unsubscribes from the source. No refresh runs after Stop returns.
func (t *Trigger) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
	t.unsubscribe()
}
