package focus_test

import (
	"sync/atomic"
	"testing"

	"github.com/ruminaider/taskdeck/internal/focus"
	"github.com/stretchr/testify/assert"
)

func TestEmitter_FocusState(t *testing.T) {
	e := focus.NewEmitter()
	assert.False(t, e.Focused())

	e.Emit()
	assert.True(t, e.Focused())

	e.Blur()
	assert.False(t, e.Focused())
}

func TestEmitter_Unsubscribe(t *testing.T) {
	e := focus.NewEmitter()
	var calls atomic.Int32
	unsubscribe := e.Subscribe(func() { calls.Add(1) })

	e.Emit()
	unsubscribe()
	unsubscribe()
	e.Emit()

	assert.Equal(t, int32(1), calls.Load())
}

func TestTrigger_RefreshesOnEveryFocus(t *testing.T) {
	e := focus.NewEmitter()
	var calls atomic.Int32
	tr := focus.NewTrigger(e, func() { calls.Add(1) })
	defer tr.Stop()

	e.Emit()
	assert.Equal(t, int32(1), calls.Load())

	// Blur alone does not refresh; refocusing does.
	e.Blur()
	e.Emit()
	e.Blur()
	e.Emit()
	assert.Equal(t, int32(3), calls.Load())
}

func TestTrigger_NoRefreshAfterStop(t *testing.T) {
	e := focus.NewEmitter()
	var calls atomic.Int32
	tr := focus.NewTrigger(e, func() { calls.Add(1) })

	tr.Stop()
	tr.Stop()
	e.Emit()

	assert.Equal(t, int32(0), calls.Load())
}

// stubSource hands out the registered callback so a test can invoke it after
// the trigger has unsubscribed, simulating an event already in delivery.
type stubSource struct {
	fn           func()
	unsubscribed bool
}

func (s *stubSource) Subscribe(fn func()) func() {
	s.fn = fn
	return func() { s.unsubscribed = true }
}

func TestTrigger_LateDeliveryIsDropped(t *testing.T) {
	src := &stubSource{}
	var calls atomic.Int32
	tr := focus.NewTrigger(src, func() { calls.Add(1) })

	tr.Stop()
	assert.True(t, src.unsubscribed)

	src.fn()
	assert.Equal(t, int32(0), calls.Load())
}
