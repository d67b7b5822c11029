//go:build integration

package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ruminaider/taskdeck/internal/api"
	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/devserver"
	"github.com/ruminaider/taskdeck/internal/focus"
	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	debounce = 50 * time.Millisecond
	waitFor  = 3 * time.Second
	tick     = 10 * time.Millisecond
)

type alertCounter struct {
	mu   sync.Mutex
	errs []error
}

func (a *alertCounter) Alert(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errs = append(a.errs, err)
}

func (a *alertCounter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.errs)
}

// queryRecorder records the search parameter of every list request.
type queryRecorder struct {
	mu      sync.Mutex
	queries []string
	next    http.Handler
}

func (q *queryRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Path == devserver.BasePath {
		q.mu.Lock()
		q.queries = append(q.queries, r.URL.Query().Get("search"))
		q.mu.Unlock()
	}
	q.next.ServeHTTP(w, r)
}

func (q *queryRecorder) list() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.queries...)
}

func TestMountSearchToggleScenario(t *testing.T) {
	srv := devserver.New([]string{"Buy milk", "Walk dog"})
	rec := &queryRecorder{next: srv.Handler()}
	ts := httptest.NewServer(rec)
	defer ts.Close()

	client := api.New(ts.URL + devserver.BasePath)
	s := store.New(client)
	emitter := focus.NewEmitter()
	alerts := &alertCounter{}
	home := commands.NewHome(commands.HomeOptions{
		Store:    s,
		Patcher:  client,
		Focus:    emitter,
		Alerter:  alerts,
		Debounce: debounce,
	})
	defer home.Close()

	// Mount.
	emitter.Emit()
	require.Eventually(t, func() bool { return len(s.Tasks()) == 2 }, waitFor, tick)
	assert.Equal(t, []string{""}, rec.list())

	// Type "milk" one keystroke at a time.
	for _, v := range []string{"m", "mi", "mil", "milk"} {
		home.Search(v)
		time.Sleep(debounce / 5)
	}
	require.Eventually(t, func() bool { return len(s.Tasks()) == 1 }, waitFor, tick)
	time.Sleep(3 * debounce)
	assert.Equal(t, []string{"", "milk"}, rec.list())

	// Toggle complete.
	id := s.Tasks()[0].ID
	res := home.Toggle(id, true)
	require.True(t, res.OK())
	assert.Equal(t, []string{"", "milk", "milk"}, rec.list())
	require.Len(t, s.Tasks(), 1)
	assert.True(t, s.Tasks()[0].IsCompleted)

	// Regaining focus re-fetches with the current query.
	emitter.Blur()
	emitter.Emit()
	require.Eventually(t, func() bool { return len(rec.list()) == 4 }, waitFor, tick)
	assert.Equal(t, "milk", rec.list()[3])
	assert.Equal(t, 0, alerts.count())
}

func TestServerDownAlertsOnceAndKeepsList(t *testing.T) {
	srv := devserver.New([]string{"Buy milk"})
	ts := httptest.NewServer(srv.Handler())

	client := api.New(ts.URL+devserver.BasePath, api.WithTimeout(time.Second))
	s := store.New(client)
	alerts := &alertCounter{}
	home := commands.NewHome(commands.HomeOptions{Store: s, Patcher: client, Alerter: alerts, Debounce: debounce})
	defer home.Close()

	require.NoError(t, home.Refresh())
	ts.Close()

	err := home.Refresh()
	require.ErrorIs(t, err, api.ErrTransport)
	assert.Equal(t, 1, alerts.count())
	assert.Len(t, s.Tasks(), 1)

	// Toggle against a dead server is logged, not alerted.
	res := home.Toggle(1, true)
	assert.Error(t, res.PatchErr)
	assert.Error(t, res.FetchErr)
	assert.Equal(t, 1, alerts.count())
}

// slowQuery delays list responses for one query.
func slowQuery(next http.Handler, query string, delay time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == query {
			time.Sleep(delay)
		}
		next.ServeHTTP(w, r)
	})
}

func TestOverlappingFetches(t *testing.T) {
	srv := devserver.New([]string{"Buy milk", "Walk dog", "Mop floor"})
	ts := httptest.NewServer(slowQuery(srv.Handler(), "m", 200*time.Millisecond))
	defer ts.Close()
	client := api.New(ts.URL + devserver.BasePath)

	race := func(s *store.Store) {
		ctx := context.Background()
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.FetchTasks(ctx, "m")
		}()
		time.Sleep(50 * time.Millisecond)
		require.NoError(t, s.FetchTasks(ctx, "milk"))
		wg.Wait()
	}

	t.Run("last completion wins by default", func(t *testing.T) {
		s := store.New(client)
		race(s)
		assert.Equal(t, "m", s.LastQuery())
		assert.Len(t, s.Tasks(), 2)
	})

	t.Run("stale guard keeps the newer query", func(t *testing.T) {
		s := store.New(client, store.WithStaleGuard())
		race(s)
		assert.Equal(t, "milk", s.LastQuery())
		assert.Len(t, s.Tasks(), 1)
	})
}
