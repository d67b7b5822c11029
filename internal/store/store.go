// Package store holds the shared task list. The list is replaced wholesale
// by each successful fetch and read by every view that renders tasks.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/ruminaider/taskdeck/internal/tasks"
)

// Fetcher lists tasks from the remote API.
type Fetcher interface {
	FetchTasks(ctx context.Context, query string) ([]tasks.Task, error)
}

// Snapshot is the state delivered to subscribers after each commit.
type Snapshot struct {
	Tasks []tasks.Task
	Query string
	Seq   uint64 // sequence number of the fetch that produced Tasks
}

// Option customizes a Store.
type Option func(*Store)

// WithStaleGuard makes the store drop a completion whose fetch started before
// the fetch that produced the currently held list.
func WithStaleGuard() Option {
	return func(s *Store) { s.staleGuard = true }
}

// Store is the single process-wide holder of the task list.
type Store struct {
	fetcher    Fetcher
	staleGuard bool

	mu        sync.Mutex
	list      []tasks.Task
	lastQuery string
	issued    uint64 // last sequence number handed out
	committed uint64 // sequence number of the held list
	inFlight  int
	subs      map[int]func(Snapshot)
	nextSub   int
}

// New creates an empty store backed by fetcher.
func New(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: fetcher,
		list:    []tasks.Task{},
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a copy of the held list in server order.
func (s *Store) Tasks() []tasks.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.list)
}

// LastQuery returns the query of the fetch that produced the held list.
func (s *Store) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// InFlight returns how many fetches are currently outstanding.
func (s *Store) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// FetchTasks fetches the list for query and, on success, replaces the held
// list with the result. On failure the held list is left as it was and the
// error is returned. Overlapping calls are not cancelled: without the stale
// guard, whichever completes last wins.
func (s *Store) FetchTasks(ctx context.Context, query string) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.inFlight++
	s.mu.Unlock()

	list, err := s.fetcher.FetchTasks(ctx, query)

	s.mu.Lock()
	s.inFlight--
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if s.staleGuard && seq < s.committed {
		s.mu.Unlock()
		return nil
	}
	s.list = slices.Clone(list)
	s.lastQuery = query
	s.committed = seq
	snap := Snapshot{Tasks: slices.Clone(s.list), Query: query, Seq: seq}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

// Subscribe registers fn to be called after every committed fetch. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
