// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ruminaider/taskdeck/internal/tasks"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// Patch records one PatchCompletion call.
type Patch struct {
	ID          int64
	IsCompleted bool
}

// FakeAPI is an in-memory task API for testing. Search matches titles
// case-insensitively; results are in insertion order.
type FakeAPI struct {
	mu      sync.Mutex
	tasks   []tasks.Task
	nextID  int64
	fetches []string
	patches []Patch
	calls   []string // "fetch" / "patch" / "get" / "create" in call order

	// Error injection for testing
	FetchErr  error
	PatchErr  error
	GetErr    error
	CreateErr error
}

// NewFakeAPI creates a FakeAPI holding the given titles as open tasks.
func NewFakeAPI(titles ...string) *FakeAPI {
	f := &FakeAPI{nextID: 1}
	for _, title := range titles {
		f.Add(title)
	}
	return f
}

// Add appends an open task and returns it.
func (f *FakeAPI) Add(title string) tasks.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t := tasks.Task{ID: f.nextID, Title: title, CreatedAt: now, UpdatedAt: now}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// FetchTasks implements the list endpoint.
func (f *FakeAPI) FetchTasks(ctx context.Context, query string) ([]tasks.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, query)
	f.calls = append(f.calls, "fetch")
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	result := []tasks.Task{}
	for _, t := range f.tasks {
		if q == "" || strings.Contains(strings.ToLower(t.Title), q) {
			result = append(result, t)
		}
	}
	return result, nil
}

// PatchCompletion implements the partial update endpoint.
func (f *FakeAPI) PatchCompletion(ctx context.Context, id int64, isCompleted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, Patch{ID: id, IsCompleted: isCompleted})
	f.calls = append(f.calls, "patch")
	if f.PatchErr != nil {
		return f.PatchErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].IsCompleted = isCompleted
			return nil
		}
	}
	return nil
}

// GetTask implements the item endpoint.
func (f *FakeAPI) GetTask(ctx context.Context, id int64) (tasks.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get")
	if f.GetErr != nil {
		return tasks.Task{}, f.GetErr
	}
	t, ok := tasks.Find(f.tasks, id)
	if !ok {
		return tasks.Task{}, ErrNotFound
	}
	return t, nil
}

// CreateTask implements the create endpoint.
func (f *FakeAPI) CreateTask(ctx context.Context, d tasks.Draft) (tasks.Task, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "create")
	err := f.CreateErr
	f.mu.Unlock()
	if err != nil {
		return tasks.Task{}, err
	}
	t := f.Add(d.Title)
	if d.Description != nil {
		f.mu.Lock()
		desc := *d.Description
		f.tasks[len(f.tasks)-1].Description = &desc
		t = f.tasks[len(f.tasks)-1]
		f.mu.Unlock()
	}
	return t, nil
}

// Fetches returns the queries of every FetchTasks call so far.
func (f *FakeAPI) Fetches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetches...)
}

// Patches returns every PatchCompletion call so far.
func (f *FakeAPI) Patches() []Patch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Patch(nil), f.patches...)
}

// Calls returns the kinds of every call in order.
func (f *FakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// SetFetchErr changes the injected fetch error under the lock.
func (f *FakeAPI) SetFetchErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchErr = err
}

// SetPatchErr changes the injected patch error under the lock.
func (f *FakeAPI) SetPatchErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PatchErr = err
}
