package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

// TaskAPI is the remote surface used by the non-interactive commands.
type TaskAPI interface {
	store.Fetcher
	Patcher
	GetTask(ctx context.Context, id int64) (tasks.Task, error)
	CreateTask(ctx context.Context, d tasks.Draft) (tasks.Task, error)
}

// ListTasks fetches the list for query through a store, so the result is
// exactly what a view would hold after the same fetch.
func ListTasks(ctx context.Context, api TaskAPI, query string) ([]tasks.Task, error) {
	s := store.New(api)
	if err := s.FetchTasks(ctx, query); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return s.Tasks(), nil
}

// ShowTask fetches a single task.
func ShowTask(ctx context.Context, api TaskAPI, id int64) (tasks.Task, error) {
	t, err := api.GetTask(ctx, id)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("loading task %d: %w", id, err)
	}
	return t, nil
}

// AddTask validates and submits a new task.
func AddTask(ctx context.Context, api TaskAPI, d tasks.Draft) (tasks.Task, error) {
	if err := d.Validate(); err != nil {
		return tasks.Task{}, err
	}
	t, err := api.CreateTask(ctx, d)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// SetCompletionResult is the outcome of SetCompletion.
type SetCompletionResult struct {
	ToggleResult
	Task  tasks.Task // the task as seen by the reconciling fetch
	Found bool       // false when the reconciling fetch did not return the task
}

// SetCompletion toggles a task outside the interactive view. It runs the same
// patch-then-reconcile sequence as the list view and reports the reconciled
// row.
func SetCompletion(ctx context.Context, api TaskAPI, logger *slog.Logger, id int64, desired bool, query string) SetCompletionResult {
	s := store.New(api)
	res := SetCompletionResult{
		ToggleResult: ToggleCompletion(ctx, api, s, logger, id, desired, query),
	}
	if res.FetchErr == nil {
		res.Task, res.Found = tasks.Find(s.Tasks(), id)
	}
	return res
}
