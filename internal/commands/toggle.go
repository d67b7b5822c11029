package commands

import (
	"context"
	"log/slog"
)

// Patcher sets the completion flag of a remote task.
type Patcher interface {
	PatchCompletion(ctx context.Context, id int64, isCompleted bool) error
}

// Refresher re-fetches the shared task list for a query.
type Refresher interface {
	FetchTasks(ctx context.Context, query string) error
}

// ToggleResult records the outcome of both halves of a toggle.
type ToggleResult struct {
	PatchErr error
	FetchErr error
}

// OK reports whether both the patch and the reconciling fetch succeeded.
func (r ToggleResult) OK() bool {
	return r.PatchErr == nil && r.FetchErr == nil
}

// ToggleCompletion patches the task's completion flag and then, whatever the
// patch outcome, re-fetches the list for query so the displayed rows match
// the server. The list is never edited locally. Failures are logged and
// returned in the result; they are never routed to the alert path.
func ToggleCompletion(ctx context.Context, p Patcher, r Refresher, logger *slog.Logger, id int64, desired bool, query string) ToggleResult {
	var res ToggleResult

	if err := p.PatchCompletion(ctx, id, desired); err != nil {
		res.PatchErr = err
		logger.Warn("toggle: patch failed", "task_id", id, "desired", desired, "error", err)
	}

	if err := r.FetchTasks(ctx, query); err != nil {
		res.FetchErr = err
		logger.Warn("toggle: reconciling fetch failed", "task_id", id, "query", query, "error", err)
	}

	return res
}
