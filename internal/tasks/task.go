package tasks

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrEmptyTitle is returned when a draft has a blank title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Task is a single remote task as returned by the task API.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UnmarshalJSON decodes a task, accepting the legacy "updated_at" key when
// "updatedAt" is absent.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var raw struct {
		plain
		LegacyUpdatedAt *time.Time `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task(raw.plain)
	if t.UpdatedAt.IsZero() && raw.LegacyUpdatedAt != nil {
		t.UpdatedAt = *raw.LegacyUpdatedAt
	}
	return nil
}

// DescriptionText returns the description, or "" when it is null.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Summary renders the task as a single "[x] title" line.
func (t Task) Summary() string {
	box := "[ ]"
	if t.IsCompleted {
		box = "[x]"
	}
	return box + " " + t.Title
}

// Draft is the payload used to create a task.
type Draft struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// NewDraft builds a draft, mapping an empty description to null.
func NewDraft(title, description string) Draft {
	d := Draft{Title: strings.TrimSpace(title)}
	if desc := strings.TrimSpace(description); desc != "" {
		d.Description = &desc
	}
	return d
}

// Validate checks that the draft can be submitted.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Find returns the task with the given id from list.
func Find(list []Task, id int64) (Task, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
