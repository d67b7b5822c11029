package tasks_test

import (
	"encoding/json"
	"testing"

	"github.com/ruminaider/taskdeck/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUnmarshal(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		input := []byte(`{
  "id": 7,
  "title": "Buy milk",
  "description": "2 liters",
  "isCompleted": true,
  "createdAt": "2026-01-02T10:00:00Z",
  "updatedAt": "2026-01-03T11:30:00Z"
}`)
		var task tasks.Task
		require.NoError(t, json.Unmarshal(input, &task))
		assert.Equal(t, int64(7), task.ID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2 liters", task.DescriptionText())
		assert.True(t, task.IsCompleted)
		assert.Equal(t, 2026, task.CreatedAt.Year())
		assert.Equal(t, 11, task.UpdatedAt.Hour())
	})

	t.Run("null description", func(t *testing.T) {
		var task tasks.Task
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"x","description":null,"isCompleted":false,"createdAt":"2026-01-02T10:00:00Z","updatedAt":"2026-01-02T10:00:00Z"}`), &task))
		assert.Nil(t, task.Description)
		assert.Equal(t, "", task.DescriptionText())
	})

	t.Run("legacy updated_at key", func(t *testing.T) {
		var task tasks.Task
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"x","isCompleted":false,"createdAt":"2026-01-02T10:00:00Z","updated_at":"2026-02-01T00:00:00Z"}`), &task))
		assert.Equal(t, 2, int(task.UpdatedAt.Month()))
	})

	t.Run("wrong shape", func(t *testing.T) {
		var task tasks.Task
		assert.Error(t, json.Unmarshal([]byte(`{"id":"seven"}`), &task))
	})
}

func TestTaskSummary(t *testing.T) {
	assert.Equal(t, "[ ] Walk dog", tasks.Task{Title: "Walk dog"}.Summary())
	assert.Equal(t, "[x] Walk dog", tasks.Task{Title: "Walk dog", IsCompleted: true}.Summary())
}

func TestDraft(t *testing.T) {
	d := tasks.NewDraft("  Call mom ", "")
	assert.Equal(t, "Call mom", d.Title)
	assert.Nil(t, d.Description)
	assert.NoError(t, d.Validate())

	d = tasks.NewDraft("x", " notes ")
	require.NotNil(t, d.Description)
	assert.Equal(t, "notes", *d.Description)

	assert.ErrorIs(t, tasks.NewDraft("   ", "desc").Validate(), tasks.ErrEmptyTitle)
}

func TestFind(t *testing.T) {
	list := []tasks.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}

	got, ok := tasks.Find(list, 2)
	require.True(t, ok)
	assert.Equal(t, "b", got.Title)

	_, ok = tasks.Find(list, 3)
	assert.False(t, ok)
}
