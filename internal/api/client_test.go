package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ruminaider/taskdeck/internal/api"
	"github.com/ruminaider/taskdeck/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTasks = `[
  {"id": 2, "title": "Walk dog", "description": null, "isCompleted": false, "createdAt": "2026-01-01T00:00:00Z", "updatedAt": "2026-01-01T00:00:00Z"},
  {"id": 1, "title": "Buy milk", "description": "oat", "isCompleted": true, "createdAt": "2026-01-01T00:00:00Z", "updatedAt": "2026-01-02T00:00:00Z"}
]`

func TestListURL(t *testing.T) {
	c := api.New("http://example.test/api/tasks/")

	tests := []struct {
		query    string
		expected string
	}{
		{"", "http://example.test/api/tasks"},
		{"milk", "http://example.test/api/tasks?search=milk"},
		{"oat milk", "http://example.test/api/tasks?search=oat%20milk"},
		{"a&b=c+d", "http://example.test/api/tasks?search=a%26b%3Dc%2Bd"},
		{"çay", "http://example.test/api/tasks?search=%C3%A7ay"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.ListURL(tt.query))
		})
	}
}

func TestFetchTasks(t *testing.T) {
	t.Run("no query omits the search parameter", func(t *testing.T) {
		var gotURL string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			assert.Equal(t, http.MethodGet, r.Method)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			_, _ = io.WriteString(w, twoTasks)
		}))
		defer srv.Close()

		list, err := api.New(srv.URL + "/api/tasks").FetchTasks(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "/api/tasks", gotURL)
		require.Len(t, list, 2)
		// Server order is preserved.
		assert.Equal(t, int64(2), list[0].ID)
		assert.Equal(t, int64(1), list[1].ID)
		assert.Equal(t, "oat", list[1].DescriptionText())
	})

	t.Run("query is sent url-encoded", func(t *testing.T) {
		var gotSearch string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSearch = r.URL.Query().Get("search")
			_, _ = io.WriteString(w, `[]`)
		}))
		defer srv.Close()

		list, err := api.New(srv.URL).FetchTasks(context.Background(), "oat milk & honey")
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NotNil(t, list)
		assert.Equal(t, "oat milk & honey", gotSearch)
	})

	t.Run("non-2xx status is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).FetchTasks(context.Background(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, api.ErrTransport)

		var te *api.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
		assert.Equal(t, "fetch", te.Op)
		assert.NotEmpty(t, te.RequestID)
	})

	t.Run("malformed body is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"not": "an array"}`)
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).FetchTasks(context.Background(), "")
		assert.ErrorIs(t, err, api.ErrTransport)
	})

	t.Run("trailing data after the array is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[{"id":1,"title":"Buy milk","isCompleted":false}] <html>oops`)
		}))
		defer srv.Close()

		list, err := api.New(srv.URL).FetchTasks(context.Background(), "")
		assert.ErrorIs(t, err, api.ErrTransport)
		assert.Nil(t, list)
	})

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "[{\"id\":1,\"title\":\"Buy milk\",\"isCompleted\":false}]\n\n")
		}))
		defer srv.Close()

		list, err := api.New(srv.URL).FetchTasks(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unreachable server is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := api.New(url).FetchTasks(context.Background(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, api.ErrTransport)

		var te *api.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 0, te.StatusCode)
	})
}

func TestPatchCompletion(t *testing.T) {
	t.Run("sends the completion flag", func(t *testing.T) {
		var gotMethod, gotPath, gotType string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotType = r.Header.Get("Content-Type")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		err := api.New(srv.URL+"/api/tasks").PatchCompletion(context.Background(), 42, true)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/api/tasks/42", gotPath)
		assert.Equal(t, "application/json", gotType)
		assert.Equal(t, map[string]any{"isCompleted": true}, gotBody)
	})

	t.Run("status is not inspected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		assert.NoError(t, api.New(srv.URL).PatchCompletion(context.Background(), 1, false))
	})

	t.Run("network failure is reported", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := api.New(url).PatchCompletion(context.Background(), 1, false)
		assert.ErrorIs(t, err, api.ErrTransport)
	})
}

func TestGetAndCreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks/5":
			_, _ = io.WriteString(w, `{"id":5,"title":"Read","description":null,"isCompleted":false,"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/tasks":
			var d tasks.Draft
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&d))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(tasks.Task{ID: 9, Title: d.Title, Description: d.Description})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := api.New(srv.URL+"/api/tasks", api.WithUserAgent("taskdeck/test"))

	got, err := c.GetTask(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Title)

	_, err = c.GetTask(context.Background(), 6)
	assert.ErrorIs(t, err, api.ErrTransport)

	created, err := c.CreateTask(context.Background(), tasks.NewDraft("Write report", "by friday"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "by friday", created.DescriptionText())

	_, err = c.CreateTask(context.Background(), tasks.NewDraft(" ", ""))
	assert.ErrorIs(t, err, tasks.ErrEmptyTitle)
}
