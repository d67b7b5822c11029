package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/ruminaider/taskdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleCompletion_PatchThenReconcile(t *testing.T) {
	api := testutil.NewFakeAPI("Buy milk", "Walk dog")
	s := store.New(api)
	logger, _ := newTestLogger()

	res := commands.ToggleCompletion(context.Background(), api, s, logger, 1, true, "milk")

	assert.True(t, res.OK())
	assert.Equal(t, []testutil.Patch{{ID: 1, IsCompleted: true}}, api.Patches())
	assert.Equal(t, []string{"patch", "fetch"}, api.Calls())
	assert.Equal(t, []string{"milk"}, api.Fetches())

	list := s.Tasks()
	require.Len(t, list, 1)
	assert.True(t, list[0].IsCompleted)
}

func TestToggleCompletion_ReconcilesEvenWhenPatchFails(t *testing.T) {
	api := testutil.NewFakeAPI("Buy milk")
	api.PatchErr = errors.New("connection refused")
	s := store.New(api)
	logger, logs := newTestLogger()

	res := commands.ToggleCompletion(context.Background(), api, s, logger, 1, true, "")

	assert.Error(t, res.PatchErr)
	assert.NoError(t, res.FetchErr)
	assert.False(t, res.OK())
	assert.Equal(t, []string{"patch", "fetch"}, api.Calls())
	assert.False(t, s.Tasks()[0].IsCompleted, "server truth wins")
	assert.Contains(t, logs.String(), "toggle: patch failed")
}

func TestToggleCompletion_FetchFailureIsLogged(t *testing.T) {
	api := testutil.NewFakeAPI("Buy milk")
	api.FetchErr = errors.New("HTTP 503")
	s := store.New(api)
	logger, logs := newTestLogger()

	res := commands.ToggleCompletion(context.Background(), api, s, logger, 1, false, "milk")

	assert.NoError(t, res.PatchErr)
	assert.Error(t, res.FetchErr)
	assert.Empty(t, s.Tasks())
	assert.Contains(t, logs.String(), "toggle: reconciling fetch failed")
	assert.Contains(t, logs.String(), "query=milk")
}
