package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/taskdeck/cmd/taskdeck/tui"
	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/focus"
	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/spf13/cobra"
)

// runHome opens the interactive task list.
func runHome(cmd *cobra.Command, flags *globalFlags) error {
	a, err := newApp(cmd, flags, true)
	if err != nil {
		return err
	}
	defer a.Close()

	s := store.New(a.client, a.storeOptions()...)
	emitter := focus.NewEmitter()
	events := tui.NewEvents()
	unwatch := events.Watch(s)

	home := commands.NewHome(commands.HomeOptions{
		Store:    s,
		Patcher:  a.client,
		Focus:    emitter,
		Alerter:  events,
		Logger:   a.logger,
		Debounce: a.cfg.SearchDebounce,
	})
	defer func() {
		home.Close()
		unwatch()
		events.Close()
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a.logger.Info("starting", "base_url", a.cfg.BaseURL, "stale_guard", a.cfg.DiscardStaleResponses)
	model := tui.NewModel(ctx, tui.Deps{
		Home:   home,
		Store:  s,
		Focus:  emitter,
		API:    a.client,
		Events: events,
		Logger: a.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
