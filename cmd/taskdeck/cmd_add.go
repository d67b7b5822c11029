package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/tasks"
	"github.com/spf13/cobra"
)

func newAddCmd(flags *globalFlags) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Long:  "Create a task. Without --title on a terminal, a form asks for the title and description.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && len(args) == 1 {
				title = args[0]
			}
			if strings.TrimSpace(title) == "" {
				if !term.IsTerminal(os.Stdin.Fd()) {
					return tasks.ErrEmptyTitle
				}
				if err := promptDraft(&title, &description); err != nil {
					return err
				}
			}

			a, err := newApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := commands.AddTask(cmd.Context(), a.client, tasks.NewDraft(title, description))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return cmd
}

// promptDraft asks for the fields of a new task.
func promptDraft(title, description *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(func(s string) error {
					return tasks.NewDraft(s, "").Validate()
				}),
			huh.NewText().
				Title("Description").
				Description("Optional").
				Value(description),
		),
	).Run()
}
