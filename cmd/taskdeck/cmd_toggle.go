package main

import (
	"fmt"

	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/spf13/cobra"
)

func newToggleCmd(flags *globalFlags) *cobra.Command {
	var done bool
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task's completion flag",
		Long:  "Flip a task's completion flag, or set it explicitly with --done=true|false. The list is re-fetched afterwards so the printed state is the server's.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer a.Close()

			desired := done
			if !cmd.Flags().Changed("done") {
				current, err := commands.ShowTask(cmd.Context(), a.client, id)
				if err != nil {
					return err
				}
				desired = !current.IsCompleted
			}

			res := commands.SetCompletion(cmd.Context(), a.client, a.logger, id, desired, "")
			if res.PatchErr != nil {
				return fmt.Errorf("updating task %d: %w", id, res.PatchErr)
			}
			if res.FetchErr != nil {
				return fmt.Errorf("reloading tasks: %w", res.FetchErr)
			}
			if !res.Found {
				return fmt.Errorf("task %d not found after update", id)
			}

			state := "open"
			if res.Task.IsCompleted {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task %d is %s: %s\n", id, state, res.Task.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&done, "done", false, "Set the completion flag instead of flipping it")
	return cmd
}
