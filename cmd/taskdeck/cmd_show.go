package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/tasks"
	"github.com/spf13/cobra"
)

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
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

			t, err := commands.ShowTask(cmd.Context(), a.client, id)
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func printTask(out io.Writer, t tasks.Task) {
	status := "open"
	if t.IsCompleted {
		status = "done"
	}
	fmt.Fprintf(out, "%s\n\n", t.Title)
	fmt.Fprintf(out, "  ID:       %d\n", t.ID)
	fmt.Fprintf(out, "  Status:   %s\n", status)
	fmt.Fprintf(out, "  Created:  %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "  Updated:  %s\n", t.UpdatedAt.Format(time.RFC3339))
	if desc := t.DescriptionText(); desc != "" {
		fmt.Fprintf(out, "\n%s\n", desc)
	}
}
