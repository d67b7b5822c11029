package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ruminaider/taskdeck/internal/commands"
	"github.com/ruminaider/taskdeck/internal/tasks"
	"github.com/spf13/cobra"
)

type listOptions struct {
	search string
	asJSON bool
}

func newListCmd(flags *globalFlags) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered by a search query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only list tasks matching this query")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the list as JSON")
	return cmd
}

func runList(cmd *cobra.Command, flags *globalFlags, opts listOptions) error {
	a, err := newApp(cmd, flags, false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := commands.ListTasks(cmd.Context(), a.client, opts.search)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	printTaskList(out, list, opts.search)
	return nil
}

func printTaskList(out io.Writer, list []tasks.Task, search string) {
	if len(list) == 0 {
		if search != "" {
			fmt.Fprintf(out, "No tasks match %q.\n", search)
		} else {
			fmt.Fprintln(out, "No tasks.")
		}
		return
	}
	done := 0
	for _, t := range list {
		fmt.Fprintf(out, "%4d  %s\n", t.ID, t.Summary())
		if t.IsCompleted {
			done++
		}
	}
	fmt.Fprintf(out, "\n%d/%d done\n", done, len(list))
}
