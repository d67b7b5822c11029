package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	baseURL    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Browse and complete remote tasks",
		Long:         "taskdeck lists, searches, and completes tasks held by a remote task API. Without a subcommand it opens the interactive list on a terminal and prints the list otherwise.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// TTY guard: fall back to the plain list when stdin is not a
			// terminal (piping, CI, scripts, etc.)
			if !term.IsTerminal(os.Stdin.Fd()) {
				return runList(cmd, flags, listOptions{})
			}
			return runHome(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.taskdeck/config.yaml)")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "task collection URL (overrides config and $TASKDECK_BASE_URL)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newAddCmd(flags))
	root.AddCommand(newToggleCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newDevserverCmd(flags))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskdeck %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
