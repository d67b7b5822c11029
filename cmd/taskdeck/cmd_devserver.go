package main

import (
	"github.com/ruminaider/taskdeck/internal/devserver"
	"github.com/ruminaider/taskdeck/internal/logging"
	"github.com/spf13/cobra"
)

var defaultSeed = []string{"Buy milk", "Walk dog", "Read a book"}

func newDevserverCmd(flags *globalFlags) *cobra.Command {
	var addr string
	var seed []string
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serve an in-memory task API for local development",
		Long:  "Serve the task API from memory at " + devserver.BasePath + ". Data is lost on exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(logging.Options{
				Level:     cfg.LogLevel,
				Writer:    cmd.ErrOrStderr(),
				Component: "devserver",
			})
			srv := devserver.New(seed, devserver.WithLogger(logger))
			logger.Info("listening", "addr", addr, "path", devserver.BasePath, "tasks", len(seed))
			return srv.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	cmd.Flags().StringSliceVar(&seed, "seed", defaultSeed, "Titles of the tasks to start with")
	return cmd
}
