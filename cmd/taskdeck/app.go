package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ruminaider/taskdeck/internal/api"
	"github.com/ruminaider/taskdeck/internal/config"
	"github.com/ruminaider/taskdeck/internal/logging"
	"github.com/ruminaider/taskdeck/internal/paths"
	"github.com/ruminaider/taskdeck/internal/store"
	"github.com/spf13/cobra"
)

// app is the wiring shared by the subcommands.
type app struct {
	cfg    config.Config
	client *api.Client
	logger *slog.Logger
	closer io.Closer
}

func (a *app) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *app) storeOptions() []store.Option {
	var opts []store.Option
	if a.cfg.DiscardStaleResponses {
		opts = append(opts, store.WithStaleGuard())
	}
	return opts
}

func (f *globalFlags) resolvedConfigPath() string {
	if f.configPath != "" {
		return f.configPath
	}
	return paths.ConfigFile()
}

// loadConfig reads the config file and applies the --base-url override.
func loadConfig(f *globalFlags) (config.Config, error) {
	cfg, err := config.Load(f.resolvedConfigPath())
	if err != nil {
		return config.Config{}, err
	}
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--base-url: %w", err)
		}
	}
	return cfg, nil
}

// newApp builds the client and logger. Interactive sessions log to a file
// because the terminal belongs to the TUI; everything else logs to stderr.
func newApp(cmd *cobra.Command, f *globalFlags, interactive bool) (*app, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	// Plain commands share stderr with their errors, so only warnings show.
	writer, level := cmd.ErrOrStderr(), "warn"
	if interactive {
		level = cfg.LogLevel
		path := cfg.LogFile
		if path == "" {
			path = paths.LogFile()
		}
		file, err := logging.OpenFile(path)
		if err != nil {
			return nil, err
		}
		writer = file
		a.closer = file
	}
	a.logger = logging.NewLogger(logging.Options{
		Level:     level,
		Writer:    writer,
		Component: "taskdeck",
	})
	a.client = api.New(cfg.BaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithUserAgent("taskdeck/"+version),
	)
	return a, nil
}
