// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hostlog/hostlog/internal/config"
	"github.com/hostlog/hostlog/pkg/environment"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives it and goes through it for configuration, logging and the
	// environment strategy.
	App struct {
		Config ConfigProvider
		getenv func(string) string
		stdout io.Writer
		stderr io.Writer

		// Global flag values.
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Getenv func(string) string
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// session is what a command needs once configuration is loaded.
	session struct {
		cfg    *config.Config
		logger *log.Logger
		opts   []environment.Option
	}
)

// NewApp creates an App with production defaults for unset dependencies.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		getenv: deps.Getenv,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.getenv == nil {
		app.getenv = os.Getenv
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

// newSession loads configuration and derives the logger and strategy
// options from it. extra options are applied last and win.
func (a *App) newSession(ctx context.Context, extra ...environment.Option) (*session, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger(a.stderr, a.verbose)

	opts := cfg.ToOptions(logger)
	opts = append(opts, environment.WithGetenv(a.getenv))
	opts = append(opts, extra...)
	return &session{cfg: cfg, logger: logger, opts: opts}, nil
}

// strategy selects the strategy for this process.
func (s *session) strategy(extra ...environment.Option) environment.Strategy {
	return environment.Select(append(append([]environment.Option(nil), s.opts...), extra...)...)
}
