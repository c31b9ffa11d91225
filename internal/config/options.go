// SPDX-License-Identifier: MPL-2.0

package config

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/hostlog/hostlog/pkg/environment"
	"github.com/hostlog/hostlog/pkg/ipc"
)

// ToOptions maps the settings onto environment strategy options. Unset
// fields contribute nothing, so detection still applies to them.
func (c *Config) ToOptions(logger *log.Logger) []environment.Option {
	var opts []environment.Option
	if logger != nil {
		opts = append(opts, environment.WithLogger(logger))
	}
	if c.AppName != "" {
		opts = append(opts, environment.WithAppName(c.AppName))
	}
	if c.Platform != "" {
		opts = append(opts, environment.WithPlatform(c.Platform))
	}
	if c.Home != "" {
		opts = append(opts, environment.WithHome(c.Home))
	}
	if c.Dev != nil {
		opts = append(opts, environment.WithDev(*c.Dev))
	}
	return opts
}

// IPCServerConfig returns the bridge server settings.
func (c *Config) IPCServerConfig(logger *log.Logger) ipc.Config {
	return ipc.Config{
		Host:            c.IPC.Host,
		Port:            c.IPC.Port,
		ShutdownTimeout: c.IPC.ShutdownTimeout,
		Logger:          logger,
	}
}

// NewLogger returns the CLI logger writing to w at the configured level.
// verbose forces debug.
func (c *Config) NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if c.LogLevel != "" {
		if parsed, err := log.ParseLevel(string(c.LogLevel)); err == nil {
			level = parsed
		}
	}
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Prefix: AppName, Level: level})
}
