// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hostlog/hostlog/pkg/ipc"
	"github.com/hostlog/hostlog/pkg/platform"
	"github.com/hostlog/hostlog/pkg/types"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidIPCConfig is the sentinel error wrapped by InvalidIPCConfigError.
	ErrInvalidIPCConfig = errors.New("invalid ipc config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidIPCConfigError collects field errors of an IPCConfig.
	InvalidIPCConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field errors of a Config and its sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds hostlog's settings.
	Config struct {
		// AppName is applied as if set with SetAppName.
		AppName string `json:"app_name,omitempty" mapstructure:"app_name"`
		// Platform forces a platform family ("mac", "windows" or "unix").
		Platform platform.Family `json:"platform,omitempty" mapstructure:"platform"`
		// Home replaces the OS home directory.
		Home string `json:"home,omitempty" mapstructure:"home"`
		// Dev forces development mode on or off. Nil leaves it to the environment.
		Dev      *bool     `json:"dev,omitempty" mapstructure:"dev"`
		LogLevel LogLevel  `json:"log_level,omitempty" mapstructure:"log_level"`
		IPC      IPCConfig `json:"ipc,omitempty" mapstructure:"ipc"`
	}

	// IPCConfig configures the reference coordinator's bridge server.
	IPCConfig struct {
		Host string `json:"host,omitempty" mapstructure:"host"`
		// Port 0 picks a free port.
		Port            types.ListenPort `json:"port,omitempty" mapstructure:"port"`
		ShutdownTimeout time.Duration    `json:"shutdown_timeout,omitempty" mapstructure:"shutdown_timeout"`
	}
)

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: LogLevelWarn,
		IPC: IPCConfig{
			Host:            ipc.DefaultHost,
			ShutdownTimeout: ipc.DefaultShutdownTimeout,
		},
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the LogLevel is not one of the defined levels.
// The zero value is valid and means the default level.
func (l LogLevel) Validate() error {
	switch l {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate checks the port and shutdown timeout.
func (c IPCConfig) Validate() error {
	var errs []error
	if err := c.Port.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must not be negative, got %s", c.ShutdownTimeout))
	}
	if c.Host != "" && strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("host must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return &InvalidIPCConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidIPCConfigError) Error() string {
	return "invalid ipc config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidIPCConfig for errors.Is() compatibility.
func (e *InvalidIPCConfigError) Unwrap() error { return ErrInvalidIPCConfig }

// Validate checks every field of the Config, collecting all failures.
func (c Config) Validate() error {
	var errs []error
	if c.Platform != "" {
		if err := c.Platform.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.IPC.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidConfigError) Error() string {
	return "invalid config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
