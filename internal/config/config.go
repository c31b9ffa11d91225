// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hostlog/hostlog/internal/issue"
	"github.com/hostlog/hostlog/pkg/cueutil"
	"github.com/hostlog/hostlog/pkg/paths"
	"github.com/hostlog/hostlog/pkg/platform"
)

const (
	// AppName names the configuration directory.
	AppName = "hostlog"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// EnvPrefix prefixes environment overrides: HOSTLOG_LOG_LEVEL,
	// HOSTLOG_IPC_PORT and so on.
	EnvPrefix = "HOSTLOG"
	// EnvConfigDir replaces the platform configuration directory.
	EnvConfigDir = "HOSTLOG_CONFIG_DIR"
)

//go:embed config_schema.cue
var configSchema []byte

// configKeys are the viper keys bound to environment variables.
var configKeys = []string{
	"app_name",
	"platform",
	"home",
	"dev",
	"log_level",
	"ipc.host",
	"ipc.port",
	"ipc.shutdown_timeout",
}

// ConfigDir returns the hostlog configuration directory: "hostlog" under
// the platform's application data root.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	r := paths.NewResolver(platform.Current())
	if r.Home() == "" {
		return "", errors.New("failed to get home directory")
	}
	return filepath.Join(r.AppData(), AppName), nil
}

// DefaultPath returns the path of config.cue inside dir, or inside
// ConfigDir when dir is empty.
func DefaultPath(dir string) (string, error) {
	dir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Locate returns the file Load would read, or "" when none exists and the
// defaults apply.
func Locate(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", notFoundError(opts.ConfigFilePath)
		}
		return opts.ConfigFilePath, nil
	}

	cuePath, err := DefaultPath(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("ipc.host", defaults.IPC.Host)
	v.SetDefault("ipc.port", defaults.IPC.Port)
	v.SetDefault("ipc.shutdown_timeout", defaults.IPC.ShutdownTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, "", fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	resolvedPath, err := Locate(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'hostlog config init' to write a valid configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the HOSTLOG_* environment variables").
			WithSuggestion("Run 'hostlog config show' to see the effective values").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func notFoundError(path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Verify the file path is correct").
		WithSuggestion("Check that the file exists and is readable").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(fmt.Errorf("config file not found: %s", path)).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring an
// explicit directory before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// v. Fields are optional, so the document is decoded into a map rather than
// a Config and concreteness is not required.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to dir (ConfigDir
// when empty) unless a file already exists. It returns the file path and
// whether it was created.
func CreateDefaultConfig(dir string) (string, bool, error) {
	cfgPath, err := DefaultPath(dir)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, true, nil
}

// GenerateCUE renders cfg as a config.cue document. Unset optional fields
// are omitted.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// hostlog configuration file\n")
	sb.WriteString("// See https://github.com/hostlog/hostlog for documentation.\n\n")

	if cfg.AppName != "" {
		fmt.Fprintf(&sb, "app_name: %q\n", cfg.AppName)
	}
	if cfg.Platform != "" {
		fmt.Fprintf(&sb, "platform: %q\n", cfg.Platform)
	}
	if cfg.Home != "" {
		fmt.Fprintf(&sb, "home: %q\n", cfg.Home)
	}
	if cfg.Dev != nil {
		fmt.Fprintf(&sb, "dev: %v\n", *cfg.Dev)
	}
	if cfg.LogLevel != "" {
		fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)
	}

	sb.WriteString("\nipc: {\n")
	if cfg.IPC.Host != "" {
		fmt.Fprintf(&sb, "\thost: %q\n", cfg.IPC.Host)
	}
	fmt.Fprintf(&sb, "\tport: %d\n", cfg.IPC.Port)
	if cfg.IPC.ShutdownTimeout > 0 {
		fmt.Fprintf(&sb, "\tshutdown_timeout: %q\n", cfg.IPC.ShutdownTimeout.String())
	}
	sb.WriteString("}\n")

	return sb.String()
}
