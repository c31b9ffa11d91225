// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/host"
	"github.com/hostlog/hostlog/pkg/manifest"
	"github.com/hostlog/hostlog/pkg/platform"
)

// Environment variables read by the strategies.
const (
	EnvIsDev  = "HOSTLOG_IS_DEV"
	EnvAppEnv = "APP_ENV"
)

type (
	// Option configures Select and SelectBridge.
	Option func(*settings)

	settings struct {
		runtime   host.Runtime
		transport bridge.Transport
		logger    *log.Logger
		dev       *bool
		family    platform.Family
		home      string
		appName   string
		getenv    func(string) string
		osInfo    *platform.OSInfo
		lookup    func() *manifest.Metadata
		opener    func(ctx context.Context, url string) error
	}
)

// WithRuntime runs the strategy as the host framework's coordinator.
func WithRuntime(rt host.Runtime) Option {
	return func(s *settings) { s.runtime = rt }
}

// WithTransport sets the bridge used by content and sandboxed strategies
// instead of the one described by the environment.
func WithTransport(t bridge.Transport) Option {
	return func(s *settings) { s.transport = t }
}

// WithLogger sets the logger for warnings and selection details.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDev forces IsDev.
func WithDev(dev bool) Option {
	return func(s *settings) { s.dev = &dev }
}

// WithPlatform sets the initial platform family; SetPlatform still overrides it.
func WithPlatform(f platform.Family) Option {
	return func(s *settings) { s.family = f }
}

// WithHome overrides the home directory.
func WithHome(home string) Option {
	return func(s *settings) { s.home = home }
}

// WithAppName sets the application name as if SetAppName had been called.
func WithAppName(name string) Option {
	return func(s *settings) { s.appName = name }
}

// WithGetenv replaces os.Getenv.
func WithGetenv(getenv func(string) string) Option {
	return func(s *settings) { s.getenv = getenv }
}

// WithOSInfo replaces the kernel-reported OS identification.
func WithOSInfo(info platform.OSInfo) Option {
	return func(s *settings) { s.osInfo = &info }
}

// WithManifestLookup replaces the package.json lookup. It is called at most
// once per strategy.
func WithManifestLookup(lookup func() *manifest.Metadata) Option {
	return func(s *settings) { s.lookup = lookup }
}

// WithOpener replaces the OS URL opener of the host-only strategy.
func WithOpener(open func(ctx context.Context, url string) error) Option {
	return func(s *settings) { s.opener = open }
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "hostlog", Level: log.WarnLevel})
	}
	if s.getenv == nil {
		s.getenv = os.Getenv
	}
	if s.family == "" {
		s.family = platform.Current()
	}
	if s.osInfo == nil {
		info := platform.ReportedOS()
		s.osInfo = &info
	}
	if s.lookup == nil {
		r := &manifest.Reader{Getenv: s.getenv, Logger: s.logger}
		s.lookup = r.Lookup
	}
	if s.opener == nil {
		s.opener = defaultOpener
	}
	return s
}

func defaultOpener(ctx context.Context, url string) error {
	wait, err := platform.StartOpener(ctx, platform.Current(), url)
	if err != nil {
		return err
	}
	return wait()
}
