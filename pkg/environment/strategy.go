// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/host"
	"github.com/hostlog/hostlog/pkg/paths"
	"github.com/hostlog/hostlog/pkg/platform"
)

type (
	// Strategy is the capability set a logging core relies on.
	Strategy interface {
		Role() Role
		Platform() platform.Family

		// AppName resolves the application name: an explicit name wins over
		// the host-reported one, which wins over the nearest manifest. It
		// returns a *ConfigurationError when none is available.
		AppName() (string, error)
		// AppVersion is the manifest version, or "".
		AppVersion() string
		// SetAppName and SetPlatform override detection for the lifetime of
		// the strategy.
		SetAppName(name string)
		SetPlatform(f platform.Family)

		SystemPathHome() string
		SystemPathAppData() string
		SystemPathTemp() string
		// AppUserDataPath returns "" when appName is empty and no name resolves.
		AppUserDataPath(appName string) string
		AppLogPath(appName string) (string, error)
		PathVariables() (*paths.Variables, error)

		Versions() (Versions, error)
		OSVersion() string
		IsDev() bool
		IsHostFramework() bool

		OnAppReady(fn func())
		OnAppEvent(name string, h host.EventHandler)
		OnEveryContentEvent(name string, h host.EventHandler)
		SetPreloadFileForSessions(opts PreloadOptions)
		// OpenURL reports failures to onError as *OpenURLError. A nil
		// onError logs them.
		OpenURL(url string, onError func(error))
		ShowErrorBox(title, message string)

		OnIPC(channel string, l bridge.Listener)
		OnIPCInvoke(channel string, h bridge.InvokeHandler)
		SendIPC(ctx context.Context, channel string, msg any) error
		// InvokeIPC returns bridge.ErrNoPeer in roles that cannot invoke.
		InvokeIPC(ctx context.Context, channel string, msg any) (bridge.Message, error)

		// Close releases the bridge connection, if any.
		Close() error
	}

	// Versions describes the running software.
	Versions struct {
		// App is "<name> <version>".
		App string `json:"app" toml:"app" yaml:"app"`
		// HostFramework is "" outside a host framework.
		HostFramework string `json:"hostFramework" toml:"hostFramework" yaml:"hostFramework"`
		OS            string `json:"os" toml:"os" yaml:"os"`
	}

	// PreloadOptions registers a file to run in content processes.
	PreloadOptions struct {
		File string
		// IncludeFutureSessions also applies File to sessions created later.
		IncludeFutureSessions bool
		// Sessions lists extra sessions. Nil means every session the runtime knows.
		Sessions func() []host.Session
	}
)
