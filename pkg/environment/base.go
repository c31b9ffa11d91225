// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/host"
	"github.com/hostlog/hostlog/pkg/ipc"
	"github.com/hostlog/hostlog/pkg/paths"
	"github.com/hostlog/hostlog/pkg/platform"
)

// base implements the parts of Strategy that do not depend on the role.
// Role-specific strategies embed it and override the hooks they support.
type base struct {
	role   Role
	logger *log.Logger
	cfg    *settings
	id     *identity

	mu     sync.Mutex
	family platform.Family

	unverifiedOnce sync.Once
	reservedOnce   sync.Once
}

func newBase(role Role, cfg *settings, reported func() string, lookup bool) *base {
	id := &identity{explicit: cfg.appName, reported: reported}
	if lookup {
		id.lookup = cfg.lookup
	}
	return &base{
		role:   role,
		logger: cfg.logger,
		cfg:    cfg,
		id:     id,
		family: cfg.family,
	}
}

func (b *base) Role() Role { return b.role }

func (b *base) Platform() platform.Family {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.family
}

func (b *base) SetPlatform(f platform.Family) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.family = f
}

func (b *base) SetAppName(name string) { b.id.setName(name) }

func (b *base) AppName() (string, error) {
	name, err := b.id.name()
	if err != nil {
		return "", err
	}
	if b.Platform() == platform.FamilyWindows && platform.IsWindowsReservedName(name) {
		b.reservedOnce.Do(func() {
			b.logger.Warn("application name is a reserved Windows file name", "name", name)
		})
	}
	return name, nil
}

func (b *base) AppVersion() string { return b.id.version() }

func (b *base) resolver() paths.Resolver {
	return paths.Resolver{
		Family:       b.Platform(),
		HomeOverride: b.cfg.home,
		Getenv:       b.cfg.getenv,
	}
}

func (b *base) SystemPathHome() string    { return b.resolver().Home() }
func (b *base) SystemPathAppData() string { return b.resolver().AppData() }
func (b *base) SystemPathTemp() string    { return b.resolver().Temp() }

func (b *base) AppUserDataPath(appName string) string {
	if appName == "" {
		appName, _ = b.AppName()
	}
	return b.resolver().UserData(appName)
}

func (b *base) AppLogPath(appName string) (string, error) {
	if appName == "" {
		var err error
		if appName, err = b.AppName(); err != nil {
			return "", err
		}
	}
	return b.resolver().LogDir(appName), nil
}

func (b *base) PathVariables() (*paths.Variables, error) {
	name, err := b.AppName()
	if err != nil {
		return nil, err
	}
	live := func() string {
		dir, _ := b.AppLogPath("")
		return dir
	}
	return paths.NewVariables(b.resolver(), name, b.AppVersion(), live), nil
}

func (b *base) hostVersion() string {
	if rt := b.cfg.runtime; rt != nil && b.role == RoleHostMain {
		return rt.Version()
	}
	return b.cfg.getenv(ipc.EnvHostVersion)
}

func (b *base) Versions() (Versions, error) {
	name, err := b.AppName()
	if err != nil {
		return Versions{}, err
	}
	return Versions{
		App:           strings.TrimSpace(name + " " + b.AppVersion()),
		HostFramework: b.hostVersion(),
		OS:            b.OSVersion(),
	}, nil
}

func (b *base) OSVersion() string {
	family := b.Platform()
	version, verified := platform.DisplayVersion(family, *b.cfg.osInfo)
	if !verified {
		b.unverifiedOnce.Do(func() {
			b.logger.Warn("macOS version extrapolated from an unknown Darwin release",
				"release", b.cfg.osInfo.Release, "version", version)
		})
	}
	return version
}

func (b *base) IsDev() bool {
	if b.cfg.dev != nil {
		return *b.cfg.dev
	}
	return b.cfg.getenv(EnvIsDev) == "1" || b.cfg.getenv(EnvAppEnv) == "development"
}

func (b *base) IsHostFramework() bool {
	return b.cfg.runtime != nil || b.cfg.getenv(ipc.EnvHostVersion) != ""
}

// Hooks without a surface in most roles.

func (b *base) OnAppReady(fn func()) {
	if fn != nil {
		fn()
	}
}

func (b *base) OnAppEvent(string, host.EventHandler)          {}
func (b *base) OnEveryContentEvent(string, host.EventHandler) {}
func (b *base) SetPreloadFileForSessions(PreloadOptions)      {}
func (b *base) OpenURL(string, func(error))                   {}
func (b *base) ShowErrorBox(string, string)                   {}

func (b *base) OnIPC(string, bridge.Listener)              {}
func (b *base) OnIPCInvoke(string, bridge.InvokeHandler)   {}
func (b *base) SendIPC(context.Context, string, any) error { return nil }

func (b *base) InvokeIPC(context.Context, string, any) (bridge.Message, error) {
	return nil, bridge.ErrNoPeer
}

func (b *base) Close() error { return nil }

// reportOpenFailure hands err to onError, or logs it when onError is nil.
func (b *base) reportOpenFailure(url string, err error, onError func(error)) {
	oerr := &OpenURLError{URL: url, Err: err}
	if onError != nil {
		onError(oerr)
		return
	}
	b.logger.Error("could not open url", "url", url, "err", err)
}
