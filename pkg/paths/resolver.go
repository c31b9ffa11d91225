// SPDX-License-Identifier: MPL-2.0

package paths

import (
	"os"
	"strings"

	"github.com/hostlog/hostlog/pkg/platform"
)

// AppNameToken is the placeholder substituted for the application name in
// directory templates.
const AppNameToken = "{appName}"

// Resolver computes filesystem locations for one platform family.
// The zero value resolves for the Unix family using the real environment.
type Resolver struct {
	// Family selects the layout rules. Empty means platform.FamilyUnix.
	Family platform.Family
	// HomeOverride replaces the OS-reported home directory when set.
	HomeOverride string
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
	// UserHomeDir reports the OS home directory. Defaults to os.UserHomeDir.
	UserHomeDir func() (string, error)
	// TempDir reports the OS temp directory. Defaults to os.TempDir.
	TempDir func() string
}

// NewResolver returns a Resolver for family backed by the process environment.
func NewResolver(family platform.Family) Resolver {
	return Resolver{Family: family}
}

// Home returns the user's home directory.
func (r Resolver) Home() string {
	if r.HomeOverride != "" {
		return r.HomeOverride
	}
	if home, err := r.userHomeDir()(); err == nil && home != "" {
		return home
	}
	if r.family() == platform.FamilyWindows {
		if home := r.getenv("USERPROFILE"); home != "" {
			return home
		}
	}
	return r.getenv("HOME")
}

// AppData returns the root directory for per-application configuration and data.
func (r Resolver) AppData() string {
	home := r.Home()

	switch r.family() {
	case platform.FamilyMac:
		return r.Join(home, "Library", "Application Support")
	case platform.FamilyWindows:
		if dir := r.getenv("APPDATA"); dir != "" {
			return dir
		}
		return r.Join(home, "AppData", "Roaming")
	default:
		if dir := r.getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir
		}
		return r.Join(home, ".config")
	}
}

// UserData returns the application's data directory, or "" when appName is empty.
func (r Resolver) UserData(appName string) string {
	if appName == "" {
		return ""
	}
	return r.appendName(r.AppData(), appName)
}

// LogDir returns the application's log directory, or "" when appName is empty.
func (r Resolver) LogDir(appName string) string {
	if appName == "" {
		return ""
	}
	if r.family() == platform.FamilyMac {
		return r.appendName(r.Join(r.Home(), "Library", "Logs"), appName)
	}
	return r.appendName(r.UserData(appName), "logs")
}

// appendName adds name to dir with the family's separator. Unlike Join it
// leaves name as given, so a scoped name such as "@org/app" keeps its "/".
func (r Resolver) appendName(dir, name string) string {
	sep := r.family().PathSeparator()
	if dir == "" || strings.HasSuffix(dir, sep) {
		return dir + name
	}
	return dir + sep + name
}

// Temp returns the OS temp directory.
func (r Resolver) Temp() string {
	if r.TempDir != nil {
		return r.TempDir()
	}
	return os.TempDir()
}

// Join joins path elements with the family's separator. Elements may use
// "/" internally ("Library/Logs"); those separators are converted too.
// Empty elements are skipped and duplicate separators at the seams are
// collapsed, but ".." segments are kept as given.
func (r Resolver) Join(elem ...string) string {
	sep := r.family().PathSeparator()

	var sb strings.Builder
	for _, e := range elem {
		if e == "" {
			continue
		}
		if sep != "/" {
			e = strings.ReplaceAll(e, "/", sep)
		}
		if sb.Len() == 0 {
			sb.WriteString(strings.TrimRight(e, sep))
			if sb.Len() == 0 {
				// e was the root itself.
				sb.WriteString(sep)
			}
			continue
		}
		e = strings.Trim(e, sep)
		if e == "" {
			continue
		}
		if !strings.HasSuffix(sb.String(), sep) {
			sb.WriteString(sep)
		}
		sb.WriteString(e)
	}
	return sb.String()
}

func (r Resolver) family() platform.Family {
	if r.Family == "" {
		return platform.FamilyUnix
	}
	return r.Family
}

func (r Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

func (r Resolver) userHomeDir() func() (string, error) {
	if r.UserHomeDir != nil {
		return r.UserHomeDir
	}
	return os.UserHomeDir
}
