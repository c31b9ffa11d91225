// SPDX-License-Identifier: MPL-2.0

package paths

import (
	"errors"
	"strings"
	"testing"

	"github.com/hostlog/hostlog/pkg/platform"
)

// fakeResolver builds a Resolver with no access to the real environment.
func fakeResolver(family platform.Family, home string, env map[string]string) Resolver {
	return Resolver{
		Family:      family,
		Getenv:      func(k string) string { return env[k] },
		UserHomeDir: func() (string, error) { return home, nil },
		TempDir:     func() string { return "/tmp" },
	}
}

func TestResolverScenarios(t *testing.T) {
	t.Parallel()

	t.Run("mac log path", func(t *testing.T) {
		t.Parallel()

		r := fakeResolver(platform.FamilyMac, "/Users/alice", nil)
		if got, want := r.LogDir("MyApp"), "/Users/alice/Library/Logs/MyApp"; got != want {
			t.Errorf("LogDir() = %q, want %q", got, want)
		}
		if got, want := r.UserData("MyApp"), "/Users/alice/Library/Application Support/MyApp"; got != want {
			t.Errorf("UserData() = %q, want %q", got, want)
		}
	})

	t.Run("windows without APPDATA", func(t *testing.T) {
		t.Parallel()

		r := fakeResolver(platform.FamilyWindows, `C:\Users\alice`, nil)
		if got, want := r.UserData("MyApp"), `C:\Users\alice\AppData\Roaming\MyApp`; got != want {
			t.Errorf("UserData() = %q, want %q", got, want)
		}
		if got, want := r.LogDir("MyApp"), `C:\Users\alice\AppData\Roaming\MyApp\logs`; got != want {
			t.Errorf("LogDir() = %q, want %q", got, want)
		}
	})

	t.Run("windows with APPDATA", func(t *testing.T) {
		t.Parallel()

		r := fakeResolver(platform.FamilyWindows, `C:\Users\alice`, map[string]string{"APPDATA": `D:\Roaming`})
		if got, want := r.UserData("MyApp"), `D:\Roaming\MyApp`; got != want {
			t.Errorf("UserData() = %q, want %q", got, want)
		}
	})

	t.Run("unix default config home", func(t *testing.T) {
		t.Parallel()

		r := fakeResolver(platform.FamilyUnix, "/home/alice", nil)
		if got, want := r.LogDir("MyApp"), "/home/alice/.config/MyApp/logs"; got != want {
			t.Errorf("LogDir() = %q, want %q", got, want)
		}
	})

	t.Run("unix XDG_CONFIG_HOME", func(t *testing.T) {
		t.Parallel()

		r := fakeResolver(platform.FamilyUnix, "/home/alice", map[string]string{"XDG_CONFIG_HOME": "/xdg"})
		if got, want := r.AppData(), "/xdg"; got != want {
			t.Errorf("AppData() = %q, want %q", got, want)
		}
		if got, want := r.LogDir("MyApp"), "/xdg/MyApp/logs"; got != want {
			t.Errorf("LogDir() = %q, want %q", got, want)
		}
	})
}

func TestLogDirFollowsFamilyRule(t *testing.T) {
	t.Parallel()

	names := []string{"a", "MyApp", "my app", "app.with.dots", "日本語"}

	for _, family := range []platform.Family{platform.FamilyMac, platform.FamilyWindows, platform.FamilyUnix} {
		r := fakeResolver(family, "/h", nil)
		sep := family.PathSeparator()
		for _, name := range names {
			got := r.LogDir(name)
			var want string
			if family == platform.FamilyMac {
				want = r.Join(r.Home(), "Library", "Logs", name)
			} else {
				want = r.UserData(name) + sep + "logs"
			}
			if got != want {
				t.Errorf("%s LogDir(%q) = %q, want %q", family, name, got, want)
			}
			if !strings.HasSuffix(got, name) && !strings.HasSuffix(got, sep+"logs") {
				t.Errorf("%s LogDir(%q) = %q has no recognizable suffix", family, name, got)
			}
		}
	}
}

func TestEmptyAppName(t *testing.T) {
	t.Parallel()

	r := fakeResolver(platform.FamilyUnix, "/home/alice", nil)
	if got := r.UserData(""); got != "" {
		t.Errorf("UserData(\"\") = %q, want empty", got)
	}
	if got := r.LogDir(""); got != "" {
		t.Errorf("LogDir(\"\") = %q, want empty", got)
	}
}

func TestHomeFallbacks(t *testing.T) {
	t.Parallel()

	failing := func() (string, error) { return "", errors.New("no home") }

	tests := []struct {
		name string
		r    Resolver
		want string
	}{
		{
			name: "override wins",
			r:    Resolver{HomeOverride: "/override", UserHomeDir: func() (string, error) { return "/os", nil }},
			want: "/override",
		},
		{
			name: "os home",
			r:    Resolver{UserHomeDir: func() (string, error) { return "/os", nil }},
			want: "/os",
		},
		{
			name: "HOME env",
			r:    Resolver{UserHomeDir: failing, Getenv: func(k string) string { return map[string]string{"HOME": "/env"}[k] }},
			want: "/env",
		},
		{
			name: "USERPROFILE on windows",
			r: Resolver{
				Family:      platform.FamilyWindows,
				UserHomeDir: failing,
				Getenv:      func(k string) string { return map[string]string{"USERPROFILE": `C:\Users\bob`}[k] },
			},
			want: `C:\Users\bob`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.r.Home(); got != tt.want {
				t.Errorf("Home() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	unix := Resolver{Family: platform.FamilyUnix}
	win := Resolver{Family: platform.FamilyWindows}

	tests := []struct {
		name string
		r    Resolver
		elem []string
		want string
	}{
		{"simple", unix, []string{"/a", "b", "c"}, "/a/b/c"},
		{"embedded slash", unix, []string{"/home", "Library/Logs", "x"}, "/home/Library/Logs/x"},
		{"trailing separators", unix, []string{"/a/", "/b/"}, "/a/b"},
		{"root", unix, []string{"/", "a"}, "/a"},
		{"empty elements", unix, []string{"", "/a", "", "b"}, "/a/b"},
		{"dotdot kept", unix, []string{"/a", "..", "b"}, "/a/../b"},
		{"windows", win, []string{`C:\Users`, "AppData/Roaming", "x"}, `C:\Users\AppData\Roaming\x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.r.Join(tt.elem...); got != tt.want {
				t.Errorf("Join(%q) = %q, want %q", tt.elem, got, tt.want)
			}
		})
	}
}
