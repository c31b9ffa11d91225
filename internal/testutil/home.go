// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the home directory of the current platform at dir and
// clears the variables that would otherwise take precedence over it when
// resolving the application data directory. The returned function restores
// everything.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	var restores []func()
	switch runtime.GOOS {
	case "windows":
		restores = append(restores,
			MustSetenv(t, "USERPROFILE", dir),
			MustUnsetenv(t, "APPDATA"))
	default:
		restores = append(restores,
			MustSetenv(t, "HOME", dir),
			MustUnsetenv(t, "XDG_CONFIG_HOME"))
	}
	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}
