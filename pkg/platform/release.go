// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"strings"
	"sync"
)

// KernelDarwin is the kernel name reported by macOS.
const KernelDarwin = "Darwin"

// reportedOnce caches the kernel identification for the lifetime of the process.
var reportedOnce = sync.OnceValue(uname)

// OSInfo is the operating system identification reported by the kernel.
type OSInfo struct {
	// Name is the kernel name, e.g. "Linux", "Darwin" or "Windows_NT".
	Name string
	// Release is the kernel release, e.g. "6.8.0-45-generic", "23.4.0" or "10.0.22631".
	Release string
}

// ReportedOS returns the identification of the running operating system.
func ReportedOS() OSInfo {
	return reportedOnce()
}

// DisplayVersion renders "<name> <version>" for the kernel described by info.
//
// A Darwin kernel release is translated to the macOS marketing version;
// other systems use the kernel name (underscores replaced by spaces) and
// release verbatim. f only decides when info carries no kernel name, so an
// overridden family never changes the reported system. The boolean is false
// when the macOS translation is an extrapolation past the known releases.
func DisplayVersion(f Family, info OSInfo) (string, bool) {
	if info.Name == KernelDarwin || (info.Name == "" && f == FamilyMac) {
		version, verified := MacOSVersion(info.Release)
		return strings.TrimSpace("macOS " + version), verified
	}

	name := strings.ReplaceAll(info.Name, "_", " ")
	if name == "" {
		name = f.DisplayName()
	}
	return strings.TrimSpace(name + " " + info.Release), true
}

// DisplayName returns the human-readable name of the family.
func (f Family) DisplayName() string {
	switch f {
	case FamilyMac:
		return "macOS"
	case FamilyWindows:
		return "Windows"
	default:
		return "Unix"
	}
}
