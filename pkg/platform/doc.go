// SPDX-License-Identifier: MPL-2.0

// Package platform classifies the operating system the process runs on and
// exposes the few OS facts the environment layer needs.
//
// The package groups operating systems into three families (macOS,
// Windows, other Unix-like systems), reports the kernel release used to
// build human-readable OS version strings, maps Darwin releases to macOS
// marketing versions, detects Flatpak/Snap sandboxes and builds the
// command used to hand a URL to the desktop's default opener.
package platform
