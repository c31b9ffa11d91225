// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Platform family constants.
const (
	// FamilyMac covers macOS (darwin).
	FamilyMac Family = "mac"
	// FamilyWindows covers Windows.
	FamilyWindows Family = "windows"
	// FamilyUnix covers Linux, the BSDs and every other Unix-like system.
	FamilyUnix Family = "unix"
)

// ErrInvalidFamily is the sentinel error wrapped by InvalidFamilyError.
var ErrInvalidFamily = errors.New("invalid platform family")

type (
	// Family groups operating systems that share filesystem layout conventions.
	Family string

	// InvalidFamilyError is returned when a Family value is not recognized.
	// It wraps ErrInvalidFamily for errors.Is() compatibility.
	InvalidFamilyError struct {
		Value Family
	}
)

// Current returns the family of the operating system the binary runs on.
func Current() Family {
	return FamilyFromGOOS(runtime.GOOS)
}

// FamilyFromGOOS maps a runtime.GOOS value to its Family.
// Unknown values are treated as Unix-like.
func FamilyFromGOOS(goos string) Family {
	switch goos {
	case Darwin, "ios":
		return FamilyMac
	case Windows:
		return FamilyWindows
	default:
		return FamilyUnix
	}
}

// ParseFamily accepts a family name or a GOOS-style alias ("darwin",
// "win32", "linux", ...) and returns the matching Family.
func ParseFamily(s string) (Family, error) {
	switch s {
	case string(FamilyMac), Darwin, "macos":
		return FamilyMac, nil
	case string(FamilyWindows), "win32":
		return FamilyWindows, nil
	case string(FamilyUnix), Linux, "freebsd", "openbsd", "netbsd":
		return FamilyUnix, nil
	default:
		return "", &InvalidFamilyError{Value: Family(s)}
	}
}

// String returns the string representation of the Family.
func (f Family) String() string { return string(f) }

// Validate returns an error if the Family is not one of the defined families.
func (f Family) Validate() error {
	switch f {
	case FamilyMac, FamilyWindows, FamilyUnix:
		return nil
	default:
		return &InvalidFamilyError{Value: f}
	}
}

// PathSeparator returns the path separator used by the family.
func (f Family) PathSeparator() string {
	if f == FamilyWindows {
		return `\`
	}
	return "/"
}

// Error implements the error interface for InvalidFamilyError.
func (e *InvalidFamilyError) Error() string {
	return fmt.Sprintf("invalid platform family %q (valid: mac, windows, unix)", e.Value)
}

// Unwrap returns ErrInvalidFamily for errors.Is() compatibility.
func (e *InvalidFamilyError) Unwrap() error { return ErrInvalidFamily }
