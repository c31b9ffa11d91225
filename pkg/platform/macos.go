// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// lastVerifiedDarwinMajor is the newest Darwin major release whose macOS
// version is known. Later releases are extrapolated and reported as unverified.
const lastVerifiedDarwinMajor = 25

// darwinExceptions lists Darwin majors that do not follow the major-9 rule.
// Apple's macOS 26 (Tahoe) release notes list the kernel as Darwin 25: the
// marketing version moved to year-based numbering and skipped 16.
var darwinExceptions = map[int]string{
	25: "26",
}

// MacOSVersion maps a Darwin kernel release ("18.7.0") to the macOS
// marketing version ("10.14").
//
//   - Darwin 19 and earlier: 10.(major-4)
//   - Darwin 20 through 24: major-9
//   - exceptions listed in darwinExceptions
//   - anything newer than lastVerifiedDarwinMajor: major+1, verified=false
//
// A release that does not start with a number is returned unchanged with
// verified=false.
func MacOSVersion(release string) (version string, verified bool) {
	majorStr, _, _ := strings.Cut(strings.TrimSpace(release), ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return release, false
	}

	if major <= 19 {
		return fmt.Sprintf("10.%d", major-4), true
	}
	if v, ok := darwinExceptions[major]; ok {
		return v, true
	}
	if major <= lastVerifiedDarwinMajor {
		return strconv.Itoa(major - 9), true
	}
	return strconv.Itoa(major + 1), false
}
