// SPDX-License-Identifier: MPL-2.0

//go:build !unix && !windows

package platform

import "runtime"

func uname() OSInfo {
	return OSInfo{Name: runtime.GOOS}
}
