// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func uname() OSInfo {
	v := windows.RtlGetVersion()
	return OSInfo{
		Name:    "Windows_NT",
		Release: fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber),
	}
}
