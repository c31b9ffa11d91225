// SPDX-License-Identifier: MPL-2.0

//go:build unix

package platform

import "golang.org/x/sys/unix"

func uname() OSInfo {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return OSInfo{}
	}
	return OSInfo{
		Name:    unix.ByteSliceToString(u.Sysname[:]),
		Release: unix.ByteSliceToString(u.Release[:]),
	}
}
