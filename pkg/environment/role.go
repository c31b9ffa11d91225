// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"errors"
	"fmt"
)

// ErrInvalidRole is wrapped by ParseRole failures.
var ErrInvalidRole = errors.New("invalid process role")

// Role is the position of the process in a multi-process host.
type Role int

const (
	// RoleHostOnly is a process without a host framework.
	RoleHostOnly Role = iota
	// RoleHostMain is the host framework's coordinator process.
	RoleHostMain
	// RoleSandboxedBridge is an isolated context between coordinator and content.
	RoleSandboxedBridge
	// RoleIsolatedContent is a content process spawned by the coordinator.
	RoleIsolatedContent
)

var roleNames = map[Role]string{
	RoleHostOnly:        "host-only",
	RoleHostMain:        "host-main",
	RoleSandboxedBridge: "sandboxed-bridge",
	RoleIsolatedContent: "isolated-content",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// HasPeer reports whether the role has a second process to talk to.
func (r Role) HasPeer() bool {
	return r != RoleHostOnly
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}
