// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrInvalidListenPort is the sentinel error wrapped by InvalidListenPortError.
var ErrInvalidListenPort = errors.New("invalid listen port")

type (
	// ListenPort is a TCP port for the bridge server.
	// Zero means "pick any free port".
	ListenPort int

	// InvalidListenPortError is returned when a ListenPort is outside 0-65535.
	InvalidListenPortError struct {
		Value ListenPort
	}
)

// String returns the decimal representation.
func (p ListenPort) String() string { return strconv.Itoa(int(p)) }

// Validate returns an error if the port is outside 0-65535.
func (p ListenPort) Validate() error {
	if p < 0 || p > 65535 {
		return &InvalidListenPortError{Value: p}
	}
	return nil
}

// Addr joins host and port into a dialable address.
func (p ListenPort) Addr(host string) string {
	return net.JoinHostPort(host, p.String())
}

// Error implements the error interface.
func (e *InvalidListenPortError) Error() string {
	return fmt.Sprintf("invalid listen port %d: must be 0 (auto-select) or 1-65535", e.Value)
}

// Unwrap returns ErrInvalidListenPort.
func (e *InvalidListenPortError) Unwrap() error { return ErrInvalidListenPort }
