// SPDX-License-Identifier: MPL-2.0

//go:build windows

package host

import (
	"io"
	"os/exec"
)

func startTerminal(*exec.Cmd, io.Writer) (<-chan struct{}, error) {
	return nil, ErrTerminalUnsupported
}
