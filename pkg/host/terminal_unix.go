// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package host

import (
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// startTerminal starts cmd on a new pseudo-terminal and copies everything it
// writes to out. The returned channel closes once the terminal is drained,
// which happens after the child and its descendants close it.
func startTerminal(cmd *exec.Cmd, out io.Writer) (<-chan struct{}, error) {
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer f.Close()
		// Reads end with EIO when the last slave descriptor closes.
		_, _ = io.Copy(out, f)
	}()
	return done, nil
}
