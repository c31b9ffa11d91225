// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// OpenerCommand returns the program and arguments that hand url to the
// desktop's default handler on the given family.
func OpenerCommand(f Family, sandbox SandboxType, url string) (string, []string) {
	switch f {
	case FamilyMac:
		return "open", []string{url}
	case FamilyWindows:
		// "start" is a cmd.exe builtin and re-parses '&' in URLs;
		// FileProtocolHandler takes the URL as a single argument.
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return sandbox.HostCommand("xdg-open", url)
	}
}

// StartOpener launches the default URL handler for url without waiting for
// it. The returned wait function blocks until the handler exits and reports
// a non-zero exit as an error.
func StartOpener(ctx context.Context, f Family, url string) (wait func() error, err error) {
	name, args := OpenerCommand(f, DetectSandbox(), url)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", CommandLine(name, args...), err)
	}
	return func() error {
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("%s: %w", CommandLine(name, args...), err)
		}
		return nil
	}, nil
}

// CommandLine renders a command as a single shell-quoted line for logs and
// error messages.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, word := range append([]string{name}, args...) {
		quoted, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			quoted = fmt.Sprintf("%q", word)
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}
