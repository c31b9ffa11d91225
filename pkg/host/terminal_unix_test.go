// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package host

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/hostlog/hostlog/internal/testutil"
)

func TestCoordinatorStdout(t *testing.T) {
	t.Setenv(helperEnv, "tty")

	tests := []struct {
		name     string
		terminal bool
		want     string
	}{
		{"pipe", false, "stdout is not a terminal"},
		{"terminal", true, "stdout is a terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c, err := NewCoordinator(CoordinatorConfig{Stdout: &out, Terminal: tt.terminal})
			if err != nil {
				t.Fatalf("NewCoordinator() error = %v", err)
			}
			if err := c.Start(context.Background()); err != nil {
				t.Fatal(err)
			}
			defer testutil.MustStop(t, c)

			code, err := c.Run(context.Background(), os.Args[0], "-test.run=^$")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if code != 0 {
				t.Errorf("exit code = %d, want 0", code)
			}
			if got := out.String(); !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
