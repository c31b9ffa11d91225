// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"CON lowercase", "con", true},
		{"CON uppercase", "CON", true},
		{"NUL", "nul", true},
		{"COM9", "com9", true},
		{"LPT1", "lpt1", true},
		{"reserved with extension", "aux.log", true},
		{"app name", "MyApp", false},
		{"contains reserved", "console", false},
		{"COM10", "com10", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsWindowsReservedName(tt.input); got != tt.expected {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
