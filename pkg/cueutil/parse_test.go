// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name?: string & !=""
	port?: int & >=0 & <=65535
}
`

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantErr string
	}{
		{name: "valid", data: `name: "x"` + "\n" + `port: 80`},
		{name: "empty document", data: ``},
		{name: "out of range", data: `port: 70000`, wantErr: "port"},
		{name: "unknown field", data: `other: 1`, wantErr: "other"},
		{name: "syntax error", data: `name: `, wantErr: "doc.cue"},
		{name: "too large", data: `name: "abcdef"`, opts: []Option{WithMaxFileSize(4)}, wantErr: "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{WithFilename("doc.cue")}, tt.opts...)
			res, err := ParseAndDecode[map[string]any]([]byte(testSchema), []byte(tt.data), "#Doc", opts...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if res.Value == nil {
					t.Fatal("Value is nil")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseAndDecodeStruct(t *testing.T) {
	t.Parallel()

	type doc struct {
		Name string `json:"name"`
		Port int    `json:"port"`
	}

	res, err := ParseAndDecode[doc]([]byte(testSchema), []byte("name: \"svc\"\nport: 9000\n"), "#Doc")
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if res.Value.Name != "svc" || res.Value.Port != 9000 {
		t.Errorf("Value = %+v", res.Value)
	}
}

func TestParseAndDecodeMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[map[string]any]([]byte(testSchema), []byte(`name: "x"`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("error = %v, want missing definition", err)
	}
}
