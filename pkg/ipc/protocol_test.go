// SPDX-License-Identifier: MPL-2.0

package ipc

import (
	"errors"
	"testing"
)

func TestEnvelopeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     Envelope
		wantErr bool
	}{
		{"valid", Envelope{ID: "1", Channel: "log"}, false},
		{"missing id", Envelope{Channel: "log"}, true},
		{"missing channel", Envelope{ID: "1"}, true},
	}
	for _, tt := range tests {
		err := tt.env.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v", tt.name, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidEnvelope) {
			t.Errorf("%s: error does not wrap ErrInvalidEnvelope", tt.name)
		}
	}
}

func TestAuthTokenValidate(t *testing.T) {
	t.Parallel()

	if err := AuthToken("abc").Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	for _, tok := range []AuthToken{"", "  "} {
		err := tok.Validate()
		if !errors.Is(err, ErrInvalidAuthToken) {
			t.Errorf("AuthToken(%q).Validate() = %v", tok, err)
		}
	}
}

func TestSeenIDs(t *testing.T) {
	t.Parallel()

	s := newSeenIDs(2)
	if !s.add("a") || !s.add("b") {
		t.Fatal("fresh ids reported as seen")
	}
	if s.add("a") {
		t.Error("duplicate id reported as new")
	}
	s.add("c") // evicts "a"
	if !s.add("a") {
		t.Error("evicted id should be accepted again")
	}
}

func TestNewClientFromEnvMissing(t *testing.T) {
	t.Parallel()

	getenv := func(k string) string {
		if k == EnvAddr {
			return "127.0.0.1:1"
		}
		return ""
	}
	if c := NewClientFromEnv(getenv); c != nil {
		t.Error("NewClientFromEnv() without token should return nil")
	}
	if IsContentProcess(getenv) {
		t.Error("IsContentProcess() without role should be false")
	}
}
