// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestListenPort_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port ListenPort
		want string
	}{
		{0, "0"},
		{80, "80"},
		{443, "443"},
		{8080, "8080"},
		{65535, "65535"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			got := tt.port.String()
			if got != tt.want {
				t.Errorf("ListenPort(%d).String() = %q, want %q", tt.port, got, tt.want)
			}
		})
	}
}

func TestListenPortValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port    ListenPort
		wantErr bool
	}{
		{0, false},
		{1, false},
		{8080, false},
		{65535, false},
		{-1, true},
		{65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.port.String(), func(t *testing.T) {
			t.Parallel()
			err := tt.port.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListenPort(%d).Validate() error = %v, wantErr %v", tt.port, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidListenPort) {
				t.Errorf("error should wrap ErrInvalidListenPort, got: %v", err)
			}
			var lpErr *InvalidListenPortError
			if !errors.As(err, &lpErr) {
				t.Errorf("error should be *InvalidListenPortError, got: %T", err)
			}
		})
	}
}

func TestListenPortAddr(t *testing.T) {
	t.Parallel()

	if got := ListenPort(8080).Addr("127.0.0.1"); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
	if got := ListenPort(0).Addr("::1"); got != "[::1]:0" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestInvalidListenPortError(t *testing.T) {
	t.Parallel()

	err := &InvalidListenPortError{Value: -5}
	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}
	if !errors.Is(err, ErrInvalidListenPort) {
		t.Error("expected error to wrap ErrInvalidListenPort")
	}
}
