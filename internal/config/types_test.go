// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/hostlog/hostlog/pkg/types"
)

func TestLogLevelValidate(t *testing.T) {
	t.Parallel()

	for _, l := range []LogLevel{"", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if err := l.Validate(); err != nil {
			t.Errorf("%q.Validate() = %v", l, err)
		}
	}
	err := LogLevel("loud").Validate()
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Validate() = %v, want ErrInvalidLogLevel", err)
	}
	var lerr *InvalidLogLevelError
	if !errors.As(err, &lerr) || lerr.Value != "loud" {
		t.Errorf("error = %#v", err)
	}
}

func TestConfigValidateCollectsErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Platform: "beos",
		LogLevel: "loud",
		IPC:      IPCConfig{Host: "  ", Port: -1, ShutdownTimeout: -time.Second},
	}
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() = %v", err)
	}
	var cerr *InvalidConfigError
	if !errors.As(err, &cerr) || len(cerr.FieldErrors) != 3 {
		t.Fatalf("FieldErrors = %v", cerr)
	}

	var ipcErr *InvalidIPCConfigError
	if !errors.As(cerr.FieldErrors[2], &ipcErr) || len(ipcErr.FieldErrors) != 3 {
		t.Errorf("ipc errors = %v", cerr.FieldErrors[2])
	}
	if !errors.Is(ipcErr.FieldErrors[0], types.ErrInvalidListenPort) {
		t.Errorf("port error = %v", ipcErr.FieldErrors[0])
	}
}
