// SPDX-License-Identifier: MPL-2.0

package ipc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hostlog/hostlog/pkg/bridge"
)

// Environment variables passed from the coordinator to content processes.
const (
	// EnvAddr holds the server's host:port.
	EnvAddr = "HOSTLOG_IPC_ADDR"
	//nolint:gosec // G101: variable name, not a credential
	EnvToken = "HOSTLOG_IPC_TOKEN"
	// EnvRole marks a process spawned by a coordinator.
	EnvRole = "HOSTLOG_PROCESS_ROLE"
	// EnvAppName carries the coordinator's resolved application name.
	EnvAppName = "HOSTLOG_APP_NAME"
	// EnvHostVersion carries the host framework version.
	EnvHostVersion = "HOSTLOG_HOST_VERSION"

	// RoleContent is the EnvRole value of a content process.
	RoleContent = "content"
)

const (
	pathSend   = "/ipc/send"
	pathInvoke = "/ipc/invoke"
	pathEvents = "/ipc/events"
	pathHealth = "/health"
)

var (
	// ErrInvalidAuthToken is wrapped by InvalidAuthTokenError.
	ErrInvalidAuthToken = errors.New("invalid auth token")

	// ErrInvalidEnvelope is returned for envelopes without an ID or channel.
	ErrInvalidEnvelope = errors.New("invalid envelope")
)

type (
	// AuthToken is the bearer token shared between server and clients.
	AuthToken string

	// InvalidAuthTokenError is returned for an empty AuthToken.
	InvalidAuthTokenError struct {
		Value AuthToken
	}

	// Envelope is one message on the wire.
	Envelope struct {
		ID      string         `json:"id"`
		Channel string         `json:"channel"`
		Sender  string         `json:"sender,omitempty"`
		Payload bridge.Message `json:"payload,omitempty"`
	}

	// Reply answers a send or invoke.
	Reply struct {
		Payload   bridge.Message `json:"payload,omitempty"`
		Error     string         `json:"error,omitempty"`
		NoHandler bool           `json:"no_handler,omitempty"`
		Duplicate bool           `json:"duplicate,omitempty"`
	}
)

// String returns the token.
func (t AuthToken) String() string { return string(t) }

// Validate rejects empty or whitespace-only tokens.
func (t AuthToken) Validate() error {
	if strings.TrimSpace(string(t)) == "" {
		return &InvalidAuthTokenError{Value: t}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidAuthTokenError) Error() string {
	return "invalid auth token: must be non-empty"
}

// Unwrap returns ErrInvalidAuthToken.
func (e *InvalidAuthTokenError) Unwrap() error { return ErrInvalidAuthToken }

// Validate checks that the envelope can be routed.
func (e Envelope) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidEnvelope)
	case e.Channel == "":
		return fmt.Errorf("%w: missing channel", ErrInvalidEnvelope)
	}
	return nil
}
