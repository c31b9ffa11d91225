// SPDX-License-Identifier: MPL-2.0

package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoPeer is returned by Invoke when the process has no bridge peer.
	ErrNoPeer = errors.New("no bridge peer")

	// ErrNoHandler is returned by Invoke when the peer has no handler for the channel.
	ErrNoHandler = errors.New("no invoke handler registered")
)

// Message is an opaque JSON payload.
type Message = json.RawMessage

// Encode marshals v into a Message. A Message value is passed through.
func Encode(v any) (Message, error) {
	switch m := v.(type) {
	case nil:
		return Message("null"), nil
	case Message:
		if len(m) == 0 {
			return Message("null"), nil
		}
		return m, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}

// MustEncode is Encode for values known to marshal.
func MustEncode(v any) Message {
	m, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return m
}

// Decode unmarshals m into v.
func Decode(m Message, v any) error {
	if err := json.Unmarshal(m, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

// RemoteError is an invoke failure reported by the peer's handler.
type RemoteError struct {
	Channel string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("invoke %q: %s", e.Channel, e.Message)
}
