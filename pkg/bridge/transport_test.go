// SPDX-License-Identifier: MPL-2.0

package bridge

import (
	"context"
	"errors"
	"testing"
)

func TestNoop(t *testing.T) {
	t.Parallel()

	var tr Transport = Noop{}
	r := NewRouter()
	delivered := false
	r.On("log", func(context.Context, Message) { delivered = true })
	tr.Listen(r)

	if err := tr.Send(context.Background(), "log", MustEncode("x")); err != nil {
		t.Errorf("Send() error = %v", err)
	}
	if delivered {
		t.Error("Noop delivered a message")
	}
	if _, err := tr.Invoke(context.Background(), "log", nil); !errors.Is(err, ErrNoPeer) {
		t.Errorf("Invoke() error = %v, want ErrNoPeer", err)
	}
}

func TestPipe(t *testing.T) {
	t.Parallel()

	a, b := Pipe()
	ctx := context.Background()

	if _, err := a.Invoke(ctx, "ping", nil); !errors.Is(err, ErrNoPeer) {
		t.Errorf("Invoke() before Listen error = %v, want ErrNoPeer", err)
	}

	rb := NewRouter()
	var got []string
	rb.On("log", func(_ context.Context, msg Message) { got = append(got, string(msg)) })
	rb.Handle("ping", func(context.Context, Message) (any, error) { return "pong", nil })
	b.Listen(rb)

	for _, m := range []string{`"one"`, `"two"`} {
		if err := a.Send(ctx, "log", Message(m)); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}
	if len(got) != 2 || got[0] != `"one"` || got[1] != `"two"` {
		t.Errorf("delivered %v", got)
	}

	reply, err := a.Invoke(ctx, "ping", nil)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if string(reply) != `"pong"` {
		t.Errorf("Invoke() = %s", reply)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"empty message", Message(nil), "null"},
		{"raw passthrough", Message(`{"a":1}`), `{"a":1}`},
		{"struct", struct {
			N int `json:"n"`
		}{N: 2}, `{"n":2}`},
	}
	for _, tt := range tests {
		got, err := Encode(tt.in)
		if err != nil {
			t.Fatalf("%s: Encode() error = %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("%s: Encode() = %s, want %s", tt.name, got, tt.want)
		}
	}

	if _, err := Encode(make(chan int)); err == nil {
		t.Error("Encode(chan) should fail")
	}
}
