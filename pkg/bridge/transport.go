// SPDX-License-Identifier: MPL-2.0

package bridge

import (
	"context"
	"sync"
)

// Transport moves messages between this process and its peer.
type Transport interface {
	// Send delivers msg to the peer's listeners of channel.
	Send(ctx context.Context, channel string, msg Message) error
	// Invoke calls the peer's handler for channel and returns its reply.
	Invoke(ctx context.Context, channel string, msg Message) (Message, error)
	// Listen routes messages arriving from the peer into r.
	Listen(r *Router)
}

// Noop is the transport of a process without a peer.
type Noop struct{}

// Send discards msg.
func (Noop) Send(context.Context, string, Message) error { return nil }

// Invoke always fails with ErrNoPeer.
func (Noop) Invoke(context.Context, string, Message) (Message, error) { return nil, ErrNoPeer }

// Listen does nothing; no message ever arrives.
func (Noop) Listen(*Router) {}

// Pipe returns two in-process transports connected to each other. A message
// sent on one is dispatched synchronously to the router the other listens
// with; sends from one end are delivered in order.
func Pipe() (*PipeEnd, *PipeEnd) {
	a, b := &PipeEnd{}, &PipeEnd{}
	a.peer, b.peer = b, a
	return a, b
}

// PipeEnd is one side of a Pipe.
type PipeEnd struct {
	peer *PipeEnd

	sendMu sync.Mutex
	mu     sync.Mutex
	router *Router
}

func (p *PipeEnd) Send(ctx context.Context, channel string, msg Message) error {
	r := p.peer.currentRouter()
	if r == nil {
		return nil
	}
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	r.Dispatch(ctx, channel, msg)
	return nil
}

func (p *PipeEnd) Invoke(ctx context.Context, channel string, msg Message) (Message, error) {
	r := p.peer.currentRouter()
	if r == nil {
		return nil, ErrNoPeer
	}
	return r.Invoke(ctx, channel, msg)
}

func (p *PipeEnd) Listen(r *Router) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.router = r
}

func (p *PipeEnd) currentRouter() *Router {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.router
}
