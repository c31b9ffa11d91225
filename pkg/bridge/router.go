// SPDX-License-Identifier: MPL-2.0

package bridge

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

type (
	// Listener receives fire-and-forget messages on a channel.
	Listener func(ctx context.Context, msg Message)

	// InvokeHandler answers request/response messages on a channel.
	InvokeHandler func(ctx context.Context, msg Message) (any, error)

	// Router dispatches incoming messages to the listeners of their channel.
	// Every listener of a channel sees each message once, in registration
	// order. Listeners run on the dispatching goroutine, outside the lock.
	Router struct {
		mu        sync.Mutex
		listeners map[string][]Listener
		handlers  map[string]InvokeHandler
	}
)

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{
		listeners: make(map[string][]Listener),
		handlers:  make(map[string]InvokeHandler),
	}
}

// On registers l for channel.
func (r *Router) On(channel string, l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[channel] = append(r.listeners[channel], l)
}

// Handle sets the invoke handler for channel, replacing any previous one.
func (r *Router) Handle(channel string, h InvokeHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, channel)
		return
	}
	r.handlers[channel] = h
}

// Dispatch delivers msg to every listener of channel and reports how many
// listeners ran.
func (r *Router) Dispatch(ctx context.Context, channel string, msg Message) int {
	r.mu.Lock()
	ls := slices.Clone(r.listeners[channel])
	r.mu.Unlock()

	for _, l := range ls {
		l(ctx, msg)
	}
	return len(ls)
}

// Invoke runs the handler of channel and encodes its result.
func (r *Router) Invoke(ctx context.Context, channel string, msg Message) (Message, error) {
	r.mu.Lock()
	h, ok := r.handlers[channel]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("channel %q: %w", channel, ErrNoHandler)
	}

	res, err := h(ctx, msg)
	if err != nil {
		return nil, err
	}
	return Encode(res)
}

// Channels returns the sorted names of channels with listeners or a handler.
func (r *Router) Channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.listeners)+len(r.handlers))
	for ch := range r.listeners {
		names = append(names, ch)
	}
	for ch := range r.handlers {
		if _, dup := r.listeners[ch]; !dup {
			names = append(names, ch)
		}
	}
	slices.Sort(names)
	return names
}
