// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"
	"io"
	"sync"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/ipc"
)

// peer is a process whose only link to the coordinator is a bridge
// transport: an isolated content process or a sandboxed bridging context.
// Lifecycle hooks, dialogs and URL opening belong to the coordinator and are
// no-ops here.
type peer struct {
	*base
	transport bridge.Transport
	router    *bridge.Router

	listenOnce sync.Once
}

func newPeer(role Role, cfg *settings, transport bridge.Transport) *peer {
	reported := func() string { return cfg.getenv(ipc.EnvAppName) }
	// Sandboxed contexts cannot read the filesystem, so they skip the
	// manifest lookup.
	lookup := role != RoleSandboxedBridge
	if transport == nil {
		transport = bridge.Noop{}
	}
	return &peer{
		base:      newBase(role, cfg, reported, lookup),
		transport: transport,
		router:    bridge.NewRouter(),
	}
}

// OnIPC registers l for messages from the coordinator. The first
// registration opens the transport's receive side.
func (s *peer) OnIPC(channel string, l bridge.Listener) {
	s.router.On(channel, l)
	s.listenOnce.Do(func() { s.transport.Listen(s.router) })
}

func (s *peer) SendIPC(ctx context.Context, channel string, msg any) error {
	m, err := bridge.Encode(msg)
	if err != nil {
		return err
	}
	return s.transport.Send(ctx, channel, m)
}

func (s *peer) InvokeIPC(ctx context.Context, channel string, msg any) (bridge.Message, error) {
	m, err := bridge.Encode(msg)
	if err != nil {
		return nil, err
	}
	return s.transport.Invoke(ctx, channel, m)
}

func (s *peer) Close() error {
	if c, ok := s.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
