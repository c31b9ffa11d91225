// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/ipc"
)

// Select binds the strategy for the current process:
//
//  1. a runtime supplied with WithRuntime makes it the coordinator;
//  2. otherwise the coordinator's environment marks a content process;
//  3. otherwise there is no host framework.
//
// Sandboxed bridging contexts cannot be detected; use SelectBridge.
func Select(opts ...Option) Strategy {
	cfg := newSettings(opts)

	var s Strategy
	switch {
	case cfg.runtime != nil:
		s = newHostMain(cfg)
	case ipc.IsContentProcess(cfg.getenv):
		s = newPeer(RoleIsolatedContent, cfg, contentTransport(cfg))
	default:
		s = newHostOnly(cfg)
	}

	cfg.logger.Debug("selected environment strategy", "role", s.Role(), "platform", s.Platform())
	return s
}

// SelectBridge binds the strategy of a sandboxed bridging context.
func SelectBridge(opts ...Option) Strategy {
	cfg := newSettings(opts)
	s := newPeer(RoleSandboxedBridge, cfg, contentTransport(cfg))
	cfg.logger.Debug("selected environment strategy", "role", s.Role(), "platform", s.Platform())
	return s
}

func contentTransport(cfg *settings) bridge.Transport {
	if cfg.transport != nil {
		return cfg.transport
	}
	if c := ipc.NewClientFromEnv(cfg.getenv, ipc.WithClientLogger(cfg.logger)); c != nil {
		return c
	}
	return bridge.Noop{}
}
