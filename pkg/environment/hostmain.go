// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"context"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/host"
)

// hostMain is the coordinator process of a host framework. Lifecycle hooks
// and dialogs go to the runtime; the bridge reaches every content process.
type hostMain struct {
	*base
	rt     host.Runtime
	router *bridge.Router
}

func newHostMain(cfg *settings) *hostMain {
	rt := cfg.runtime
	s := &hostMain{
		base:   newBase(RoleHostMain, cfg, rt.AppName, true),
		rt:     rt,
		router: bridge.NewRouter(),
	}
	rt.Transport().Listen(s.router)
	return s
}

func (s *hostMain) OnAppReady(fn func()) {
	if fn != nil {
		s.rt.WhenReady(fn)
	}
}

func (s *hostMain) OnAppEvent(name string, h host.EventHandler) {
	if h != nil {
		s.rt.OnAppEvent(name, h)
	}
}

func (s *hostMain) OnEveryContentEvent(name string, h host.EventHandler) {
	if h != nil {
		s.rt.OnContentEvent(name, h)
	}
}

func (s *hostMain) SetPreloadFileForSessions(opts PreloadOptions) {
	if opts.File == "" {
		return
	}

	host.AddPreload(s.rt.DefaultSession(), opts.File)
	sessions := s.rt.Sessions
	if opts.Sessions != nil {
		sessions = opts.Sessions
	}
	for _, sess := range sessions() {
		host.AddPreload(sess, opts.File)
	}

	if opts.IncludeFutureSessions {
		s.rt.OnSessionCreated(func(sess host.Session) {
			host.AddPreload(sess, opts.File)
		})
	}
}

func (s *hostMain) OpenURL(url string, onError func(error)) {
	if err := s.rt.OpenExternal(url); err != nil {
		s.reportOpenFailure(url, err, onError)
	}
}

func (s *hostMain) ShowErrorBox(title, message string) {
	s.rt.ShowErrorBox(title, message)
}

func (s *hostMain) OnIPC(channel string, l bridge.Listener) {
	s.router.On(channel, l)
}

func (s *hostMain) OnIPCInvoke(channel string, h bridge.InvokeHandler) {
	s.router.Handle(channel, h)
}

// SendIPC broadcasts to every content process.
func (s *hostMain) SendIPC(ctx context.Context, channel string, msg any) error {
	m, err := bridge.Encode(msg)
	if err != nil {
		return err
	}
	return s.rt.Transport().Send(ctx, channel, m)
}

func (s *hostMain) InvokeIPC(ctx context.Context, channel string, msg any) (bridge.Message, error) {
	m, err := bridge.Encode(msg)
	if err != nil {
		return nil, err
	}
	return s.rt.Transport().Invoke(ctx, channel, m)
}
