// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"errors"
	"sync"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/host"
)

// fakeRuntime records what the coordinator strategy asks of the host.
type fakeRuntime struct {
	mu sync.Mutex

	name      string
	version   string
	ready     bool
	readyFns  []func()
	appEvents map[string][]host.EventHandler
	content   map[string][]host.EventHandler
	def       *host.MemorySession
	sessions  []host.Session
	created   []func(host.Session)
	opened    []string
	openErr   error
	boxes     []string
	transport bridge.Transport
}

func newFakeRuntime(name string) *fakeRuntime {
	def := host.NewMemorySession("default")
	return &fakeRuntime{
		name:      name,
		version:   "30.0.1",
		appEvents: make(map[string][]host.EventHandler),
		content:   make(map[string][]host.EventHandler),
		def:       def,
		sessions:  []host.Session{def},
		transport: bridge.Noop{},
	}
}

func (f *fakeRuntime) Version() string { return f.version }
func (f *fakeRuntime) AppName() string { return f.name }

func (f *fakeRuntime) WhenReady(fn func()) {
	f.mu.Lock()
	if !f.ready {
		f.readyFns = append(f.readyFns, fn)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	fn()
}

func (f *fakeRuntime) fireReady() {
	f.mu.Lock()
	f.ready = true
	fns := f.readyFns
	f.readyFns = nil
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (f *fakeRuntime) OnAppEvent(name string, h host.EventHandler) {
	f.appEvents[name] = append(f.appEvents[name], h)
}

func (f *fakeRuntime) OnContentEvent(name string, h host.EventHandler) {
	f.content[name] = append(f.content[name], h)
}

func (f *fakeRuntime) emitApp(name string) {
	for _, h := range f.appEvents[name] {
		h(host.Event{Name: name})
	}
}

func (f *fakeRuntime) DefaultSession() host.Session { return f.def }
func (f *fakeRuntime) Sessions() []host.Session     { return f.sessions }

func (f *fakeRuntime) OnSessionCreated(fn func(host.Session)) {
	f.created = append(f.created, fn)
}

func (f *fakeRuntime) newSession(id string) host.Session {
	s := host.NewMemorySession(id)
	f.sessions = append(f.sessions, s)
	for _, fn := range f.created {
		fn(s)
	}
	return s
}

func (f *fakeRuntime) OpenExternal(url string) error {
	f.opened = append(f.opened, url)
	return f.openErr
}

func (f *fakeRuntime) ShowErrorBox(title, message string) {
	f.boxes = append(f.boxes, title+": "+message)
}

func (f *fakeRuntime) Transport() bridge.Transport { return f.transport }

var errOpen = errors.New("no opener")
