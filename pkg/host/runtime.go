// SPDX-License-Identifier: MPL-2.0

package host

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/hostlog/hostlog/pkg/bridge"
)

// Event names emitted by Coordinator.
const (
	EventReady          = "ready"
	EventWillQuit       = "will-quit"
	EventSessionCreated = "session-created"

	// Content events.
	EventContentStarted = "did-start"
	EventContentExited  = "exited"
)

// EnvPreload lists the preload files of a content process's session,
// separated by os.PathListSeparator.
const EnvPreload = "HOSTLOG_PRELOAD"

type (
	// Event is an application or content event.
	Event struct {
		Name string
		// Source identifies the content process for content events.
		Source string
		Args   []any
	}

	// EventHandler receives events.
	EventHandler func(Event)

	// Session holds per-content-process settings such as preload files.
	Session interface {
		ID() string
		Preloads() []string
		SetPreloads(files []string)
	}

	// Runtime is the coordinator-side host framework API.
	Runtime interface {
		// Version is the host framework version.
		Version() string
		// AppName is the name the host reports for the application, or "".
		AppName() string
		// WhenReady calls fn once the host is ready, immediately if it already is.
		WhenReady(fn func())
		OnAppEvent(name string, h EventHandler)
		// OnContentEvent subscribes h to name on every current and future
		// content process.
		OnContentEvent(name string, h EventHandler)
		DefaultSession() Session
		Sessions() []Session
		// OnSessionCreated is called for sessions created after registration.
		OnSessionCreated(fn func(Session))
		OpenExternal(url string) error
		ShowErrorBox(title, message string)
		// Transport is the bridge to the content processes.
		Transport() bridge.Transport
	}
)

// MemorySession is a Session kept in memory.
type MemorySession struct {
	id string

	mu       sync.Mutex
	preloads []string
}

// NewMemorySession returns an empty session.
func NewMemorySession(id string) *MemorySession {
	return &MemorySession{id: id}
}

func (s *MemorySession) ID() string { return s.id }

func (s *MemorySession) Preloads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.preloads)
}

func (s *MemorySession) SetPreloads(files []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preloads = slices.Clone(files)
}

// AddPreload appends file to the session's preloads unless it is already
// present.
func AddPreload(s Session, file string) {
	cur := s.Preloads()
	if slices.Contains(cur, file) {
		return
	}
	s.SetPreloads(append(cur, file))
}
