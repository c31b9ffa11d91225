// SPDX-License-Identifier: MPL-2.0

package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/ipc"
	"github.com/hostlog/hostlog/pkg/platform"
	"github.com/hostlog/hostlog/pkg/types"
)

var (
	// ErrNotStarted is returned by Spawn before Start.
	ErrNotStarted = errors.New("coordinator not started")

	// ErrTerminalUnsupported is returned by Spawn when Terminal is set on a
	// platform without pseudo-terminals.
	ErrTerminalUnsupported = errors.New("pseudo-terminals are not supported on this platform")
)

var errorBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#EF4444")).
	Padding(0, 1)

var errorTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#EF4444"))

type (
	// CoordinatorConfig configures a Coordinator.
	CoordinatorConfig struct {
		// AppName is reported by AppName and passed to content processes.
		AppName string
		// Version is the host framework version.
		Version string
		IPC     ipc.Config
		Logger  *log.Logger
		// ErrorOut receives error boxes. Defaults to os.Stderr.
		ErrorOut io.Writer
		// Stdout receives the output of content processes. Defaults to
		// os.Stdout. Without Terminal, stderr goes to os.Stderr.
		Stdout io.Writer
		// Terminal runs content processes on a pseudo-terminal, so they see
		// a TTY. Both output streams are copied to Stdout.
		Terminal bool
		// Opener opens external URLs. Defaults to the platform opener.
		Opener func(ctx context.Context, url string) error
	}

	// Coordinator is a reference Runtime: the coordinator process of a
	// multi-process host.
	Coordinator struct {
		cfg    CoordinatorConfig
		server *ipc.Server
		logger *log.Logger

		mu              sync.Mutex
		ready           bool
		readyFns        []func()
		appHandlers     map[string][]EventHandler
		contentHandlers map[string][]EventHandler
		sessionFns      []func(Session)
		defaultSession  *MemorySession
		sessions        []Session
		nextID          int
	}

	// Content is a content process spawned by a Coordinator.
	Content struct {
		ID      string
		Session *MemorySession
		Cmd     *exec.Cmd

		// output closes when the terminal copy has drained. Nil without a
		// terminal.
		output <-chan struct{}
	}
)

// NewCoordinator creates a coordinator and its IPC server.
func NewCoordinator(cfg CoordinatorConfig) (*Coordinator, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.ErrorOut == nil {
		cfg.ErrorOut = os.Stderr
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.IPC.Logger == nil {
		cfg.IPC.Logger = cfg.Logger
	}

	server, err := ipc.NewServer(cfg.IPC)
	if err != nil {
		return nil, err
	}

	def := NewMemorySession("default")
	return &Coordinator{
		cfg:             cfg,
		server:          server,
		logger:          cfg.Logger,
		appHandlers:     make(map[string][]EventHandler),
		contentHandlers: make(map[string][]EventHandler),
		defaultSession:  def,
		sessions:        []Session{def},
	}, nil
}

// Start brings up the IPC server and fires the ready signal.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.server.Start(ctx); err != nil {
		return fmt.Errorf("start ipc server: %w", err)
	}

	c.mu.Lock()
	c.ready = true
	fns := c.readyFns
	c.readyFns = nil
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	c.emitApp(Event{Name: EventReady})
	return nil
}

// Stop emits will-quit and shuts the IPC server down.
func (c *Coordinator) Stop() error {
	c.emitApp(Event{Name: EventWillQuit})
	return c.server.Stop()
}

// Server returns the IPC server.
func (c *Coordinator) Server() *ipc.Server { return c.server }

func (c *Coordinator) Version() string { return c.cfg.Version }

func (c *Coordinator) AppName() string { return c.cfg.AppName }

func (c *Coordinator) WhenReady(fn func()) {
	c.mu.Lock()
	if !c.ready {
		c.readyFns = append(c.readyFns, fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	fn()
}

func (c *Coordinator) OnAppEvent(name string, h EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appHandlers[name] = append(c.appHandlers[name], h)
}

func (c *Coordinator) OnContentEvent(name string, h EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentHandlers[name] = append(c.contentHandlers[name], h)
}

func (c *Coordinator) DefaultSession() Session { return c.defaultSession }

func (c *Coordinator) Sessions() []Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Session(nil), c.sessions...)
}

func (c *Coordinator) OnSessionCreated(fn func(Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionFns = append(c.sessionFns, fn)
}

// OpenExternal opens url with the configured opener and waits for it.
func (c *Coordinator) OpenExternal(url string) error {
	if c.cfg.Opener != nil {
		return c.cfg.Opener(context.Background(), url)
	}
	wait, err := platform.StartOpener(context.Background(), platform.Current(), url)
	if err != nil {
		return err
	}
	return wait()
}

// ShowErrorBox renders a bordered error box on the error output.
func (c *Coordinator) ShowErrorBox(title, message string) {
	box := errorBoxStyle.Render(errorTitleStyle.Render(title) + "\n" + message)
	_, _ = fmt.Fprintln(c.cfg.ErrorOut, box)
}

func (c *Coordinator) Transport() bridge.Transport { return c.server }

// Spawn starts name as a content process. The child gets a new session,
// whose preloads start from the default session's, and the IPC environment.
func (c *Coordinator) Spawn(ctx context.Context, name string, args ...string) (*Content, error) {
	if !c.server.IsRunning() {
		return nil, ErrNotStarted
	}

	c.mu.Lock()
	c.nextID++
	id := "content-" + strconv.Itoa(c.nextID)
	sess := NewMemorySession(id)
	sess.SetPreloads(c.defaultSession.Preloads())
	c.sessions = append(c.sessions, sess)
	fns := slices.Clone(c.sessionFns)
	c.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
	c.emitApp(Event{Name: EventSessionCreated, Args: []any{sess.ID()}})

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), c.server.Env(c.cfg.AppName, c.cfg.Version)...)
	if preloads := sess.Preloads(); len(preloads) > 0 {
		cmd.Env = append(cmd.Env, EnvPreload+"="+strings.Join(preloads, string(os.PathListSeparator)))
	}

	c.logger.Debug("spawning content process", "id", id, "cmd", platform.CommandLine(name, args...), "terminal", c.cfg.Terminal)
	content := &Content{ID: id, Session: sess, Cmd: cmd}
	if c.cfg.Terminal {
		output, err := startTerminal(cmd, c.cfg.Stdout)
		if err != nil {
			return nil, fmt.Errorf("start %s: %w", name, err)
		}
		content.output = output
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = c.cfg.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("start %s: %w", name, err)
		}
	}

	c.emitContent(Event{Name: EventContentStarted, Source: id, Args: []any{cmd.Process.Pid}})
	return content, nil
}

// Run spawns name as a content process, waits for it and returns its exit
// code. The wait is abandoned when the IPC server fails.
func (c *Coordinator) Run(ctx context.Context, name string, args ...string) (types.ExitCode, error) {
	g, gctx := errgroup.WithContext(ctx)

	content, err := c.Spawn(gctx, name, args...)
	if err != nil {
		return 1, err
	}

	done := make(chan struct{})
	var code types.ExitCode
	g.Go(func() error {
		defer close(done)
		err := content.Cmd.Wait()
		if content.output != nil {
			<-content.output
		}
		code = types.ExitCodeOf(err)
		c.emitContent(Event{Name: EventContentExited, Source: content.ID, Args: []any{int(code)}})

		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return fmt.Errorf("wait %s: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case err := <-c.server.Err():
			if err != nil {
				return fmt.Errorf("ipc server: %w", err)
			}
		case <-done:
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 1, err
	}
	return code, nil
}

func (c *Coordinator) emitApp(ev Event) {
	c.mu.Lock()
	hs := append([]EventHandler(nil), c.appHandlers[ev.Name]...)
	c.mu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}

func (c *Coordinator) emitContent(ev Event) {
	c.mu.Lock()
	hs := append([]EventHandler(nil), c.contentHandlers[ev.Name]...)
	c.mu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}
