// SPDX-License-Identifier: MPL-2.0

package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/hostlog/hostlog/internal/testutil"
	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/ipc"
)

const helperEnv = "HOSTLOG_HOST_TEST_HELPER"

// TestMain lets the test binary double as a content process.
func TestMain(m *testing.M) {
	switch os.Getenv(helperEnv) {
	case "1":
		os.Exit(runHelper())
	case "tty":
		os.Exit(runTerminalHelper())
	}
	os.Exit(m.Run())
}

func runHelper() int {
	c := ipc.NewClientFromEnv(nil)
	if c == nil {
		return 10
	}
	payload := map[string]string{
		"app":     os.Getenv(ipc.EnvAppName),
		"preload": os.Getenv(EnvPreload),
	}
	if err := c.Send(context.Background(), "log", bridge.MustEncode(payload)); err != nil {
		return 11
	}
	return 3
}

func runTerminalHelper() int {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return 12
	}
	if fi.Mode()&os.ModeCharDevice != 0 {
		fmt.Println("stdout is a terminal")
	} else {
		fmt.Println("stdout is not a terminal")
	}
	return 0
}

func newTestCoordinator(t *testing.T, errOut *bytes.Buffer) *Coordinator {
	t.Helper()
	c, err := NewCoordinator(CoordinatorConfig{AppName: "Test App", Version: "9.9.9", ErrorOut: errOut})
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return c
}

func TestCoordinatorReady(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, nil)

	var order []string
	c.WhenReady(func() { order = append(order, "before-start") })
	c.OnAppEvent(EventReady, func(Event) { order = append(order, "ready-event") })

	if len(order) != 0 {
		t.Fatal("ready callback ran before Start")
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer testutil.MustStop(t, c)

	c.WhenReady(func() { order = append(order, "after-start") })

	want := "before-start,ready-event,after-start"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
	if c.Version() != "9.9.9" || c.AppName() != "Test App" {
		t.Errorf("Version/AppName = %q/%q", c.Version(), c.AppName())
	}
}

func TestCoordinatorSpawnBeforeStart(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, nil)
	if _, err := c.Spawn(context.Background(), os.Args[0]); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Spawn() error = %v, want ErrNotStarted", err)
	}
}

func TestCoordinatorShowErrorBox(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := newTestCoordinator(t, &out)
	c.ShowErrorBox("Logging failed", "cannot open log file")

	for _, want := range []string{"Logging failed", "cannot open log file"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("error box %q missing %q", out.String(), want)
		}
	}
}

func TestCoordinatorOpenExternal(t *testing.T) {
	t.Parallel()

	var opened string
	c, err := NewCoordinator(CoordinatorConfig{Opener: func(_ context.Context, url string) error {
		opened = url
		return nil
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.OpenExternal("https://example.com"); err != nil {
		t.Fatalf("OpenExternal() error = %v", err)
	}
	if opened != "https://example.com" {
		t.Errorf("opened %q", opened)
	}
}

func TestCoordinatorRunContentProcess(t *testing.T) {
	t.Setenv(helperEnv, "1")

	c := newTestCoordinator(t, nil)
	AddPreload(c.DefaultSession(), "/opt/preload.js")

	var mu sync.Mutex
	var got map[string]string
	router := bridge.NewRouter()
	router.On("log", func(_ context.Context, msg bridge.Message) {
		mu.Lock()
		defer mu.Unlock()
		_ = bridge.Decode(msg, &got)
	})
	c.Transport().Listen(router)

	var sessions []string
	c.OnSessionCreated(func(s Session) { sessions = append(sessions, s.ID()) })
	var events []string
	for _, name := range []string{EventContentStarted, EventContentExited} {
		c.OnContentEvent(name, func(ev Event) { events = append(events, ev.Name+":"+ev.Source) })
	}

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer testutil.MustStop(t, c)

	code, err := c.Run(context.Background(), os.Args[0], "-test.run=^$")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}

	mu.Lock()
	defer mu.Unlock()
	if got["app"] != "Test App" {
		t.Errorf("child saw app name %q", got["app"])
	}
	if got["preload"] != "/opt/preload.js" {
		t.Errorf("child saw preload %q", got["preload"])
	}
	if strings.Join(sessions, ",") != "content-1" {
		t.Errorf("sessions created = %v", sessions)
	}
	if strings.Join(events, ",") != "did-start:content-1,exited:content-1" {
		t.Errorf("content events = %v", events)
	}
	if n := len(c.Sessions()); n != 2 {
		t.Errorf("Sessions() = %d, want 2", n)
	}
}

func TestAddPreload(t *testing.T) {
	t.Parallel()

	s := NewMemorySession("s")
	AddPreload(s, "a.js")
	AddPreload(s, "b.js")
	AddPreload(s, "a.js")
	if got := strings.Join(s.Preloads(), ","); got != "a.js,b.js" {
		t.Errorf("Preloads() = %s", got)
	}
}

func TestCoordinatorSessionCallbacksSnapshot(t *testing.T) {
	t.Setenv(helperEnv, "tty")

	var out bytes.Buffer
	c, err := NewCoordinator(CoordinatorConfig{Stdout: &out})
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}

	var calls []string
	c.OnSessionCreated(func(s Session) {
		calls = append(calls, "first:"+s.ID())
		// Registered during delivery: applies from the next session on.
		c.OnSessionCreated(func(s Session) { calls = append(calls, "late:"+s.ID()) })
	})

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer testutil.MustStop(t, c)

	for range 2 {
		if _, err := c.Run(context.Background(), os.Args[0], "-test.run=^$"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	want := "first:content-1,first:content-2,late:content-2"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("session callbacks = %s, want %s", got, want)
	}
}
