// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/hostlog/hostlog/internal/issue"
	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/environment"
	"github.com/hostlog/hostlog/pkg/host"
)

// Channels the coordinator serves for its content processes.
const (
	channelLog      = "log"
	channelPaths    = "paths"
	channelVersions = "versions"
)

func newExecCommand(app *App) *cobra.Command {
	var terminal bool
	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command as a content process of this coordinator",
		Long: `Run a command as a content process of this coordinator.

The child receives the bridge address in its environment, so 'hostlog send'
and 'hostlog invoke' inside it reach this process. The coordinator prints
messages sent on the "log" channel and answers invokes on "paths" and
"versions". The exit code of the child is returned.

With --tty the child runs on a pseudo-terminal (not available on Windows).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runExec(cmd.Context(), args, terminal)
		},
	}
	cmd.Flags().BoolVarP(&terminal, "tty", "t", false, "run the command on a pseudo-terminal")
	return cmd
}

func (a *App) runExec(ctx context.Context, args []string, terminal bool) error {
	sess, err := a.newSession(ctx)
	if err != nil {
		return a.fail(err)
	}

	// The coordinator reports the name it resolves to its children. An
	// unresolved name is left for the children to detect.
	probe := sess.strategy()
	appName, _ := probe.AppName()
	probe.Close()

	coord, err := host.NewCoordinator(host.CoordinatorConfig{
		AppName:  appName,
		Version:  Version,
		IPC:      sess.cfg.IPCServerConfig(sess.logger),
		Logger:   sess.logger,
		ErrorOut: a.stderr,
		Stdout:   a.stdout,
		Terminal: terminal,
	})
	if err != nil {
		return a.fail(err)
	}

	s := sess.strategy(environment.WithRuntime(coord))
	defer s.Close()
	serveContent(s, a.stdout)

	if err := coord.Start(ctx); err != nil {
		return a.fail(err)
	}
	defer coord.Stop()

	code, err := coord.Run(ctx, args[0], args[1:]...)
	if err != nil {
		return a.fail(issue.NewErrorContext().
			WithOperation("run content process").
			WithResource(args[0]).
			WithIssue(issue.ContentProcessFailedId).
			Wrap(err).
			BuildError())
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

// serveContent registers the coordinator's channels on s.
func serveContent(s environment.Strategy, out io.Writer) {
	var mu sync.Mutex
	s.OnIPC(channelLog, func(_ context.Context, msg bridge.Message) {
		var text string
		if err := bridge.Decode(msg, &text); err != nil {
			text = string(msg)
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, channelStyle.Render("["+channelLog+"]")+" "+text)
	})
	s.OnIPCInvoke(channelPaths, func(context.Context, bridge.Message) (any, error) {
		vars, err := s.PathVariables()
		if err != nil {
			return nil, err
		}
		return vars.Snapshot(), nil
	})
	s.OnIPCInvoke(channelVersions, func(context.Context, bridge.Message) (any, error) {
		return s.Versions()
	})
}
