// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the hostlog command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/hostlog/hostlog/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hostlog",
		Short: "Inspect and exercise the hostlog environment layer",
		Long: TitleStyle.Render("hostlog") + SubtitleStyle.Render(" - environment strategies for multi-process hosts") + `

hostlog shows how the logging environment layer sees the current process:
its role, application name, platform paths and versions. It also runs a
reference coordinator so content processes can be tried end to end.

` + SubtitleStyle.Render("Examples:") + `
  hostlog paths --app-name MyApp       Show where MyApp writes logs
  hostlog paths --format json          Same, as JSON
  hostlog versions                     Show application, host and OS versions
  hostlog exec -- ./worker             Run ./worker as a content process
  hostlog config show                  Show the effective configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is <app data>/hostlog/config.cue)")

	rootCmd.AddCommand(
		newPathsCommand(app),
		newVersionsCommand(app),
		newRoleCommand(app),
		newOpenCommand(app),
		newExecCommand(app),
		newSendCommand(app),
		newInvokeCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process on failure.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats err for the user. Actionable errors list
// their suggestions, and in verbose mode the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue writes the catalog entry linked to err, if any, to stderr.
func (a *App) renderIssue(err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue() == nil {
		return
	}
	rendered, rerr := ae.Issue().Render("notty")
	if rerr != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// fail renders the catalog entry linked to err and returns err for cobra.
func (a *App) fail(err error) error {
	a.renderIssue(err)
	return err
}

// handleError prints the error that ended the command. A bare exit code
// passed through from a content process prints nothing.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))
}
