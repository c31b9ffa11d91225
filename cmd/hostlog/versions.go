// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/hostlog/hostlog/internal/issue"
	"github.com/hostlog/hostlog/pkg/environment"
	"github.com/hostlog/hostlog/pkg/platform"
)

type roleInfo struct {
	Role            string `json:"role" toml:"role" yaml:"role"`
	Platform        string `json:"platform" toml:"platform" yaml:"platform"`
	IsHostFramework bool   `json:"isHostFramework" toml:"isHostFramework" yaml:"isHostFramework"`
	IsDev           bool   `json:"isDev" toml:"isDev" yaml:"isDev"`
}

func newVersionsCommand(app *App) *cobra.Command {
	var flags strategyFlags
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Show application, host framework and OS versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, format, err := flags.options()
			if err != nil {
				return err
			}
			sess, err := app.newSession(cmd.Context(), opts...)
			if err != nil {
				return app.fail(err)
			}
			s := sess.strategy()
			defer s.Close()

			v, err := s.Versions()
			if err != nil {
				return app.fail(actionable(err))
			}
			if info := platform.ReportedOS(); info.Name == platform.KernelDarwin {
				if _, verified := platform.DisplayVersion(platform.FamilyMac, info); !verified {
					app.renderIssue(issue.NewErrorContext().
						WithOperation("map the Darwin release to a macOS version").
						WithIssue(issue.UnverifiedOSVersionId).
						Build())
				}
			}
			return writeResult(cmd.OutOrStdout(), format, v, []field{
				{"app", v.App},
				{"hostFramework", v.HostFramework},
				{"os", v.OS},
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newRoleCommand(app *App) *cobra.Command {
	var flags strategyFlags
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Show the process role the environment selects",
		Long: `Show the process role the environment selects.

A process started by 'hostlog exec' is an isolated content process; any other
process runs without a host framework.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, format, err := flags.options()
			if err != nil {
				return err
			}
			sess, err := app.newSession(cmd.Context(), opts...)
			if err != nil {
				return app.fail(err)
			}
			s := sess.strategy()
			defer s.Close()

			info := roleInfo{
				Role:            s.Role().String(),
				Platform:        s.Platform().String(),
				IsHostFramework: s.IsHostFramework(),
				IsDev:           s.IsDev(),
			}
			return writeResult(cmd.OutOrStdout(), format, info, []field{
				{"role", info.Role},
				{"platform", info.Platform},
				{"isHostFramework", boolString(info.IsHostFramework)},
				{"isDev", boolString(info.IsDev)},
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// actionable converts strategy errors that carry user guidance.
func actionable(err error) error {
	var cerr *environment.ConfigurationError
	if errors.As(err, &cerr) {
		return cerr.Actionable()
	}
	var oerr *environment.OpenURLError
	if errors.As(err, &oerr) {
		return issue.NewErrorContext().
			WithOperation("open url").
			WithResource(oerr.URL).
			WithIssue(issue.OpenURLFailedId).
			Wrap(err).
			BuildError()
	}
	return err
}
