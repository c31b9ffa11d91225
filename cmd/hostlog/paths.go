// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hostlog/hostlog/pkg/environment"
	"github.com/hostlog/hostlog/pkg/paths"
	"github.com/hostlog/hostlog/pkg/platform"
)

// strategyFlags are the detection overrides shared by inspection commands.
type strategyFlags struct {
	appName  string
	platform string
	home     string
	format   string
}

func (f *strategyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.appName, "app-name", "", "application name (overrides detection)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "platform family: mac, windows or unix")
	cmd.Flags().StringVar(&f.home, "home", "", "home directory (overrides the OS)")
	cmd.Flags().StringVarP(&f.format, "format", "o", string(formatText), "output format: text, json, toml or yaml")
}

// options validates the flags and converts them to strategy options.
func (f *strategyFlags) options() ([]environment.Option, outputFormat, error) {
	format := outputFormat(f.format)
	if err := format.Validate(); err != nil {
		return nil, "", err
	}

	var opts []environment.Option
	if f.appName != "" {
		opts = append(opts, environment.WithAppName(f.appName))
	}
	if f.platform != "" {
		family, err := platform.ParseFamily(f.platform)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, environment.WithPlatform(family))
	}
	if f.home != "" {
		opts = append(opts, environment.WithHome(f.home))
	}
	return opts, format, nil
}

func newPathsCommand(app *App) *cobra.Command {
	var flags strategyFlags
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show the directories derived for the application",
		Long: `Show the directories derived for the application.

The log directory is ~/Library/Logs/<app> on macOS and <app data>/<app>/logs
elsewhere. libraryTemplate is the same path with {appName} in place of the
name.`,
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

			vars, err := s.PathVariables()
			if err != nil {
				return app.fail(actionable(err))
			}
			snap := vars.Snapshot()
			return writeResult(cmd.OutOrStdout(), format, snap, pathFields(snap))
		},
	}
	flags.register(cmd)
	return cmd
}

func pathFields(s paths.Snapshot) []field {
	return []field{
		{"appName", s.AppName},
		{"appVersion", s.AppVersion},
		{"home", s.Home},
		{"appData", s.AppData},
		{"userData", s.UserData},
		{"temp", s.Temp},
		{"libraryDefaultDir", s.LibraryDefaultDir},
		{"libraryTemplate", s.LibraryTemplate},
		{"hostDefaultDir", s.HostDefaultDir},
	}
}
