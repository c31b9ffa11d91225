// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostlog/hostlog/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hostlog configuration",
		Long: `Manage hostlog configuration.

Configuration is read from config.cue in the hostlog configuration directory
(override with HOSTLOG_CONFIG_DIR) or from the file given with --config.
Every setting can also be set through HOSTLOG_* environment variables.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(app),
		newConfigPathCommand(app),
		newConfigInitCommand(app),
	)
	return cmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	}
}

func newConfigPathCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Locate(app.loadOptions())
			if err != nil {
				return app.fail(err)
			}
			if path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			path, err = config.DefaultPath("")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path+" "+SubtitleStyle.Render("(not created)"))
			return nil
		},
	}
}

func newConfigInitCommand(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("Configuration already exists: ")+path)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created ")+path)
			return nil
		},
	}
}
