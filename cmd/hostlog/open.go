// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOpenCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open a URL with the system handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.newSession(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			s := sess.strategy()
			defer s.Close()

			var openErr error
			s.OpenURL(args[0], func(err error) { openErr = err })
			if openErr != nil {
				return app.fail(actionable(openErr))
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Opened "+args[0]))
			return nil
		},
	}
}
