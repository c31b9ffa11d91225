// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostlog/hostlog/internal/issue"
	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/environment"
)

func newSendCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send <channel> <message>",
		Short: "Send a message to the coordinator",
		Long: `Send a message to the coordinator.

A message that is valid JSON is sent as is; anything else is sent as a JSON
string. Only works inside a process started by 'hostlog exec'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.peerStrategy(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SendIPC(cmd.Context(), args[0], payload(args[1])); err != nil {
				return app.fail(bridgeError("send", args[0], err))
			}
			return nil
		},
	}
}

func newInvokeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <channel> [message]",
		Short: "Invoke a coordinator handler and print its reply",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.peerStrategy(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var msg any
			if len(args) == 2 {
				msg = payload(args[1])
			}
			reply, err := s.InvokeIPC(cmd.Context(), args[0], msg)
			if err != nil {
				return app.fail(bridgeError("invoke", args[0], err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(reply))
			return nil
		},
	}
}

// peerStrategy returns the strategy of a process that has a bridge peer.
func (a *App) peerStrategy(cmd *cobra.Command) (environment.Strategy, error) {
	sess, err := a.newSession(cmd.Context())
	if err != nil {
		return nil, a.fail(err)
	}
	s := sess.strategy()
	if !s.Role().HasPeer() {
		s.Close()
		return nil, a.fail(issue.NewErrorContext().
			WithOperation(cmd.Name()).
			WithResource("role " + s.Role().String()).
			WithIssue(issue.BridgeUnavailableId).
			Wrap(bridge.ErrNoPeer).
			BuildError())
	}
	return s, nil
}

func payload(arg string) any {
	if json.Valid([]byte(arg)) {
		return bridge.Message(arg)
	}
	return arg
}

// bridgeError links transport failures to the catalog. Errors reported by
// the coordinator's handler are returned as they are.
func bridgeError(op, channel string, err error) error {
	var remote *bridge.RemoteError
	if errors.As(err, &remote) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource("channel " + channel).
		WithIssue(issue.BridgeUnavailableId).
		Wrap(err).
		BuildError()
}
