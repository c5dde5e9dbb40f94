// Package resolve implements the resolve command, which binds arguments
// into an endpoint's URL template and prints the result.
package resolve

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unitworks/switchboard"
	"github.com/unitworks/switchboard/internal/cmd/cmdutil"
	"github.com/unitworks/switchboard/pkg/constants"
)

// AppContext defines the interface the resolve command needs from the app.
type AppContext interface {
	Client(ctx context.Context) (*switchboard.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the resolve command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.RequestFlags

	cmd := &cobra.Command{
		Use:     "resolve <endpoint> [args...]",
		GroupID: "core",
		Short:   "Resolve an endpoint template to a URL",
		Long: `Resolve binds arguments into the named endpoint's URL template and
prints the resulting URL without requesting it.

Positional arguments fill anonymous placeholders first and declared
parameters after that; --param binds parameters by name. Resolve does
not sign in, so unit parameters must be supplied with --unit or
--param when the template needs them.`,
		Example: `  switchboard resolve member-photo individual 42
  switchboard resolve unit-members --unit 56030
  switchboard resolve current-user-detail --param lang=eng`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.RequestOptions(args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			client, err := app.Client(ctx)
			if err != nil {
				return err
			}

			resolved, err := client.Resolve(args[0], opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}

	flags = cmdutil.AddRequestFlags(cmd)

	return cmd
}
