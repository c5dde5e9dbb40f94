// Package endpoints implements the endpoints command, which lists the
// endpoint catalog the configured service publishes.
package endpoints

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unitworks/switchboard"
	"github.com/unitworks/switchboard/internal/cmd/output"
	"github.com/unitworks/switchboard/pkg/constants"
)

// AppContext defines the interface the endpoints command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Client(ctx context.Context) (*switchboard.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the endpoints command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		GroupID: "core",
		Short:   "List the endpoint catalog",
		Long: `Endpoints fetches the configured catalog and lists every endpoint
with its declared parameters. No sign-in is required.`,
		Example: `  switchboard endpoints                 # names and parameters
  switchboard endpoints --format wide   # include the URL templates
  switchboard endpoints --format json   # machine-readable listing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if format == "" {
				format = output.DetectFormat("")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			client, err := app.Client(ctx)
			if err != nil {
				return err
			}

			app.Logger().Debug().
				Str("source", client.Catalog().Source()).
				Int("endpoints", client.Catalog().Len()).
				Msg("Listing endpoint catalog")

			return output.FormatEndpoints(cmd.OutOrStdout(), client.Catalog().List(), format)
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format: table, json, yaml, wide")

	return cmd
}
