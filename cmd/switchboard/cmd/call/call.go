// Package call implements the call command, which signs in, performs an
// authenticated GET against a named endpoint, and prints the response.
package call

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unitworks/switchboard"
	"github.com/unitworks/switchboard/internal/cmd/cmdutil"
	"github.com/unitworks/switchboard/pkg/constants"
	"github.com/unitworks/switchboard/pkg/errors"
)

// AppContext defines the interface the call command needs from the app.
type AppContext interface {
	ClientOptions() []switchboard.Option
	Credentials() (username, password string)
	Logger() *zerolog.Logger
}

// NewCommand creates the call command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.RequestFlags

	cmd := &cobra.Command{
		Use:     "call <endpoint> [args...]",
		GroupID: "core",
		Short:   "Call an endpoint with a signed-in session",
		Long: `Call signs in with the configured credentials, resolves the named
endpoint, performs the GET, and prints the response body. The session
is signed out afterwards even when the request fails.

Credentials come from SWITCHBOARD_USERNAME and SWITCHBOARD_PASSWORD,
a .env file, or the config file. The signed-in unit fills unit
parameters automatically; --unit overrides it.`,
		Example: `  switchboard call current-user-detail
  switchboard call member-photo individual 42
  switchboard call unit-members --unit 70001
  switchboard call unit-events 2026-08 --format raw`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "json" && format != "raw" {
				return &errors.ValidationError{
					Field:   "format",
					Value:   format,
					Message: "must be json or raw",
				}
			}

			username, password := app.Credentials()
			if username == "" || password == "" {
				return &errors.ValidationError{
					Field:   "credentials",
					Message: "set SWITCHBOARD_USERNAME and SWITCHBOARD_PASSWORD or add them to the config file",
				}
			}

			opts, err := flags.RequestOptions(args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			var (
				body   []byte
				status int
			)
			err = switchboard.WithSession(ctx, username, password, func(client *switchboard.Client) error {
				resp, err := client.Get(ctx, args[0], opts...)
				if err != nil {
					return err
				}
				status = resp.StatusCode
				body, err = resp.Bytes()
				return err
			}, app.ClientOptions()...)
			if err != nil {
				return err
			}

			if err := writeBody(cmd.OutOrStdout(), body, format); err != nil {
				return err
			}

			// The body has been printed either way; a non-success status
			// still fails the command.
			if status < 200 || status >= 300 {
				return &errors.APIError{
					Endpoint:   args[0],
					StatusCode: status,
					Message:    "endpoint returned a non-success status",
				}
			}
			return nil
		},
	}

	flags = cmdutil.AddRequestFlags(cmd)
	cmd.Flags().StringP("format", "f", "json", "Output format: json (pretty-printed when possible) or raw")

	return cmd
}

// writeBody prints the response body. JSON format re-indents bodies that
// parse as JSON and falls back to the raw bytes for everything else.
func writeBody(w io.Writer, body []byte, format string) error {
	if format == "json" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			_, err := w.Write(buf.Bytes())
			return err
		}
	}

	if _, err := w.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}
