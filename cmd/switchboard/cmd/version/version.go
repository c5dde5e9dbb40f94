// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/unitworks/switchboard/internal/cmd/output"
)

// AppContext defines the interface the version command needs from the app.
type AppContext interface {
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}

// buildInfo is the structured form of the version output.
type buildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewCommand creates the version command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the switchboard CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildInfo{
				Version:   app.Version(),
				Commit:    app.Commit(),
				BuildDate: app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			formatFlag, _ := cmd.Flags().GetString("format")
			if formatFlag == "" {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "switchboard version %s\n", info.Version)
				fmt.Fprintf(out, "commit: %s\n", info.Commit)
				fmt.Fprintf(out, "built: %s\n", info.BuildDate)
				fmt.Fprintf(out, "built by: %s\n", info.BuiltBy)
				fmt.Fprintf(out, "go version: %s\n", info.GoVersion)
				fmt.Fprintf(out, "platform: %s\n", info.Platform)
				return nil
			}

			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format: table, json, yaml (default is plain text)")

	return cmd
}
