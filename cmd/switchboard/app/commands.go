package app

import (
	"github.com/spf13/cobra"

	"github.com/unitworks/switchboard/cmd/switchboard/cmd/call"
	"github.com/unitworks/switchboard/cmd/switchboard/cmd/endpoints"
	"github.com/unitworks/switchboard/cmd/switchboard/cmd/resolve"
	"github.com/unitworks/switchboard/cmd/switchboard/cmd/version"
)

// Compile-time checks that App satisfies each command's context interface.
var (
	_ endpoints.AppContext = (*App)(nil)
	_ resolve.AppContext   = (*App)(nil)
	_ call.AppContext      = (*App)(nil)
	_ version.AppContext   = (*App)(nil)
)

// CreateEndpointsCommand creates the endpoints command with app dependencies.
func (a *App) CreateEndpointsCommand() *cobra.Command {
	return endpoints.NewCommand(a)
}

// CreateResolveCommand creates the resolve command with app dependencies.
func (a *App) CreateResolveCommand() *cobra.Command {
	return resolve.NewCommand(a)
}

// CreateCallCommand creates the call command with app dependencies.
func (a *App) CreateCallCommand() *cobra.Command {
	return call.NewCommand(a)
}

// CreateVersionCommand creates the version command with app dependencies.
func (a *App) CreateVersionCommand() *cobra.Command {
	return version.NewCommand(a)
}
