// Package app provides the application context and dependency management
// for the switchboard CLI. It centralizes configuration, logging, and
// client construction so commands can stay focused on their own behavior.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/unitworks/switchboard"
)

// App represents the switchboard CLI application with its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client management
	mu     sync.RWMutex
	client *switchboard.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a pre-built client, bypassing lazy construction.
func WithClient(client *switchboard.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}

// Version returns the application version.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash the binary was built from.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns who or what built the binary.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Credentials returns the configured username and password.
func (a *App) Credentials() (username, password string) {
	return a.config.Username, a.config.Password
}

// Client returns the shared switchboard client, constructing it on first
// use. Construction fetches the endpoint catalog, so commands that never
// need it pay nothing.
func (a *App) Client(ctx context.Context) (*switchboard.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		client := a.client
		a.mu.RUnlock()
		return client, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check under the write lock
	if a.client != nil {
		return a.client, nil
	}

	client, err := switchboard.New(ctx, a.ClientOptions()...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// ClientOptions maps the application configuration onto client options.
// Commands that build their own client, such as call with its scoped
// session, start from the same set.
func (a *App) ClientOptions() []switchboard.Option {
	opts := []switchboard.Option{switchboard.WithLogger(a.logger)}

	switch {
	case a.config.CatalogFile != "":
		opts = append(opts, switchboard.WithCatalogFile(a.config.CatalogFile))
	case a.config.CatalogURL != "":
		opts = append(opts, switchboard.WithCatalogURL(a.config.CatalogURL))
	}

	if a.config.Timeout > 0 {
		opts = append(opts, switchboard.WithTimeout(a.config.Timeout))
	}

	return opts
}
