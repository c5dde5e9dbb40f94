// Package constants provides shared constants used throughout the switchboard codebase.
// This includes timeouts, file permissions, and other configuration values that should
// be consistent across the library and the CLI.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the service
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// SignInTimeout is the timeout for a single sign-in exchange
	SignInTimeout = 1 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
