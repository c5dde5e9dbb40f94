package app

import (
	"testing"

	"github.com/rs/zerolog"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		envLevel string
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides quiet",
			config:   &Config{LogLevel: "trace", Quiet: true},
			expected: "trace",
		},
		{
			name:     "both verbose and quiet prefers quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "invalid explicit level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
		{
			name:     "environment variable used when no flags set",
			config:   &Config{},
			envLevel: "error",
			expected: "error",
		},
		{
			name:     "verbose flag overrides environment variable",
			config:   &Config{Verbose: true},
			envLevel: "error",
			expected: "debug",
		},
		{
			name:     "invalid environment variable falls back to info",
			config:   &Config{},
			envLevel: "noisy",
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Neutralize any LOG_LEVEL from the surrounding environment
			t.Setenv("LOG_LEVEL", tt.envLevel)

			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"invalid", "info"},
		{"DEBUG", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		if got := validateLogLevel(tt.input); got != tt.expected {
			t.Errorf("validateLogLevel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// TestNewLogger verifies the constructed logger honors the derived level.
func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name     string
		config   *Config
		expected zerolog.Level
	}{
		{
			name:     "default info",
			config:   &Config{LogFormat: "json", LogOutput: "discard"},
			expected: zerolog.InfoLevel,
		},
		{
			name:     "verbose debug",
			config:   &Config{Verbose: true, LogFormat: "json", LogOutput: "discard"},
			expected: zerolog.DebugLevel,
		},
		{
			name:     "explicit error",
			config:   &Config{LogLevel: "error", LogFormat: "json", LogOutput: "discard"},
			expected: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.config)
			if got := logger.GetLevel(); got != tt.expected {
				t.Errorf("GetLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}
