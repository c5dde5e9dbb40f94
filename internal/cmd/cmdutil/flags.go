// Package cmdutil provides shared flags and argument helpers for switchboard commands.
package cmdutil

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/unitworks/switchboard"
	"github.com/unitworks/switchboard/pkg/errors"
)

// RequestFlags holds the flags commands use to bind endpoint parameters.
type RequestFlags struct {
	Params []string
	Unit   string
	Member string
}

// AddRequestFlags adds parameter-binding flags to a command.
func AddRequestFlags(cmd *cobra.Command) *RequestFlags {
	flags := &RequestFlags{}

	cmd.Flags().StringArrayVarP(&flags.Params, "param", "p", nil,
		"Named parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&flags.Unit, "unit", "",
		"Unit number to fill unit parameters")
	cmd.Flags().StringVar(&flags.Member, "member", "",
		"Member number to fill member parameters")

	return flags
}

// RequestOptions converts positional arguments and the parsed flags into
// request options for the client. Positional arguments keep their order;
// --unit and --member are shorthands for the matching named parameters.
func (f *RequestFlags) RequestOptions(args []string) ([]switchboard.RequestOption, error) {
	named, err := ParseParams(f.Params)
	if err != nil {
		return nil, err
	}
	if f.Unit != "" {
		named["unit"] = f.Unit
	}
	if f.Member != "" {
		named["member"] = f.Member
	}

	opts := make([]switchboard.RequestOption, 0, 2)
	if len(args) > 0 {
		positional := make([]any, len(args))
		for i, arg := range args {
			positional[i] = arg
		}
		opts = append(opts, switchboard.Args(positional...))
	}
	if len(named) > 0 {
		opts = append(opts, switchboard.Params(named))
	}
	return opts, nil
}

// ParseParams parses repeated name=value pairs into a parameter map.
func ParseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, &errors.ValidationError{
				Field:   "param",
				Value:   pair,
				Message: "must be name=value",
			}
		}
		params[name] = value
	}
	return params, nil
}
