package catalog

import (
	"fmt"

	"github.com/unitworks/switchboard/pkg/errors"
)

// Descriptor describes one callable endpoint: its name, parsed URL
// template, and ordered binding slots. Descriptors are immutable once
// loaded into a catalog.
type Descriptor struct {
	// Name is the endpoint's unique name within its catalog.
	Name string

	// Template is the parsed URL template.
	Template *Template

	// Params are the ordered binding slots: declared parameter names
	// first, then any template placeholders left undeclared, in
	// appearance order. Positional arguments fill unbound slots in this
	// order.
	Params []string
}

// NewDescriptor builds a descriptor from a parsed template and the
// declared parameter names. Template placeholders not declared are
// appended as binding slots in appearance order.
func NewDescriptor(name string, tmpl *Template, declared []string) *Descriptor {
	seen := make(map[string]bool, len(declared))
	params := make([]string, 0, len(declared))
	for _, p := range declared {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		params = append(params, p)
	}
	for _, key := range tmpl.Keys() {
		if seen[key] {
			continue
		}
		seen[key] = true
		params = append(params, key)
	}

	return &Descriptor{Name: name, Template: tmpl, Params: params}
}

// Requires returns a copy of the ordered binding slots.
func (d *Descriptor) Requires() []string {
	params := make([]string, len(d.Params))
	copy(params, d.Params)
	return params
}

// URL returns the raw template text.
func (d *Descriptor) URL() string {
	return d.Template.Raw()
}

// Resolve binds arguments into the template and returns the final URL.
//
// Named values bind their slots directly. Positional args fill
// anonymous slots in appearance order, then any remaining unbound
// slots in Params order; surplus positional args are ignored. Fallback
// values (the session's unit number) bind last, only to slots still
// unbound. Any slot left unbound is a MissingParameterError; a
// partially templated URL is never returned.
func (d *Descriptor) Resolve(args []any, named map[string]any, fallback map[string]string) (string, error) {
	values := make(map[string]string, len(d.Params))

	for key, v := range named {
		values[key] = formatValue(v)
	}

	next := 0
	bind := func(slot string) {
		if next >= len(args) {
			return
		}
		if _, bound := values[slot]; bound {
			return
		}
		values[slot] = formatValue(args[next])
		next++
	}
	for _, slot := range d.Params {
		if IsAnonymousKey(slot) {
			bind(slot)
		}
	}
	for _, slot := range d.Params {
		if !IsAnonymousKey(slot) {
			bind(slot)
		}
	}

	for key, v := range fallback {
		if _, bound := values[key]; !bound {
			values[key] = v
		}
	}

	if missing := d.Template.Missing(values); len(missing) > 0 {
		return "", &errors.MissingParameterError{Endpoint: d.Name, Missing: missing}
	}

	return d.Template.Render(values)
}

// formatValue renders a binding value the way the service expects its
// path and query values: plain fmt formatting, no escaping.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
