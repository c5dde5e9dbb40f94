package catalog

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/unitworks/switchboard/pkg/errors"
)

// wireEntry is the structured form of a catalog entry.
type wireEntry struct {
	Template string   `json:"template" yaml:"template"`
	Params   []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Decode parses a JSON catalog document. Entries are either structured
// objects with a template and declared params, or legacy bare URL
// strings whose %-style markers are normalized into placeholders.
// Values of any other shape are skipped, as the source service's
// clients always did.
func Decode(data []byte) (*Catalog, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", "catalog document", err)
	}

	c := New()
	for _, name := range sortedKeys(doc) {
		raw := doc[name]

		var legacy string
		if err := json.Unmarshal(raw, &legacy); err == nil {
			if err := addLegacy(c, name, legacy); err != nil {
				return nil, err
			}
			continue
		}

		var entry wireEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			// Neither a string nor an object; skip like legacy clients.
			continue
		}
		if err := addStructured(c, name, entry); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// DecodeYAML parses a YAML catalog document with the same entry shapes
// as Decode. Used for local catalog snapshot files.
func DecodeYAML(data []byte) (*Catalog, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "catalog document", err)
	}

	c := New()
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch v := doc[name].(type) {
		case string:
			if err := addLegacy(c, name, v); err != nil {
				return nil, err
			}
		case map[string]any:
			entry := wireEntry{}
			entry.Template, _ = v["template"].(string)
			if list, ok := v["params"].([]any); ok {
				for _, item := range list {
					if s, ok := item.(string); ok {
						entry.Params = append(entry.Params, s)
					}
				}
			}
			if err := addStructured(c, name, entry); err != nil {
				return nil, err
			}
		default:
			continue
		}
	}

	return c, nil
}

// addLegacy normalizes and adds a legacy bare-URL entry. Non-http
// entries are dropped silently.
func addLegacy(c *Catalog, name, rawURL string) error {
	normalized, ok := normalizeLegacy(name, rawURL)
	if !ok {
		return nil
	}

	tmpl, err := ParseTemplate(normalized)
	if err != nil {
		return entryError(name, err)
	}

	return c.Set(name, NewDescriptor(name, tmpl, nil))
}

// addStructured validates and adds a structured entry.
func addStructured(c *Catalog, name string, entry wireEntry) error {
	if entry.Template == "" {
		return entryError(name, errors.New("entry missing template"))
	}

	tmpl, err := ParseTemplate(entry.Template)
	if err != nil {
		return entryError(name, err)
	}

	return c.Set(name, NewDescriptor(name, tmpl, entry.Params))
}

// entryError wraps a per-entry failure with the entry's name.
func entryError(name string, err error) error {
	return &errors.ParseError{
		Format:  "catalog",
		Source:  name,
		Message: err.Error(),
		Err:     err,
	}
}

// normalizeLegacy rewrites a legacy URL's %-style markers into template
// placeholders. The rules and their order mirror the service's original
// client; every replacement applies to all occurrences. Entries whose
// value is not an http(s) URL are skipped.
func normalizeLegacy(name, url string) (string, bool) {
	if !strings.HasPrefix(url, "http") {
		return "", false
	}

	// Unit slots
	switch {
	case strings.Contains(url, "unit/%@"):
		url = strings.ReplaceAll(url, "unit/%@", "unit/{unit}")
	case strings.Contains(url, "unitNumber=%@"):
		url = strings.ReplaceAll(url, "=%@", "={unit}")
	case strings.HasPrefix(name, "unit-") && strings.HasSuffix(url, "/%@"):
		url = url[:len(url)-2] + "{unit}"
	}

	// Member slots
	switch {
	case strings.Contains(url, "membership-record/%@"):
		url = strings.ReplaceAll(url, "%@", "{member}")
	case strings.Contains(url, "photo/url/%@"):
		url = strings.ReplaceAll(url, "url/%@", "url/{member}")
	}

	// Remaining markers become anonymous slots
	for _, marker := range []string{"%@", "%d", "%.0f"} {
		url = strings.ReplaceAll(url, marker, "{}")
	}

	return url, true
}

func sortedKeys(doc map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
