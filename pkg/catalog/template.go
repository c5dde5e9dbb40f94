package catalog

import (
	"strconv"
	"strings"

	"github.com/unitworks/switchboard/pkg/errors"
)

// Template is the parsed form of an endpoint URL template. Placeholders
// follow the service's format-string subset: `{name}` is a named slot,
// `{}` an anonymous one, and `{{` / `}}` are literal braces. Anonymous
// slots are keyed `#0`, `#1`, ... in appearance order.
type Template struct {
	raw  string
	segs []segment
	keys []string // unique placeholder keys, appearance order
}

// segment is a literal run of text or a single placeholder key.
type segment struct {
	text string
	key  string
}

// AnonymousKey returns the internal key of the i-th anonymous placeholder.
func AnonymousKey(i int) string {
	return "#" + strconv.Itoa(i)
}

// IsAnonymousKey reports whether key names an anonymous placeholder.
func IsAnonymousKey(key string) bool {
	return strings.HasPrefix(key, "#")
}

// ParseTemplate parses a URL template into its literal and placeholder
// segments. Unbalanced or malformed braces are a ParseError.
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}
	var lit strings.Builder
	seen := make(map[string]bool)
	anon := 0

	flush := func() {
		if lit.Len() > 0 {
			t.segs = append(t.segs, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		switch raw[i] {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, errors.WrapParse("template", raw, errors.New("unbalanced '{'"))
			}
			name := raw[i+1 : i+1+end]
			if !validPlaceholderName(name) {
				return nil, errors.WrapParse("template", raw,
					errors.New("malformed placeholder {"+name+"}"))
			}
			key := name
			if key == "" {
				key = AnonymousKey(anon)
				anon++
			}
			flush()
			t.segs = append(t.segs, segment{key: key})
			if !seen[key] {
				seen[key] = true
				t.keys = append(t.keys, key)
			}
			i += end + 2
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, errors.WrapParse("template", raw, errors.New("unbalanced '}'"))
		default:
			lit.WriteByte(raw[i])
			i++
		}
	}
	flush()

	return t, nil
}

// MustParseTemplate is ParseTemplate that panics on error, for tests and
// fixed templates.
func MustParseTemplate(raw string) *Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// validPlaceholderName accepts the simple names the catalog uses. An
// empty name marks an anonymous placeholder.
func validPlaceholderName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// Raw returns the original template text.
func (t *Template) Raw() string {
	return t.raw
}

// String implements fmt.Stringer.
func (t *Template) String() string {
	return t.raw
}

// Keys returns the unique placeholder keys in appearance order.
func (t *Template) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Missing returns the placeholder keys not covered by values, in
// appearance order.
func (t *Template) Missing(values map[string]string) []string {
	var missing []string
	for _, key := range t.keys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Render substitutes values into the template. Every placeholder must be
// bound; a rendered URL never contains placeholder text.
func (t *Template) Render(values map[string]string) (string, error) {
	if missing := t.Missing(values); len(missing) > 0 {
		return "", &errors.MissingParameterError{Missing: missing}
	}

	var b strings.Builder
	b.Grow(len(t.raw))
	for _, seg := range t.segs {
		if seg.key == "" {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(values[seg.key])
	}
	return b.String(), nil
}
