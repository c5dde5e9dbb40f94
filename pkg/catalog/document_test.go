package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitworks/switchboard/pkg/catalog"
	"github.com/unitworks/switchboard/pkg/errors"
)

func TestDecode(t *testing.T) {
	t.Run("structured entries", func(t *testing.T) {
		doc := `{
			"photo-url": {"template": "https://x/{type}/{member}", "params": ["type", "member"]},
			"auth-url": {"template": "https://signin.example.org/login.html"}
		}`

		c, err := catalog.Decode([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())

		d, ok := c.Get("photo-url")
		require.True(t, ok)
		assert.Equal(t, []string{"type", "member"}, d.Params)
		assert.Equal(t, "https://x/{type}/{member}", d.URL())

		d, ok = c.Get("auth-url")
		require.True(t, ok)
		assert.Empty(t, d.Params)
	})

	t.Run("legacy entries are normalized", func(t *testing.T) {
		doc := `{
			"unit-membership": "https://example.org/directory/services/unit/%@/membership",
			"photo-url": "https://example.org/directory/services/photo/url/%@/%@"
		}`

		c, err := catalog.Decode([]byte(doc))
		require.NoError(t, err)

		d, ok := c.Get("unit-membership")
		require.True(t, ok)
		assert.Equal(t, "https://example.org/directory/services/unit/{unit}/membership", d.URL())

		d, ok = c.Get("photo-url")
		require.True(t, ok)
		assert.Equal(t, "https://example.org/directory/services/photo/url/{member}/{}", d.URL())
		assert.Equal(t, []string{"member", "#0"}, d.Params)
	})

	t.Run("non-http and non-entry values are skipped", func(t *testing.T) {
		doc := `{
			"schema-version": "2",
			"flag": true,
			"count": 7,
			"list": ["a", "b"],
			"nothing": null,
			"real": "https://example.org/services/real"
		}`

		c, err := catalog.Decode([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, []string{"real"}, c.Names())
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := catalog.Decode([]byte(`{"broken":`))
		require.Error(t, err)

		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("structured entry without template", func(t *testing.T) {
		_, err := catalog.Decode([]byte(`{"bad": {"params": ["a"]}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
	})

	t.Run("entry with malformed template", func(t *testing.T) {
		_, err := catalog.Decode([]byte(`{"bad": {"template": "https://x/{oops"}}`))
		require.Error(t, err)

		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, err.Error(), "bad")
	})
}

func TestLegacyNormalization(t *testing.T) {
	tests := []struct {
		name string
		key  string
		url  string
		want string
	}{
		{
			name: "unit-path marker",
			key:  "unit-membership",
			url:  "https://x/unit/%@/members",
			want: "https://x/unit/{unit}/members",
		},
		{
			name: "unit-query marker replaces every assignment",
			key:  "statistics",
			url:  "https://x/report?unitNumber=%@&lang=%@",
			want: "https://x/report?unitNumber={unit}&lang={unit}",
		},
		{
			name: "unit-prefixed name with trailing marker",
			key:  "unit-leadership",
			url:  "https://x/leadership/%@",
			want: "https://x/leadership/{unit}",
		},
		{
			name: "membership-record rewrites every marker",
			key:  "membership-record",
			url:  "https://x/membership-record/%@/sub/%@",
			want: "https://x/membership-record/{member}/sub/{member}",
		},
		{
			name: "photo-url marker",
			key:  "photo-url",
			url:  "https://x/photo/url/%@/%@",
			want: "https://x/photo/url/{member}/{}",
		},
		{
			name: "misc markers become anonymous",
			key:  "cal2x-events",
			url:  "https://x/events?start=%d&end=%.0f&q=%@",
			want: "https://x/events?start={}&end={}&q={}",
		},
		{
			name: "no markers",
			key:  "current-user-id",
			url:  "https://x/current-user-id",
			want: "https://x/current-user-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{` + quote(tt.key) + `: ` + quote(tt.url) + `}`
			c, err := catalog.Decode([]byte(doc))
			require.NoError(t, err)

			d, ok := c.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.URL())
		})
	}

	t.Run("trailing marker without unit- prefix stays anonymous", func(t *testing.T) {
		c, err := catalog.Decode([]byte(`{"leadership": "https://x/leadership/%@"}`))
		require.NoError(t, err)

		d, ok := c.Get("leadership")
		require.True(t, ok)
		assert.Equal(t, "https://x/leadership/{}", d.URL())
	})
}

func quote(s string) string {
	return `"` + s + `"`
}

func TestDecodeYAML(t *testing.T) {
	doc := `
photo-url:
  template: https://x/{type}/{member}
  params:
    - type
    - member
auth-url: https://signin.example.org/login.html
junk: 17
`

	c, err := catalog.DecodeYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	d, ok := c.Get("photo-url")
	require.True(t, ok)
	assert.Equal(t, []string{"type", "member"}, d.Params)

	_, ok = c.Get("junk")
	assert.False(t, ok)

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := catalog.DecodeYAML([]byte("\t: bad"))
		require.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("json snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "endpoints.json")
		doc := `{"auth-url": "https://signin.example.org/login.html"}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		c, err := catalog.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, path, c.Source())
		assert.False(t, c.FetchedAt().IsZero())
	})

	t.Run("yaml snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "endpoints.yaml")
		doc := "auth-url: https://signin.example.org/login.html\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		c, err := catalog.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.True(t, errors.IsCatalogUnavailable(err))
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "endpoints.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := catalog.LoadFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsCatalogUnavailable(err))

		var catErr *errors.CatalogError
		require.ErrorAs(t, err, &catErr)
		assert.Equal(t, path, catErr.Source)
	})
}
