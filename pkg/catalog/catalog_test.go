package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitworks/switchboard/pkg/catalog"
)

func descriptor(t *testing.T, name, tmpl string) *catalog.Descriptor {
	t.Helper()
	parsed, err := catalog.ParseTemplate(tmpl)
	require.NoError(t, err)
	return catalog.NewDescriptor(name, parsed, nil)
}

func TestCatalogCollection(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		c := catalog.New()
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Names())

		_, ok := c.Get("anything")
		assert.False(t, ok)
	})

	t.Run("with descriptors option", func(t *testing.T) {
		seed := map[string]*catalog.Descriptor{
			"a": descriptor(t, "a", "https://x/a"),
			"b": descriptor(t, "b", "https://x/b"),
		}
		c := catalog.New(catalog.WithDescriptors(seed), catalog.WithSource("seeded"))

		assert.Equal(t, 2, c.Len())
		assert.Equal(t, "seeded", c.Source())

		// The option copies the map; later mutation must not leak in.
		seed["c"] = descriptor(t, "c", "https://x/c")
		assert.Equal(t, 2, c.Len())
	})

	t.Run("set and get", func(t *testing.T) {
		c := catalog.New()
		require.NoError(t, c.Set("auth-url", descriptor(t, "auth-url", "https://x/login")))

		d, ok := c.Get("auth-url")
		require.True(t, ok)
		assert.Equal(t, "auth-url", d.Name)

		assert.Error(t, c.Set("nil", nil))
	})

	t.Run("add rejects duplicates", func(t *testing.T) {
		c := catalog.New()
		d := descriptor(t, "auth-url", "https://x/login")

		require.NoError(t, c.Add(d))
		assert.Error(t, c.Add(d))
		assert.Error(t, c.Add(nil))
	})

	t.Run("names are sorted", func(t *testing.T) {
		c := catalog.New()
		for _, name := range []string{"zulu", "alpha", "mike"} {
			require.NoError(t, c.Set(name, descriptor(t, name, "https://x/"+name)))
		}

		assert.Equal(t, []string{"alpha", "mike", "zulu"}, c.Names())
	})

	t.Run("list is sorted by name", func(t *testing.T) {
		c := catalog.New()
		require.NoError(t, c.Set("b", descriptor(t, "b", "https://x/b")))
		require.NoError(t, c.Set("a", descriptor(t, "a", "https://x/a")))

		list := c.List()
		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].Name)
		assert.Equal(t, "b", list[1].Name)
	})

	t.Run("foreach stops early", func(t *testing.T) {
		c := catalog.New()
		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, c.Set(name, descriptor(t, name, "https://x/"+name)))
		}

		count := 0
		c.ForEach(func(string, *catalog.Descriptor) bool {
			count++
			return count < 2
		})
		assert.Equal(t, 2, count)
	})

	t.Run("map returns a copy", func(t *testing.T) {
		c := catalog.New()
		require.NoError(t, c.Set("a", descriptor(t, "a", "https://x/a")))

		m := c.Map()
		delete(m, "a")
		assert.Equal(t, 1, c.Len())
	})

	t.Run("provenance", func(t *testing.T) {
		c := catalog.New()
		assert.True(t, c.FetchedAt().IsZero())

		c.MarkFetched("https://tools.unitworks.io/config/v2/endpoints.json")
		assert.Equal(t, "https://tools.unitworks.io/config/v2/endpoints.json", c.Source())
		assert.False(t, c.FetchedAt().IsZero())
	})
}
