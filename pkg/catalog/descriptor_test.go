package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitworks/switchboard/pkg/catalog"
	"github.com/unitworks/switchboard/pkg/errors"
)

func TestNewDescriptor(t *testing.T) {
	t.Run("declared params come first", func(t *testing.T) {
		tmpl := catalog.MustParseTemplate("https://x/{type}/{member}")
		d := catalog.NewDescriptor("photo-url", tmpl, []string{"type", "member"})

		assert.Equal(t, "photo-url", d.Name)
		assert.Equal(t, []string{"type", "member"}, d.Params)
	})

	t.Run("undeclared placeholders are appended in appearance order", func(t *testing.T) {
		tmpl := catalog.MustParseTemplate("https://x/{type}/{member}/{}")
		d := catalog.NewDescriptor("photo-url", tmpl, []string{"member"})

		assert.Equal(t, []string{"member", "type", "#0"}, d.Params)
	})

	t.Run("legacy descriptors derive params from the template", func(t *testing.T) {
		tmpl := catalog.MustParseTemplate("https://x/unit/{unit}/members/{}")
		d := catalog.NewDescriptor("unit-members", tmpl, nil)

		assert.Equal(t, []string{"unit", "#0"}, d.Params)
	})

	t.Run("duplicate and empty declared names are dropped", func(t *testing.T) {
		tmpl := catalog.MustParseTemplate("https://x/{a}")
		d := catalog.NewDescriptor("thing", tmpl, []string{"a", "", "a"})

		assert.Equal(t, []string{"a"}, d.Params)
	})
}

func TestDescriptorRequires(t *testing.T) {
	tmpl := catalog.MustParseTemplate("https://x/{type}/{member}")
	d := catalog.NewDescriptor("photo-url", tmpl, []string{"type", "member"})

	requires := d.Requires()
	assert.Equal(t, []string{"type", "member"}, requires)

	// Mutating the returned slice must not touch the descriptor.
	requires[0] = "mutated"
	assert.Equal(t, []string{"type", "member"}, d.Params)
}

func TestDescriptorResolve(t *testing.T) {
	photoURL := catalog.NewDescriptor("photo-url",
		catalog.MustParseTemplate("https://x/{type}/{member}"),
		[]string{"type", "member"})

	t.Run("named and positional together", func(t *testing.T) {
		url, err := photoURL.Resolve([]any{"individual"}, map[string]any{"member": 42}, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://x/individual/42", url)
	})

	t.Run("all positional", func(t *testing.T) {
		url, err := photoURL.Resolve([]any{"household", 7}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://x/household/7", url)
	})

	t.Run("all named", func(t *testing.T) {
		url, err := photoURL.Resolve(nil, map[string]any{"type": "individual", "member": "0042"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://x/individual/0042", url)
	})

	t.Run("surplus positional args are ignored", func(t *testing.T) {
		url, err := photoURL.Resolve([]any{"individual", 42, "extra", "more"}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://x/individual/42", url)
	})

	t.Run("named wins over positional for the same slot", func(t *testing.T) {
		url, err := photoURL.Resolve([]any{"positional"}, map[string]any{"type": "named", "member": 1}, nil)
		require.NoError(t, err)
		// type is bound by name; the positional arg has no free slot left
		// besides member which is also bound, so it is ignored.
		assert.Equal(t, "https://x/named/1", url)
	})

	t.Run("missing slots fail with the endpoint name", func(t *testing.T) {
		_, err := photoURL.Resolve([]any{"individual"}, nil, nil)
		require.Error(t, err)

		var missing *errors.MissingParameterError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "photo-url", missing.Endpoint)
		assert.Equal(t, []string{"member"}, missing.Missing)
		assert.Contains(t, err.Error(), "needs arguments")
	})

	t.Run("no partial URL on failure", func(t *testing.T) {
		url, err := photoURL.Resolve(nil, nil, nil)
		require.Error(t, err)
		assert.Empty(t, url)
	})
}

func TestDescriptorResolveFallback(t *testing.T) {
	unitMembers := catalog.NewDescriptor("unit-members",
		catalog.MustParseTemplate("https://x/unit/{unit}/members"),
		nil)

	t.Run("fallback fills an unbound unit slot", func(t *testing.T) {
		url, err := unitMembers.Resolve(nil, nil, map[string]string{"unit": "56030"})
		require.NoError(t, err)
		assert.Equal(t, "https://x/unit/56030/members", url)
	})

	t.Run("explicit named value beats fallback", func(t *testing.T) {
		url, err := unitMembers.Resolve(nil, map[string]any{"unit": 999}, map[string]string{"unit": "56030"})
		require.NoError(t, err)
		assert.Equal(t, "https://x/unit/999/members", url)
	})

	t.Run("explicit positional value beats fallback", func(t *testing.T) {
		url, err := unitMembers.Resolve([]any{1234}, nil, map[string]string{"unit": "56030"})
		require.NoError(t, err)
		assert.Equal(t, "https://x/unit/1234/members", url)
	})

	t.Run("fallback never steals a positional slot", func(t *testing.T) {
		// The anonymous slot must receive the positional arg even though
		// the unit fallback is applied to the unit slot.
		d := catalog.NewDescriptor("unit-events",
			catalog.MustParseTemplate("https://x/unit/{unit}/events/{}"),
			nil)

		url, err := d.Resolve([]any{"2026-08"}, nil, map[string]string{"unit": "56030"})
		require.NoError(t, err)
		assert.Equal(t, "https://x/unit/56030/events/2026-08", url)
	})

	t.Run("without fallback the unit slot is missing", func(t *testing.T) {
		_, err := unitMembers.Resolve(nil, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrMissingParameter)
	})
}

func TestDescriptorValueFormatting(t *testing.T) {
	d := catalog.NewDescriptor("between",
		catalog.MustParseTemplate("https://x/range/{}/{}"),
		nil)

	url, err := d.Resolve([]any{int64(1755993600000), 1.5}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://x/range/1755993600000/1.5", url)
}
