package suggest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsolatesLanguages(t *testing.T) {
	r, err := NewRegistry(WithCacheSize(16))
	require.NoError(t, err)

	ok, err := r.AddWord("en", "hello", 10)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = r.AddWord("FR ", "bonjour", 10)
	require.NoError(t, err)
	require.True(t, ok)

	en, err := r.Suggestions("", "h", 5)
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{Word: "hello", Frequency: 10}}, en.Suggestions)

	fr, err := r.Suggestions("fr", "h", 5)
	require.NoError(t, err)
	assert.Empty(t, fr.Suggestions)

	fr, err = r.Suggestions("fr", "bonjuor", 5)
	require.NoError(t, err)
	assert.Equal(t, "bonjour", fr.DidYouMean)

	assert.Equal(t, []string{"en", "fr"}, r.Languages())
}

func TestRegistryEngineIsStable(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	a, err := r.Engine("de")
	require.NoError(t, err)
	b, err := r.Engine("DE")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, DefaultOptions.CacheSize, a.Options().CacheSize)
}

func TestRegistryRejectsBadOptions(t *testing.T) {
	r, err := NewRegistry(WithDefaultLimit(-1))
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrInvalidOption))
}
