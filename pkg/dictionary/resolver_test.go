package dictionary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
)

func TestCanonicalCulture(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"en-US":   "en-US",
		"en-us":   "en-US",
		"en_US":   "en-US",
		" EN ":    "en",
		"de-at":   "de-AT",
		"":        "",
		"   ":     "",
		"sr-latn": "sr-Latn",
	}
	for in, want := range tests {
		assert.Equal(t, want, dictionary.CanonicalCulture(in), "input %q", in)
	}
}

func TestLanguageResolver(t *testing.T) {
	t.Parallel()

	r := dictionary.NewLanguageResolver("en", "")

	t.Run("region falls back to base then default", func(t *testing.T) {
		assert.Equal(t, []string{"de-AT", "de", "en"}, r.Cultures("de-AT"))
	})
	t.Run("default is not repeated", func(t *testing.T) {
		assert.Equal(t, []string{"en-US", "en"}, r.Cultures("en-us"))
		assert.Equal(t, []string{"en"}, r.Cultures("en"))
	})
	t.Run("empty culture yields default", func(t *testing.T) {
		assert.Equal(t, []string{"en"}, r.Cultures(""))
	})
	t.Run("scopes end at global", func(t *testing.T) {
		assert.Equal(t, []string{"checkout", dictionary.GlobalScope}, r.Scopes("checkout"))
		assert.Equal(t, []string{dictionary.GlobalScope}, r.Scopes(dictionary.GlobalScope))
		assert.Equal(t, []string{dictionary.GlobalScope}, r.Scopes(""))
	})
	t.Run("scopes fall back to default scope before global", func(t *testing.T) {
		app := dictionary.NewLanguageResolver("en", "app")
		assert.Equal(t, []string{"checkout", "app", dictionary.GlobalScope}, app.Scopes("checkout"))
		assert.Equal(t, []string{"app", dictionary.GlobalScope}, app.Scopes("app"))
	})
}

func TestStaticResolver(t *testing.T) {
	t.Parallel()

	r := dictionary.NewStaticResolver()
	r.SetCultures("de-AT", "de", "de-AT", "en")
	r.SetScopes("checkout", "billing", "checkout")

	assert.Equal(t, []string{"de-AT", "de", "en"}, r.Cultures("de-at"))
	assert.Equal(t, []string{"fr"}, r.Cultures("fr"))
	assert.Equal(t, []string{"checkout", "billing", dictionary.GlobalScope}, r.Scopes("checkout"))
	assert.Equal(t, []string{"billing", dictionary.GlobalScope}, r.Scopes("billing"))

	r.SetCultures("", "en")
	r.SetScopes("", "billing")
	assert.Equal(t, []string{dictionary.GlobalScope}, r.Scopes(""))

	r.SetDefaultScope("app")
	assert.Equal(t, []string{"checkout", "billing", "app", dictionary.GlobalScope}, r.Scopes("checkout"))
}
