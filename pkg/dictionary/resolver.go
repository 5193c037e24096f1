package dictionary

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Resolver supplies fallback orders. Both methods return the requested value
// first, followed by progressively more general entries.
type Resolver interface {
	Cultures(culture string) []string
	Scopes(scope string) []string
}

// CanonicalCulture normalizes a culture identifier to its BCP 47 form
// ("en_us" -> "en-US"). Identifiers that do not parse are returned trimmed.
func CanonicalCulture(culture string) string {
	culture = strings.TrimSpace(culture)
	if culture == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(culture, "_", "-"))
	if err != nil {
		return culture
	}
	return tag.String()
}

// LanguageResolver derives culture chains from CLDR parent locales
// (en-US -> en) and ends every chain with the default culture. Scope chains
// fall back to the default scope, then GlobalScope.
type LanguageResolver struct {
	defaultCulture string
	defaultScope   string
}

// NewLanguageResolver returns a resolver falling back to defaultCulture and
// defaultScope. An empty defaultScope means GlobalScope.
func NewLanguageResolver(defaultCulture, defaultScope string) *LanguageResolver {
	return &LanguageResolver{
		defaultCulture: CanonicalCulture(defaultCulture),
		defaultScope:   strings.TrimSpace(defaultScope),
	}
}

func (r *LanguageResolver) Cultures(culture string) []string {
	culture = CanonicalCulture(culture)
	chain := make([]string, 0, 4)
	chain = appendUnique(chain, culture)

	if tag, err := language.Parse(culture); err == nil {
		for p := tag.Parent(); p != language.Und; p = p.Parent() {
			chain = appendUnique(chain, p.String())
		}
	}

	return appendUnique(chain, r.defaultCulture)
}

func (r *LanguageResolver) Scopes(scope string) []string {
	return scopeChain(scope, r.defaultScope)
}

// StaticResolver serves explicitly registered fallback chains. Cultures and
// scopes without a registered chain resolve to themselves. Scope chains
// always end with the default scope, if one is set, and GlobalScope.
type StaticResolver struct {
	mu           sync.RWMutex
	cultures     map[string][]string
	scopes       map[string][]string
	defaultScope string
}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{
		cultures: make(map[string][]string),
		scopes:   make(map[string][]string),
	}
}

// SetCultures registers the fallback chain for a culture.
func (r *StaticResolver) SetCultures(culture string, fallbacks ...string) {
	culture = CanonicalCulture(culture)
	if culture == "" {
		return
	}
	chain := make([]string, 0, len(fallbacks))
	for _, fb := range fallbacks {
		fb = CanonicalCulture(fb)
		if fb != culture {
			chain = appendUnique(chain, fb)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cultures[culture] = chain
}

// SetDefaultScope sets the scope consulted before GlobalScope at the end of
// every scope chain.
func (r *StaticResolver) SetDefaultScope(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultScope = strings.TrimSpace(scope)
}

// SetScopes registers the fallback chain for a scope.
func (r *StaticResolver) SetScopes(scope string, fallbacks ...string) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return
	}
	chain := make([]string, 0, len(fallbacks))
	for _, fb := range fallbacks {
		if fb = strings.TrimSpace(fb); fb != scope {
			chain = appendUnique(chain, fb)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes[scope] = chain
}

func (r *StaticResolver) Cultures(culture string) []string {
	culture = CanonicalCulture(culture)

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := appendUnique(nil, culture)
	for _, c := range r.cultures[culture] {
		chain = appendUnique(chain, c)
	}
	return chain
}

func (r *StaticResolver) Scopes(scope string) []string {
	scope = strings.TrimSpace(scope)

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := appendUnique(nil, scope)
	for _, s := range r.scopes[scope] {
		chain = appendUnique(chain, s)
	}
	return appendUnique(appendUnique(chain, r.defaultScope), GlobalScope)
}

func scopeChain(scope, defaultScope string) []string {
	chain := appendUnique(nil, strings.TrimSpace(scope))
	return appendUnique(appendUnique(chain, defaultScope), GlobalScope)
}

func appendUnique(chain []string, v string) []string {
	if v == "" {
		return chain
	}
	for _, c := range chain {
		if c == v {
			return chain
		}
	}
	return append(chain, v)
}
