package dictionary

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/dmitrymomot/lexicon/pkg/logger"
)

// DefaultCulture is used when no default culture is configured.
const DefaultCulture = "en"

// Translator resolves keys through chains of dictionary nodes.
// Nodes are created from the catalog on first demand and kept in the registry.
// It is safe for concurrent use.
type Translator struct {
	catalog  Catalog
	registry *Registry
	resolver Resolver
	provider Provider
	logger   *slog.Logger

	defaultCulture string
	defaultScope   string
	resolution     ErrorResolution
	onError        ErrorCallback
	logMissing     bool
	pluralSuffix   string

	mergeCacheSize int
	merged         *lru[mergeKey, any]

	linked sync.Map // *Node -> *sync.Once
}

type mergeKey struct {
	kind    string
	scope   string
	culture string
}

// New creates a Translator reading documents from catalog.
func New(catalog Catalog, opts ...Option) (*Translator, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	t := &Translator{
		catalog:        catalog,
		provider:       NullProvider{},
		logger:         logger.Discard(),
		defaultCulture: DefaultCulture,
		defaultScope:   GlobalScope,
		resolution:     ReturnKey,
		pluralSuffix:   DefaultPluralSuffix,
		mergeCacheSize: 128,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.resolution != ReturnKey && t.resolution != ReturnNull {
		return nil, ErrUnknownResolution
	}
	if t.registry == nil {
		t.registry = NewRegistry()
	}
	if t.resolver == nil {
		t.resolver = NewLanguageResolver(t.defaultCulture, t.defaultScope)
	}
	if t.mergeCacheSize > 0 {
		t.merged = newLRU[mergeKey, any](t.mergeCacheSize)
	}

	return t, nil
}

// DefaultCulture returns the culture used for lookups without one.
func (t *Translator) DefaultCulture() string { return t.defaultCulture }

// DefaultScope returns the scope used for lookups without one.
func (t *Translator) DefaultScope() string { return t.defaultScope }

// Registry returns the node registry backing the translator.
func (t *Translator) Registry() *Registry { return t.registry }

// Translate looks key up in the translations of the chain for (scope, culture).
// Empty scope or culture select the defaults. When nothing matches, the
// configured ErrorResolution decides the result: the key echoed with
// ResourceNotFound set, or nil.
func (t *Translator) Translate(ctx context.Context, key, scope, culture string) *LocalizedString {
	scope, culture = t.normalize(scope, culture)

	if v, ok := find(t.chain(ctx, scope, culture), key, (*Node).Translations); ok {
		return &v
	}
	if v, ok := t.fromProvider(ctx, KindTranslations, key, scope, culture); ok {
		return &v
	}
	return t.miss(ctx, KindTranslations, key, scope, culture)
}

// TranslateFormat translates key and substitutes positional {N} placeholders with params.
func (t *Translator) TranslateFormat(ctx context.Context, key string, params []string, scope, culture string) *LocalizedString {
	res := t.Translate(ctx, key, scope, culture)
	if res == nil {
		return nil
	}
	res.Value = Format(res.Value, params...)
	return res
}

// TranslatePluralization resolves the pluralized entry for key and returns
// the text of the first interval containing quantity, or the entry's default
// text when no interval does.
func (t *Translator) TranslatePluralization(ctx context.Context, key string, quantity int, scope, culture string) *LocalizedString {
	scope, culture = t.normalize(scope, culture)

	if p, ok := find(t.chain(ctx, scope, culture), key, (*Node).Pluralized); ok {
		v := p.Select(quantity)
		return &v
	}
	if p, ok := t.pluralFromProvider(ctx, key, scope, culture); ok {
		v := p.Select(quantity)
		return &v
	}
	return t.miss(ctx, KindPluralized, key, scope, culture)
}

// TranslateConstant looks key up in the constants of the chain.
func (t *Translator) TranslateConstant(ctx context.Context, key, scope, culture string) *LocalizedString {
	scope, culture = t.normalize(scope, culture)

	if v, ok := find(t.chain(ctx, scope, culture), key, (*Node).Constants); ok {
		return &v
	}
	if v, ok := t.fromProvider(ctx, KindConstants, key, scope, culture); ok {
		return &v
	}
	return t.miss(ctx, KindConstants, key, scope, culture)
}

// GetDictionary returns the merged translations of the chain. Entries of more
// specific dictionaries shadow entries of their ancestors. The returned map
// belongs to the caller.
func (t *Translator) GetDictionary(ctx context.Context, scope, culture string) map[string]LocalizedString {
	scope, culture = t.normalize(scope, culture)
	files := mergedView(t, ctx, KindTranslations, scope, culture, (*Node).Translations, cloneLocalized)
	return t.withProvider(ctx, KindTranslations, scope, culture, files, t.provider.Translations)
}

// GetConstantsDictionary returns the merged constants of the chain.
func (t *Translator) GetConstantsDictionary(ctx context.Context, scope, culture string) map[string]LocalizedString {
	scope, culture = t.normalize(scope, culture)
	files := mergedView(t, ctx, KindConstants, scope, culture, (*Node).Constants, cloneLocalized)
	return t.withProvider(ctx, KindConstants, scope, culture, files, t.provider.Constants)
}

// GetPluralizedDictionary returns the merged pluralized entries of the chain.
func (t *Translator) GetPluralizedDictionary(ctx context.Context, scope, culture string) map[string]PluralizedString {
	scope, culture = t.normalize(scope, culture)
	files := mergedView(t, ctx, KindPluralized, scope, culture, (*Node).Pluralized, clonePluralized)

	if _, ok := t.provider.(NullProvider); ok {
		return files
	}
	out := make(map[string]PluralizedString, len(files))
	scopes, cultures := t.resolver.Scopes(scope), t.resolver.Cultures(culture)
	for i := len(scopes) - 1; i >= 0; i-- {
		for j := len(cultures) - 1; j >= 0; j-- {
			table, err := t.provider.Pluralized(ctx, scopes[i], cultures[j])
			if err != nil {
				t.providerFailed(ctx, KindPluralized, scopes[i], cultures[j], err)
				continue
			}
			maps.Copy(out, clonePluralized(table))
		}
	}
	maps.Copy(out, files)
	return out
}

// Chain returns the nodes consulted for (scope, culture), most specific first.
func (t *Translator) Chain(ctx context.Context, scope, culture string) []*Node {
	scope, culture = t.normalize(scope, culture)
	return t.chain(ctx, scope, culture)
}

func (t *Translator) normalize(scope, culture string) (string, string) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = t.defaultScope
	}
	culture = CanonicalCulture(culture)
	if culture == "" {
		culture = t.defaultCulture
	}
	return scope, culture
}

// chain walks each scope of the scope fallback order. Within a scope every
// culture the resolver lists for the request is visited in order, following
// parent links from each; nodes already on the chain are not repeated.
func (t *Translator) chain(ctx context.Context, scope, culture string) []*Node {
	var out []*Node
	seen := make(map[*Node]struct{})
	cultures := t.resolver.Cultures(culture)

	for _, s := range t.resolver.Scopes(scope) {
		for _, c := range cultures {
			for n := t.node(ctx, c, s); n != nil; n = n.Parent() {
				if _, ok := seen[n]; ok {
					break
				}
				seen[n] = struct{}{}
				t.link(ctx, n)
				out = append(out, n)
			}
		}
	}
	return out
}

// node returns the loaded node for (culture, scope), or nil when the catalog
// has no document for it or the document failed to load.
func (t *Translator) node(ctx context.Context, culture, scope string) *Node {
	if n, ok := t.registry.Lookup(culture, scope); ok {
		return n
	}
	src, ok := t.catalog.Lookup(culture, scope)
	if !ok {
		return nil
	}

	n, err := t.registry.Register(culture, scope, func() (*Node, error) {
		return NewNode(culture, scope,
			WithNodeLogger(t.logger),
			WithNodePluralSuffix(t.pluralSuffix),
		).Load(src)
	})
	if err != nil {
		t.logger.DebugContext(ctx, "dictionary unavailable, skipping",
			logger.Culture(culture),
			logger.Scope(scope),
			logger.Error(err),
		)
		return nil
	}
	return n
}

// link sets the parent of n once: the next culture in n's own fallback order
// that has a document in the same scope. Deriving the parent from the node
// keeps links independent of the culture a caller asked for.
func (t *Translator) link(ctx context.Context, n *Node) {
	v, _ := t.linked.LoadOrStore(n, new(sync.Once))
	v.(*sync.Once).Do(func() {
		if n.Parent() != nil {
			return
		}
		cultures := t.resolver.Cultures(n.culture)
		for i, c := range cultures {
			if c != n.culture {
				continue
			}
			for _, next := range cultures[i+1:] {
				parent := t.node(ctx, next, n.scope)
				if parent == nil {
					continue
				}
				if !n.SetParent(parent) {
					t.logger.DebugContext(ctx, "dictionary parent already has a child",
						logger.Culture(n.culture),
						logger.Scope(n.scope),
						slog.String("parent_culture", parent.culture),
					)
				}
				return
			}
			return
		}
	})
}

func find[V any](nodes []*Node, key string, table func(*Node) map[string]V) (V, bool) {
	for _, n := range nodes {
		if v, ok := table(n)[key]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// mergedView merges the tables of the chain, most general first, and
// memoizes the result. Node tables never change once built, so cached views
// stay valid for the registry lifetime. Every caller gets its own deep copy.
func mergedView[V any](
	t *Translator,
	ctx context.Context,
	kind, scope, culture string,
	table func(*Node) map[string]V,
	clone func(map[string]V) map[string]V,
) map[string]V {
	key := mergeKey{kind: kind, scope: scope, culture: culture}
	if t.merged != nil {
		if cached, ok := t.merged.get(key); ok {
			return clone(cached.(map[string]V))
		}
	}

	nodes := t.chain(ctx, scope, culture)
	out := make(map[string]V)
	for i := len(nodes) - 1; i >= 0; i-- {
		maps.Copy(out, table(nodes[i]))
	}

	if t.merged != nil {
		t.merged.put(key, out)
	}
	return clone(out)
}

func (t *Translator) withProvider(
	ctx context.Context,
	kind, scope, culture string,
	files map[string]LocalizedString,
	fetch func(context.Context, string, string) (map[string]LocalizedString, error),
) map[string]LocalizedString {
	if _, ok := t.provider.(NullProvider); ok {
		return files
	}

	out := make(map[string]LocalizedString, len(files))
	scopes, cultures := t.resolver.Scopes(scope), t.resolver.Cultures(culture)
	for i := len(scopes) - 1; i >= 0; i-- {
		for j := len(cultures) - 1; j >= 0; j-- {
			table, err := fetch(ctx, scopes[i], cultures[j])
			if err != nil {
				t.providerFailed(ctx, kind, scopes[i], cultures[j], err)
				continue
			}
			maps.Copy(out, table)
		}
	}
	maps.Copy(out, files)
	return out
}

func (t *Translator) fromProvider(ctx context.Context, kind, key, scope, culture string) (LocalizedString, bool) {
	if _, ok := t.provider.(NullProvider); ok {
		return LocalizedString{}, false
	}

	fetch := t.provider.Translations
	if kind == KindConstants {
		fetch = t.provider.Constants
	}
	for _, s := range t.resolver.Scopes(scope) {
		for _, c := range t.resolver.Cultures(culture) {
			table, err := fetch(ctx, s, c)
			if err != nil {
				t.providerFailed(ctx, kind, s, c, err)
				continue
			}
			if v, ok := table[key]; ok {
				return v, true
			}
		}
	}
	return LocalizedString{}, false
}

func (t *Translator) pluralFromProvider(ctx context.Context, key, scope, culture string) (PluralizedString, bool) {
	if _, ok := t.provider.(NullProvider); ok {
		return PluralizedString{}, false
	}

	for _, s := range t.resolver.Scopes(scope) {
		for _, c := range t.resolver.Cultures(culture) {
			table, err := t.provider.Pluralized(ctx, s, c)
			if err != nil {
				t.providerFailed(ctx, KindPluralized, s, c, err)
				continue
			}
			if v, ok := table[key]; ok {
				return v, true
			}
		}
	}
	return PluralizedString{}, false
}

func (t *Translator) providerFailed(ctx context.Context, kind, scope, culture string, err error) {
	t.logger.WarnContext(ctx, "dictionary provider failed",
		logger.Kind(kind),
		logger.Scope(scope),
		logger.Culture(culture),
		logger.Error(err),
	)
}

func (t *Translator) miss(ctx context.Context, kind, key, scope, culture string) *LocalizedString {
	if t.logMissing {
		t.logger.WarnContext(ctx, "translation not found",
			logger.Kind(kind),
			logger.Key(key),
			logger.Scope(scope),
			logger.Culture(culture),
		)
	}

	if t.onError != nil {
		t.onError(ctx, LookupError{
			Key:     key,
			Scope:   scope,
			Culture: culture,
			Message: "key not found in " + kind + " of any dictionary in the fallback chain",
			Context: map[string]any{
				"kind":       kind,
				"resolution": t.resolution.String(),
			},
		})
	}

	if t.resolution == ReturnNull {
		return nil
	}
	return &LocalizedString{Name: key, Value: key, ResourceNotFound: true}
}
