package dictionary

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/lexicon/pkg/logger"
)

// Table kinds, used in logs and merged views.
const (
	KindTranslations = "translations"
	KindPluralized   = "pluralized"
	KindConstants    = "constants"
)

// linkMu serializes parent linking so the cycle check and the link happen atomically.
var linkMu sync.Mutex

// Node wraps one culture+scope dictionary. Tables are built from the parsed
// document on first access and shared read-only afterwards: callers must not
// modify the returned maps.
type Node struct {
	culture      string
	scope        string
	pluralSuffix string
	logger       *slog.Logger

	loadMu sync.Mutex
	doc    atomic.Pointer[loadedDocument]

	translations table[LocalizedString]
	pluralized   table[PluralizedString]
	constants    table[LocalizedString]

	parent atomic.Pointer[Node]
	child  atomic.Pointer[nodeKey]

	builds atomic.Int64
}

type loadedDocument struct {
	base   *Document
	plural *PluralDocument
}

// NodeOption configures a Node.
type NodeOption func(*Node)

// WithNodeLogger sets the logger receiving load errors and access warnings.
func WithNodeLogger(l *slog.Logger) NodeOption {
	return func(n *Node) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithNodePluralSuffix sets the suffix used to locate the pluralized companion.
func WithNodePluralSuffix(suffix string) NodeOption {
	return func(n *Node) {
		if suffix != "" {
			n.pluralSuffix = suffix
		}
	}
}

// NewNode returns an unloaded node for (culture, scope). An empty scope means GlobalScope.
func NewNode(culture, scope string, opts ...NodeOption) *Node {
	if scope == "" {
		scope = GlobalScope
	}
	n := &Node{
		culture:      CanonicalCulture(culture),
		scope:        scope,
		pluralSuffix: DefaultPluralSuffix,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) Culture() string { return n.culture }
func (n *Node) Scope() string   { return n.scope }

// Loaded reports whether a document has been parsed into the node.
func (n *Node) Loaded() bool { return n.doc.Load() != nil }

// Source returns the name of the loaded document.
func (n *Node) Source() string {
	d := n.doc.Load()
	if d == nil {
		n.warnNotLoaded("source")
		return ""
	}
	return d.base.Source
}

// Load reads and parses src along with its pluralized companion, if any.
// The stream is closed on every path. Loading an already loaded node logs a
// warning and leaves it unchanged.
func (n *Node) Load(src Source) (*Node, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	n.loadMu.Lock()
	defer n.loadMu.Unlock()

	if d := n.doc.Load(); d != nil {
		n.logger.Warn("dictionary already loaded, ignoring load",
			logger.Culture(n.culture),
			logger.Scope(n.scope),
			logger.Source(d.base.Source),
			slog.String("ignored_source", src.Name()),
		)
		return n, nil
	}

	loaded, err := n.parse(src)
	if err != nil {
		n.logger.Error("failed to load dictionary",
			logger.Culture(n.culture),
			logger.Scope(n.scope),
			logger.Source(src.Name()),
			logger.Error(err),
		)
		return nil, err
	}

	for _, key := range loaded.base.Skipped {
		n.logger.Warn("skipping non-text dictionary value",
			logger.Culture(n.culture),
			logger.Scope(n.scope),
			logger.Source(src.Name()),
			logger.Key(key),
		)
	}

	n.doc.Store(loaded)
	return n, nil
}

func (n *Node) parse(src Source) (*loadedDocument, error) {
	doc, plural, err := ReadDocument(src, n.pluralSuffix)
	if err != nil {
		return nil, err
	}
	if doc.Culture != n.culture || doc.Scope != n.scope {
		return nil, &DictionaryLoadError{
			Source: src.Name(),
			Reason: "document declares " + doc.Scope + "/" + doc.Culture + ", expected " + n.scope + "/" + n.culture,
		}
	}
	return &loadedDocument{base: doc, plural: plural}, nil
}

// Translations returns the translations table, building it on first call.
func (n *Node) Translations() map[string]LocalizedString {
	return n.translations.get(n, KindTranslations, func(d *loadedDocument) map[string]LocalizedString {
		return textTable(d.base.Dictionary)
	})
}

// Constants returns the constants table, building it on first call.
func (n *Node) Constants() map[string]LocalizedString {
	return n.constants.get(n, KindConstants, func(d *loadedDocument) map[string]LocalizedString {
		return textTable(d.base.Constants)
	})
}

// Pluralized returns the pluralized table, building it on first call.
func (n *Node) Pluralized() map[string]PluralizedString {
	return n.pluralized.get(n, KindPluralized, func(d *loadedDocument) map[string]PluralizedString {
		if d.plural == nil {
			return map[string]PluralizedString{}
		}
		out := make(map[string]PluralizedString, len(d.plural.Entries))
		for key, entry := range d.plural.Entries {
			ps := PluralizedString{
				Default:  LocalizedString{Name: key, Value: entry.Default},
				Variants: make([]PluralVariant, 0, len(entry.Variants)),
			}
			for _, v := range entry.Variants {
				ps.Variants = append(ps.Variants, PluralVariant{
					Interval: v.Interval,
					Value:    LocalizedString{Name: key, Value: v.Text},
				})
			}
			out[key] = ps
		}
		return out
	})
}

func textTable(src map[string]string) map[string]LocalizedString {
	out := make(map[string]LocalizedString, len(src))
	for key, value := range src {
		out[key] = LocalizedString{Name: key, Value: value}
	}
	return out
}

// Parent returns the fallback node, or nil at the end of a chain.
func (n *Node) Parent() *Node { return n.parent.Load() }

// Child returns the culture and scope of the node registered as this node's child.
func (n *Node) Child() (culture, scope string, ok bool) {
	k := n.child.Load()
	if k == nil {
		return "", "", false
	}
	return k.culture, k.scope, true
}

// SetParent links parent as the fallback of n. It returns false without
// linking when parent is nil, is n itself, or already falls back to n.
// Otherwise the link is made and n claims the parent's single child slot;
// false is returned if the slot already belongs to a different node.
func (n *Node) SetParent(parent *Node) bool {
	if parent == nil {
		return false
	}

	linkMu.Lock()
	defer linkMu.Unlock()

	for p := parent; p != nil; p = p.Parent() {
		if p == n || p.Equal(n) {
			return false
		}
	}

	n.parent.Store(parent)

	key := n.key()
	if parent.child.CompareAndSwap(nil, &key) {
		return true
	}
	return *parent.child.Load() == key
}

// Equal reports whether both nodes identify the same culture and scope.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.culture == other.culture && n.scope == other.scope
}

func (n *Node) key() nodeKey {
	return nodeKey{culture: n.culture, scope: n.scope}
}

func (n *Node) warnNotLoaded(what string) {
	n.logger.Warn("dictionary accessed before load",
		logger.Culture(n.culture),
		logger.Scope(n.scope),
		logger.Kind(what),
	)
}

// table is a compute-once map guarded by its own lock.
type table[V any] struct {
	mu  sync.Mutex
	val atomic.Pointer[map[string]V]
}

func (t *table[V]) get(n *Node, kind string, build func(*loadedDocument) map[string]V) map[string]V {
	if m := t.val.Load(); m != nil {
		return *m
	}

	d := n.doc.Load()
	if d == nil {
		n.warnNotLoaded(kind)
		return map[string]V{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if m := t.val.Load(); m != nil {
		return *m
	}
	m := build(d)
	n.builds.Add(1)
	t.val.Store(&m)
	return m
}
