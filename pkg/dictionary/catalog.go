package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lexicon/pkg/logger"
)

// Catalog locates the document backing a (culture, scope) pair.
type Catalog interface {
	Lookup(culture, scope string) (Source, bool)
	Cultures() []string
	Scopes() []string
}

type nodeKey struct {
	culture string
	scope   string
}

// index is the shared (culture, scope) -> Source table behind the catalogs.
type index struct {
	mu      sync.RWMutex
	sources map[nodeKey]Source
}

func newIndex() index {
	return index{sources: make(map[nodeKey]Source)}
}

func (ix *index) add(culture, scope string, src Source) error {
	key := nodeKey{culture: CanonicalCulture(culture), scope: scope}
	if key.culture == "" {
		return ErrEmptyCulture
	}
	if key.scope == "" {
		key.scope = GlobalScope
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if prev, ok := ix.sources[key]; ok {
		return fmt.Errorf("%w: %s/%s in %s and %s", ErrDuplicateDictionary, key.scope, key.culture, prev.Name(), src.Name())
	}
	ix.sources[key] = src
	return nil
}

func (ix *index) Lookup(culture, scope string) (Source, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	src, ok := ix.sources[nodeKey{culture: CanonicalCulture(culture), scope: scope}]
	return src, ok
}

// Cultures returns the sorted set of cultures with at least one document.
func (ix *index) Cultures() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.collect(func(k nodeKey) string { return k.culture })
}

// Scopes returns the sorted set of scopes with at least one document.
func (ix *index) Scopes() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.collect(func(k nodeKey) string { return k.scope })
}

func (ix *index) collect(field func(nodeKey) string) []string {
	seen := make(map[string]struct{}, len(ix.sources))
	out := make([]string, 0, len(ix.sources))
	for k := range ix.sources {
		v := field(k)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// MapCatalog is an in-memory catalog populated with Add.
type MapCatalog struct {
	index
}

// NewMapCatalog returns an empty in-memory catalog.
func NewMapCatalog() *MapCatalog {
	return &MapCatalog{index: newIndex()}
}

// Add registers src for (culture, scope). An empty scope means GlobalScope.
func (c *MapCatalog) Add(culture, scope string, src Source) error {
	if src == nil {
		return ErrNilSource
	}
	return c.add(culture, scope, src)
}

// AddSource registers src under the culture and scope its document declares.
func (c *MapCatalog) AddSource(src Source) error {
	if src == nil {
		return ErrNilSource
	}
	culture, scope, err := readHeader(src)
	if err != nil {
		return err
	}
	return c.add(culture, scope, src)
}

// CatalogOption configures filesystem catalogs.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	pluralSuffix string
	logger       *slog.Logger
	concurrency  int
}

// WithCatalogPluralSuffix sets the companion suffix used to skip pluralized
// documents while indexing.
func WithCatalogPluralSuffix(suffix string) CatalogOption {
	return func(c *catalogConfig) {
		if suffix != "" {
			c.pluralSuffix = suffix
		}
	}
}

// WithCatalogLogger sets the logger used to report skipped documents.
func WithCatalogLogger(l *slog.Logger) CatalogOption {
	return func(c *catalogConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCatalogConcurrency limits how many document headers are read at once.
func WithCatalogConcurrency(n int) CatalogOption {
	return func(c *catalogConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// FSCatalog indexes the documents stored under a directory of an fs.FS.
// Only document headers are read while indexing; bodies are parsed by nodes
// on first use.
type FSCatalog struct {
	index
	fsys fs.FS
	dir  string
}

// NewFSCatalog walks dir in fsys and indexes every dictionary document by the
// culture and scope it declares. Pluralized companions are not indexed.
// Unreadable or malformed documents are logged and skipped; two documents
// declaring the same culture and scope fail with ErrDuplicateDictionary.
func NewFSCatalog(ctx context.Context, fsys fs.FS, dir string, opts ...CatalogOption) (*FSCatalog, error) {
	cfg := &catalogConfig{
		pluralSuffix: DefaultPluralSuffix,
		logger:       logger.Discard(),
		concurrency:  8,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if dir == "" {
		dir = "."
	}

	var names []string
	err := fs.WalkDir(fsys, dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return errors.Join(ErrCatalogScanCanceled, ctx.Err())
		}
		if d.IsDir() || !SupportsExtension(name) || IsCompanion(name, cfg.pluralSuffix) {
			return nil
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c := &FSCatalog{index: newIndex(), fsys: fsys, dir: dir}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for _, name := range names {
		g.Go(func() error {
			if gctx.Err() != nil {
				return errors.Join(ErrCatalogScanCanceled, gctx.Err())
			}
			src := NewFSSource(fsys, name)
			culture, scope, err := readHeader(src)
			if err != nil {
				cfg.logger.WarnContext(ctx, "skipping dictionary document",
					logger.Component("catalog"),
					logger.Source(name),
					logger.Error(err),
				)
				return nil
			}
			return c.add(culture, scope, src)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cfg.logger.InfoContext(ctx, "dictionary catalog indexed",
		logger.Component("catalog"),
		slog.Int("documents", len(c.sources)),
		slog.Any("cultures", c.Cultures()),
		slog.Any("scopes", c.Scopes()),
	)
	return c, nil
}

// NewDirCatalog indexes the documents under a local directory.
func NewDirCatalog(ctx context.Context, path string, opts ...CatalogOption) (*FSCatalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary directory %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dictionary path %q is not a directory", path)
	}
	return NewFSCatalog(ctx, os.DirFS(path), ".", opts...)
}
