package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/logger"
)

const (
	DefaultTTL    = 10 * time.Minute
	DefaultPrefix = "lexicon"
)

// Cache is a dictionary.Provider caching the tables of another provider.
type Cache struct {
	client redis.UniversalClient
	next   dictionary.Provider
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the lifetime of cached tables.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix namespaces the cache keys.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if p := strings.Trim(prefix, ": "); p != "" {
			c.prefix = p
		}
	}
}

// WithLogger sets the logger for cache failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a cache in front of next.
func New(client redis.UniversalClient, next dictionary.Provider, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		next:   next,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Translations(ctx context.Context, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	return readThrough(ctx, c, dictionary.KindTranslations, scope, culture, c.next.Translations)
}

func (c *Cache) Constants(ctx context.Context, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	return readThrough(ctx, c, dictionary.KindConstants, scope, culture, c.next.Constants)
}

func (c *Cache) Pluralized(ctx context.Context, scope, culture string) (map[string]dictionary.PluralizedString, error) {
	return readThrough(ctx, c, dictionary.KindPluralized, scope, culture, c.next.Pluralized)
}

// Invalidate drops every cached table of (scope, culture).
func (c *Cache) Invalidate(ctx context.Context, scope, culture string) error {
	return c.client.Del(ctx,
		c.key(dictionary.KindTranslations, scope, culture),
		c.key(dictionary.KindConstants, scope, culture),
		c.key(dictionary.KindPluralized, scope, culture),
	).Err()
}

func (c *Cache) key(kind, scope, culture string) string {
	return c.prefix + ":" + kind + ":" + scope + ":" + culture
}

func readThrough[V any](
	ctx context.Context,
	c *Cache,
	kind, scope, culture string,
	fetch func(context.Context, string, string) (map[string]V, error),
) (map[string]V, error) {
	key := c.key(kind, scope, culture)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var table map[string]V
		if err := json.Unmarshal(data, &table); err == nil {
			return table, nil
		}
		c.warn(ctx, "discarding undecodable cached dictionary", key, err)
	case !errors.Is(err, redis.Nil):
		c.warn(ctx, "dictionary cache read failed", key, err)
	}

	table, err := fetch(ctx, scope, culture)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(table)
	if err != nil {
		c.warn(ctx, "failed to encode dictionary for cache", key, err)
		return table, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.warn(ctx, "dictionary cache write failed", key, err)
	}
	return table, nil
}

func (c *Cache) warn(ctx context.Context, msg, key string, err error) {
	c.logger.WarnContext(ctx, msg,
		logger.Component("rediscache"),
		slog.String("cache_key", key),
		logger.Error(err),
	)
}
