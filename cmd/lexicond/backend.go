package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/httpserver"
	"github.com/dmitrymomot/lexicon/pkg/logger"
	"github.com/dmitrymomot/lexicon/pkg/mongostore"
	"github.com/dmitrymomot/lexicon/pkg/pgstore"
	"github.com/dmitrymomot/lexicon/pkg/rediscache"
)

var ErrUnknownStore = errors.New("unknown dictionary store")

type importer interface {
	Import(ctx context.Context, doc *dictionary.Document, plural *dictionary.PluralDocument) error
}

// backend is the persistent tier behind the file dictionaries.
type backend struct {
	provider   dictionary.Provider
	importer   importer
	invalidate func(ctx context.Context, scope, culture string) error
	checks     []httpserver.Check
	close      func()
}

func openBackend(ctx context.Context, cfg config, log *slog.Logger) (*backend, error) {
	var b *backend

	switch strings.ToLower(strings.TrimSpace(cfg.Store)) {
	case "", "none":
		b = &backend{provider: dictionary.NullProvider{}, close: func() {}}

	case "postgres", "pg":
		pgCfg, err := env.ParseAs[pgstore.Config]()
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		pool, err := pgstore.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		store := pgstore.New(pool, pgstore.WithLogger(log))
		b = &backend{
			provider: store,
			importer: store,
			checks:   []httpserver.Check{pgstore.Healthcheck(pool)},
			close:    pool.Close,
		}

	case "mongo", "mongodb":
		mongoCfg, err := env.ParseAs[mongostore.Config]()
		if err != nil {
			return nil, fmt.Errorf("parse mongo config: %w", err)
		}
		db, err := mongostore.Connect(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		store := mongostore.New(db, mongostore.WithLogger(log))
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
		b = &backend{
			provider: store,
			importer: store,
			checks:   []httpserver.Check{mongostore.Healthcheck(db)},
			close:    func() { _ = db.Client().Disconnect(context.WithoutCancel(ctx)) },
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}

	if !cfg.CacheStore || b.importer == nil {
		return b, nil
	}

	redisCfg, err := env.ParseAs[rediscache.Config]()
	if err != nil {
		b.close()
		return nil, fmt.Errorf("parse redis config: %w", err)
	}
	client, err := rediscache.Connect(ctx, redisCfg)
	if err != nil {
		b.close()
		return nil, err
	}
	cache := rediscache.New(client, b.provider,
		rediscache.WithTTL(redisCfg.TTL),
		rediscache.WithPrefix(redisCfg.Prefix),
		rediscache.WithLogger(log),
	)

	closeStore := b.close
	b.provider = cache
	b.invalidate = cache.Invalidate
	b.checks = append(b.checks, rediscache.Healthcheck(client))
	b.close = func() {
		_ = client.Close()
		closeStore()
	}

	log.InfoContext(ctx, "dictionary store cache enabled",
		logger.Component("lexicond"),
		logger.Duration(redisCfg.TTL),
	)
	return b, nil
}

// seed copies every catalog document into the store.
func seed(ctx context.Context, catalog dictionary.Catalog, b *backend, pluralSuffix string, log *slog.Logger) error {
	if b.importer == nil {
		return nil
	}

	imported := 0
	for _, scope := range catalog.Scopes() {
		for _, culture := range catalog.Cultures() {
			src, ok := catalog.Lookup(culture, scope)
			if !ok {
				continue
			}
			doc, plural, err := dictionary.ReadDocument(src, pluralSuffix)
			if err != nil {
				log.WarnContext(ctx, "skipping unreadable dictionary",
					logger.Component("lexicond"),
					logger.Source(src.Name()),
					logger.Error(err),
				)
				continue
			}
			if err := b.importer.Import(ctx, doc, plural); err != nil {
				return fmt.Errorf("seed %s: %w", src.Name(), err)
			}
			if b.invalidate != nil {
				if err := b.invalidate(ctx, doc.Scope, doc.Culture); err != nil {
					log.WarnContext(ctx, "failed to invalidate cached dictionary",
						logger.Component("lexicond"),
						logger.Scope(doc.Scope),
						logger.Culture(doc.Culture),
						logger.Error(err),
					)
				}
			}
			imported++
		}
	}

	log.InfoContext(ctx, "dictionary store seeded",
		logger.Component("lexicond"),
		slog.Int("documents", imported),
	)
	return nil
}
