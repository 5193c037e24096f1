package pgstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/logger"
)

const (
	selectEntries = `SELECT key, value FROM dictionary_entries
WHERE scope = $1 AND culture = $2 AND kind = $3`

	selectPlurals = `SELECT p.key, p.default_text, v.range_start, v.range_end, v.text
FROM dictionary_plurals p
LEFT JOIN dictionary_plural_variants v
  ON v.scope = p.scope AND v.culture = p.culture AND v.key = p.key
WHERE p.scope = $1 AND p.culture = $2
ORDER BY p.key, v.position`

	deleteEntries = `DELETE FROM dictionary_entries WHERE scope = $1 AND culture = $2`
	deletePlurals = `DELETE FROM dictionary_plurals WHERE scope = $1 AND culture = $2`
	insertEntry   = `INSERT INTO dictionary_entries (scope, culture, kind, key, value) VALUES ($1, $2, $3, $4, $5)`
	insertPlural  = `INSERT INTO dictionary_plurals (scope, culture, key, default_text) VALUES ($1, $2, $3, $4)`
	insertVariant = `INSERT INTO dictionary_plural_variants (scope, culture, key, position, range_start, range_end, text) VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store serves dictionary tables from PostgreSQL.
type Store struct {
	db     DB
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for query failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(db DB, opts ...Option) *Store {
	s := &Store{db: db, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Translations(ctx context.Context, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	return s.entries(ctx, dictionary.KindTranslations, scope, culture)
}

func (s *Store) Constants(ctx context.Context, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	return s.entries(ctx, dictionary.KindConstants, scope, culture)
}

func (s *Store) Pluralized(ctx context.Context, scope, culture string) (map[string]dictionary.PluralizedString, error) {
	rows, err := s.db.Query(ctx, selectPlurals, scope, culture)
	if err != nil {
		return nil, s.failed(ctx, dictionary.KindPluralized, scope, culture, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[pluralRow])
	if err != nil {
		return nil, s.failed(ctx, dictionary.KindPluralized, scope, culture, err)
	}
	return pluralsToTable(collected), nil
}

func (s *Store) entries(ctx context.Context, kind, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	rows, err := s.db.Query(ctx, selectEntries, scope, culture, kind)
	if err != nil {
		return nil, s.failed(ctx, kind, scope, culture, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entryRow])
	if err != nil {
		return nil, s.failed(ctx, kind, scope, culture, err)
	}
	return entriesToTable(collected), nil
}

func (s *Store) failed(ctx context.Context, kind, scope, culture string, err error) error {
	s.logger.ErrorContext(ctx, "dictionary query failed",
		logger.Component("pgstore"),
		logger.Kind(kind),
		logger.Scope(scope),
		logger.Culture(culture),
		logger.Error(err),
	)
	return errors.Join(ErrFailedToQuery, err)
}

// Import replaces everything stored for the document's scope and culture
// with the document's contents, in one transaction.
func (s *Store) Import(ctx context.Context, doc *dictionary.Document, plural *dictionary.PluralDocument) error {
	if doc == nil {
		return errors.Join(ErrFailedToImport, dictionary.ErrNilSource)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrFailedToImport, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, importBatch(doc, plural)).Close(); err != nil {
		return errors.Join(ErrFailedToImport, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrFailedToImport, err)
	}

	s.logger.InfoContext(ctx, "dictionary document imported",
		logger.Component("pgstore"),
		logger.Source(doc.Source),
		logger.Scope(doc.Scope),
		logger.Culture(doc.Culture),
	)
	return nil
}

func importBatch(doc *dictionary.Document, plural *dictionary.PluralDocument) *pgx.Batch {
	b := &pgx.Batch{}
	b.Queue(deleteEntries, doc.Scope, doc.Culture)
	b.Queue(deletePlurals, doc.Scope, doc.Culture)

	for _, key := range sortedKeys(doc.Dictionary) {
		b.Queue(insertEntry, doc.Scope, doc.Culture, dictionary.KindTranslations, key, doc.Dictionary[key])
	}
	for _, key := range sortedKeys(doc.Constants) {
		b.Queue(insertEntry, doc.Scope, doc.Culture, dictionary.KindConstants, key, doc.Constants[key])
	}
	if plural == nil {
		return b
	}

	for _, key := range sortedKeys(plural.Entries) {
		entry := plural.Entries[key]
		b.Queue(insertPlural, doc.Scope, doc.Culture, key, entry.Default)
		for i, v := range entry.Variants {
			b.Queue(insertVariant, doc.Scope, doc.Culture, key, i,
				toNullable(v.Interval.Start, dictionary.MinBound),
				toNullable(v.Interval.End, dictionary.MaxBound),
				v.Text,
			)
		}
	}
	return b
}
