package mongostore

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/logger"
)

// Store serves dictionary tables from MongoDB collections.
type Store struct {
	entries *mongo.Collection
	plurals *mongo.Collection
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for query failures and imports.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(db *mongo.Database, opts ...Option) *Store {
	s := &Store{
		entries: db.Collection(entriesCollection),
		plurals: db.Collection(pluralsCollection),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the unique lookup indexes of both collections.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.entries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "scope", Value: 1}, {Key: "culture", Value: 1}, {Key: "kind", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Join(ErrFailedToCreateIndexes, err)
	}
	_, err = s.plurals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "scope", Value: 1}, {Key: "culture", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Join(ErrFailedToCreateIndexes, err)
	}
	return nil
}

func (s *Store) Translations(ctx context.Context, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	return s.texts(ctx, dictionary.KindTranslations, scope, culture)
}

func (s *Store) Constants(ctx context.Context, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	return s.texts(ctx, dictionary.KindConstants, scope, culture)
}

func (s *Store) Pluralized(ctx context.Context, scope, culture string) (map[string]dictionary.PluralizedString, error) {
	cursor, err := s.plurals.Find(ctx, tableFilter(scope, culture))
	if err != nil {
		return nil, s.failed(ctx, dictionary.KindPluralized, scope, culture, err)
	}
	var docs []pluralDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, s.failed(ctx, dictionary.KindPluralized, scope, culture, err)
	}
	return pluralsToTable(docs), nil
}

func (s *Store) texts(ctx context.Context, kind, scope, culture string) (map[string]dictionary.LocalizedString, error) {
	cursor, err := s.entries.Find(ctx, entryFilter(kind, scope, culture))
	if err != nil {
		return nil, s.failed(ctx, kind, scope, culture, err)
	}
	var docs []entryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, s.failed(ctx, kind, scope, culture, err)
	}
	return entriesToTable(docs), nil
}

func (s *Store) failed(ctx context.Context, kind, scope, culture string, err error) error {
	s.logger.ErrorContext(ctx, "dictionary query failed",
		logger.Component("mongostore"),
		logger.Kind(kind),
		logger.Scope(scope),
		logger.Culture(culture),
		logger.Error(err),
	)
	return errors.Join(ErrFailedToQuery, err)
}

// Import replaces the stored documents of doc's scope and culture.
// The replacement is not atomic: readers may briefly see an empty table.
func (s *Store) Import(ctx context.Context, doc *dictionary.Document, plural *dictionary.PluralDocument) error {
	if doc == nil {
		return errors.Join(ErrFailedToImport, dictionary.ErrNilSource)
	}
	entries, plurals := documentsFor(doc, plural)
	filter := tableFilter(doc.Scope, doc.Culture)

	if _, err := s.entries.DeleteMany(ctx, filter); err != nil {
		return errors.Join(ErrFailedToImport, err)
	}
	if _, err := s.plurals.DeleteMany(ctx, filter); err != nil {
		return errors.Join(ErrFailedToImport, err)
	}
	if len(entries) > 0 {
		if _, err := s.entries.InsertMany(ctx, entries); err != nil {
			return errors.Join(ErrFailedToImport, err)
		}
	}
	if len(plurals) > 0 {
		if _, err := s.plurals.InsertMany(ctx, plurals); err != nil {
			return errors.Join(ErrFailedToImport, err)
		}
	}

	s.logger.InfoContext(ctx, "dictionary document imported",
		logger.Component("mongostore"),
		logger.Source(doc.Source),
		logger.Scope(doc.Scope),
		logger.Culture(doc.Culture),
		slog.Int("entries", len(entries)),
		slog.Int("pluralized", len(plurals)),
	)
	return nil
}
