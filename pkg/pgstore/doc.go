// Package pgstore serves dictionary tables from PostgreSQL.
//
// Store implements dictionary.Provider on top of a pgx pool. The schema is
// embedded and applied with goose:
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pgstore.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	store := pgstore.New(pool, pgstore.WithLogger(log))
//	t, err := dictionary.New(catalog, dictionary.WithProvider(store))
//
// Translations and constants live in dictionary_entries, pluralized entries
// in dictionary_plurals with their ordered intervals in
// dictionary_plural_variants. A NULL bound is open-ended.
package pgstore
