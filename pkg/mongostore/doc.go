// Package mongostore serves dictionary tables from MongoDB.
//
// Translations and constants are stored one document per key in the
// "dictionary_entries" collection; pluralized entries keep their ordered
// intervals inline in "dictionary_plurals". A missing bound is open-ended.
//
//	db, err := mongostore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := mongostore.New(db, mongostore.WithLogger(log))
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
package mongostore
