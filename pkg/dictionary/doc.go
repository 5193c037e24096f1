// Package dictionary resolves localized text for a (key, scope, culture)
// triple from statically authored dictionary documents.
//
// A dictionary document covers one culture and one scope:
//
//	{
//	  "culture": "en-US",
//	  "scope": "checkout",
//	  "dictionary": {"pay": "Pay now"},
//	  "constants": {"currency": "USD"}
//	}
//
// Pluralized texts live in a companion document next to it, named by
// inserting a suffix (".plural" by default) before the extension:
//
//	{
//	  "culture": "en-US",
//	  "dictionary": {
//	    "years": {"years": [[null, -1, "years ago"], [0, 0, "today"], [1, null, "years"]]}
//	  }
//	}
//
// Each pluralized key maps a default text to [left, right, text] triples.
// Bounds are inclusive; null means unbounded. The first interval containing
// the quantity wins, and the default text is used when none does.
// YAML documents with the same shape are accepted for .yaml and .yml names.
//
// # Architecture
//
// A Catalog locates the Source of each (culture, scope) pair. The Translator
// creates a Node for a pair on first demand, loads it from its source and
// keeps it in a Registry. Nodes build their translation, pluralized and
// constant tables once, on first access, and link to a parent node: the next
// culture of the node's own fallback order (en-US -> en -> default culture).
// Lookups walk that chain for every scope in the scope fallback order
// (requested scope, then GlobalScope). When the chain is exhausted, an
// optional Provider backed by a database is consulted, and finally the
// ErrorResolution policy decides between echoing the key and returning nil.
//
// # Usage
//
//	catalog, err := dictionary.NewDirCatalog(ctx, "./dictionaries")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	t, err := dictionary.New(catalog,
//		dictionary.WithDefaultCulture("en"),
//		dictionary.WithErrorResolution(dictionary.ReturnKey),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	t.Translate(ctx, "pay", "checkout", "en-US").Value          // "Pay now"
//	t.TranslateFormat(ctx, "hello", []string{"Alice"}, "", "").Value // "Hello Alice"
//	t.TranslatePluralization(ctx, "years", 7, "", "en-US").Value // "years"
//
// # Error Handling
//
// Load failures are typed: *MalformedDocumentError, *DictionaryFormatError
// and *DictionaryLoadError match ErrMalformedDocument, ErrDictionaryFormat and
// ErrDictionaryLoad with errors.Is. A node that fails to load is skipped by
// the translator. Misses are never errors.
package dictionary
