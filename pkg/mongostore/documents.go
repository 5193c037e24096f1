package mongostore

import (
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
)

const (
	entriesCollection = "dictionary_entries"
	pluralsCollection = "dictionary_plurals"
)

type entryDocument struct {
	Scope   string `bson:"scope"`
	Culture string `bson:"culture"`
	Kind    string `bson:"kind"`
	Key     string `bson:"key"`
	Value   string `bson:"value"`
}

type pluralDocument struct {
	Scope    string            `bson:"scope"`
	Culture  string            `bson:"culture"`
	Key      string            `bson:"key"`
	Default  string            `bson:"default"`
	Variants []variantDocument `bson:"variants,omitempty"`
}

type variantDocument struct {
	Start *int64 `bson:"start,omitempty"`
	End   *int64 `bson:"end,omitempty"`
	Text  string `bson:"text"`
}

func tableFilter(scope, culture string) bson.D {
	return bson.D{{Key: "scope", Value: scope}, {Key: "culture", Value: culture}}
}

func entryFilter(kind, scope, culture string) bson.D {
	return append(tableFilter(scope, culture), bson.E{Key: "kind", Value: kind})
}

func entriesToTable(docs []entryDocument) map[string]dictionary.LocalizedString {
	out := make(map[string]dictionary.LocalizedString, len(docs))
	for _, d := range docs {
		out[d.Key] = dictionary.LocalizedString{Name: d.Key, Value: d.Value}
	}
	return out
}

func pluralsToTable(docs []pluralDocument) map[string]dictionary.PluralizedString {
	out := make(map[string]dictionary.PluralizedString, len(docs))
	for _, d := range docs {
		ps := dictionary.PluralizedString{
			Default:  dictionary.LocalizedString{Name: d.Key, Value: d.Default},
			Variants: make([]dictionary.PluralVariant, 0, len(d.Variants)),
		}
		for _, v := range d.Variants {
			ps.Variants = append(ps.Variants, dictionary.PluralVariant{
				Interval: dictionary.PluralizationInterval{
					Start: bound(v.Start, dictionary.MinBound),
					End:   bound(v.End, dictionary.MaxBound),
				},
				Value: dictionary.LocalizedString{Name: d.Key, Value: v.Text},
			})
		}
		out[d.Key] = ps
	}
	return out
}

func bound(v *int64, sentinel int) int {
	if v == nil {
		return sentinel
	}
	return int(*v)
}

func storedBound(v, sentinel int) *int64 {
	if v == sentinel {
		return nil
	}
	n := int64(v)
	return &n
}

// documentsFor flattens a parsed dictionary document into collection documents,
// ordered by key.
func documentsFor(doc *dictionary.Document, plural *dictionary.PluralDocument) ([]entryDocument, []pluralDocument) {
	entries := make([]entryDocument, 0, len(doc.Dictionary)+len(doc.Constants))
	for _, key := range sortedKeys(doc.Dictionary) {
		entries = append(entries, entryDocument{
			Scope: doc.Scope, Culture: doc.Culture, Kind: dictionary.KindTranslations, Key: key, Value: doc.Dictionary[key],
		})
	}
	for _, key := range sortedKeys(doc.Constants) {
		entries = append(entries, entryDocument{
			Scope: doc.Scope, Culture: doc.Culture, Kind: dictionary.KindConstants, Key: key, Value: doc.Constants[key],
		})
	}

	if plural == nil {
		return entries, nil
	}
	plurals := make([]pluralDocument, 0, len(plural.Entries))
	for _, key := range sortedKeys(plural.Entries) {
		entry := plural.Entries[key]
		pd := pluralDocument{Scope: doc.Scope, Culture: doc.Culture, Key: key, Default: entry.Default}
		for _, v := range entry.Variants {
			pd.Variants = append(pd.Variants, variantDocument{
				Start: storedBound(v.Interval.Start, dictionary.MinBound),
				End:   storedBound(v.Interval.End, dictionary.MaxBound),
				Text:  v.Text,
			})
		}
		plurals = append(plurals, pd)
	}
	return entries, plurals
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
