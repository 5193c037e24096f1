package pgstore

import (
	"slices"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
)

type entryRow struct {
	Key   string
	Value string
}

// pluralRow is one row of the plurals/variants left join. Variant columns are
// NULL for entries without intervals.
type pluralRow struct {
	Key     string
	Default string
	Start   *int64
	End     *int64
	Text    *string
}

func entriesToTable(rows []entryRow) map[string]dictionary.LocalizedString {
	out := make(map[string]dictionary.LocalizedString, len(rows))
	for _, r := range rows {
		out[r.Key] = dictionary.LocalizedString{Name: r.Key, Value: r.Value}
	}
	return out
}

// pluralsToTable groups rows by key. Rows must be ordered by key, then variant position.
func pluralsToTable(rows []pluralRow) map[string]dictionary.PluralizedString {
	out := make(map[string]dictionary.PluralizedString)
	for _, r := range rows {
		ps, ok := out[r.Key]
		if !ok {
			ps = dictionary.PluralizedString{
				Default: dictionary.LocalizedString{Name: r.Key, Value: r.Default},
			}
		}
		if r.Text != nil {
			ps.Variants = append(ps.Variants, dictionary.PluralVariant{
				Interval: dictionary.PluralizationInterval{
					Start: fromNullable(r.Start, dictionary.MinBound),
					End:   fromNullable(r.End, dictionary.MaxBound),
				},
				Value: dictionary.LocalizedString{Name: r.Key, Value: *r.Text},
			})
		}
		out[r.Key] = ps
	}
	return out
}

func fromNullable(v *int64, sentinel int) int {
	if v == nil {
		return sentinel
	}
	return int(*v)
}

// toNullable stores open-ended bounds as NULL.
func toNullable(v, sentinel int) *int64 {
	if v == sentinel {
		return nil
	}
	n := int64(v)
	return &n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
