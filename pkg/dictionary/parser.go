package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalScope is the scope assigned to documents that do not declare one.
const GlobalScope = "global"

// DefaultPluralSuffix is inserted before the extension of a base document name
// to locate its pluralized companion: "en-US.json" -> "en-US.plural.json".
const DefaultPluralSuffix = ".plural"

// Document is a parsed culture+scope dictionary document.
type Document struct {
	Source     string
	Culture    string
	Scope      string
	Dictionary map[string]string
	Constants  map[string]string
	// Skipped lists keys whose values were objects or arrays and could not be
	// used as text.
	Skipped []string
}

// PluralEntry is a parsed pluralized key: a default text and its interval variants.
type PluralEntry struct {
	Default  string
	Variants []PluralText
}

// PluralText is one (interval, text) pair of a pluralized key.
type PluralText struct {
	Interval PluralizationInterval
	Text     string
}

// PluralDocument is a parsed pluralized companion document.
type PluralDocument struct {
	Source  string
	Culture string
	Entries map[string]PluralEntry
}

// SupportsExtension reports whether a document name has a decodable extension.
func SupportsExtension(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// CompanionName derives the pluralized companion name from a base document name.
func CompanionName(name, suffix string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + suffix + ext
}

// IsCompanion reports whether name is itself a pluralized companion document.
func IsCompanion(name, suffix string) bool {
	if suffix == "" {
		return false
	}
	return strings.HasSuffix(strings.TrimSuffix(name, path.Ext(name)), suffix)
}

// Parse decodes a dictionary document. The decoder is chosen by the source
// extension; JSON is used when the extension is unknown.
// Missing "dictionary" or "constants" sub-trees yield empty tables.
func Parse(source string, data []byte) (*Document, error) {
	root, err := decodeRoot(source, data)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Source:     source,
		Culture:    CanonicalCulture(stringField(root, "culture")),
		Scope:      strings.TrimSpace(stringField(root, "scope")),
		Dictionary: make(map[string]string),
		Constants:  make(map[string]string),
	}
	if doc.Scope == "" {
		doc.Scope = GlobalScope
	}

	if err := collectStrings(source, root, "dictionary", doc.Dictionary, &doc.Skipped); err != nil {
		return nil, err
	}
	if err := collectStrings(source, root, "constants", doc.Constants, &doc.Skipped); err != nil {
		return nil, err
	}

	return doc, nil
}

// ParsePlural decodes a pluralized companion document. Scope is only used to
// describe format errors since companions do not declare their own scope.
func ParsePlural(source string, data []byte, scope string) (*PluralDocument, error) {
	root, err := decodeRoot(source, data)
	if err != nil {
		return nil, err
	}

	doc := &PluralDocument{
		Source:  source,
		Culture: CanonicalCulture(stringField(root, "culture")),
		Entries: make(map[string]PluralEntry),
	}

	raw, ok := root["dictionary"]
	if !ok || raw == nil {
		return doc, nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, &MalformedDocumentError{Source: source, Err: fmt.Errorf("\"dictionary\" must be an object, got %T", raw)}
	}

	for key, value := range entries {
		entry, err := parsePluralEntry(value)
		if err != nil {
			err.Scope, err.Culture, err.Key = scope, doc.Culture, key
			return nil, err
		}
		doc.Entries[key] = entry
	}

	return doc, nil
}

func decodeRoot(source string, data []byte) (map[string]any, error) {
	var root any

	switch strings.ToLower(path.Ext(source)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, &MalformedDocumentError{Source: source, Err: err}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return nil, &MalformedDocumentError{Source: source, Err: err}
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, &MalformedDocumentError{Source: source, Err: errors.New("unexpected data after top-level value")}
		}
	}

	obj, ok := root.(map[string]any)
	if !ok || obj == nil {
		return nil, &MalformedDocumentError{Source: source, Err: fmt.Errorf("top-level value must be an object, got %T", root)}
	}
	return obj, nil
}

func stringField(root map[string]any, name string) string {
	s, _ := root[name].(string)
	return s
}

func collectStrings(source string, root map[string]any, name string, dst map[string]string, skipped *[]string) error {
	raw, ok := root[name]
	if !ok || raw == nil {
		return nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return &MalformedDocumentError{Source: source, Err: fmt.Errorf("%q must be an object, got %T", name, raw)}
	}

	for key, value := range entries {
		text, ok := scalarText(value)
		if !ok {
			*skipped = append(*skipped, name+"."+key)
			continue
		}
		dst[key] = text
	}
	return nil
}

// scalarText stringifies scalar values; objects and arrays are rejected.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case nil:
		return "", true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int, int64, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func parsePluralEntry(value any) (PluralEntry, *DictionaryFormatError) {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return PluralEntry{}, &DictionaryFormatError{Reason: "entry must be an object with exactly one default text"}
	}

	var entry PluralEntry
	for defaultText, rawVariants := range obj {
		entry.Default = defaultText

		if rawVariants == nil {
			return entry, nil
		}
		variants, ok := rawVariants.([]any)
		if !ok {
			return PluralEntry{}, &DictionaryFormatError{Reason: "variants must be an array of [left, right, text] triples"}
		}

		entry.Variants = make([]PluralText, 0, len(variants))
		for _, rawVariant := range variants {
			variant, err := parseVariant(rawVariant)
			if err != nil {
				return PluralEntry{}, err
			}
			entry.Variants = append(entry.Variants, variant)
		}
	}
	return entry, nil
}

func parseVariant(raw any) (PluralText, *DictionaryFormatError) {
	triple, ok := raw.([]any)
	if !ok || len(triple) < 3 {
		return PluralText{}, &DictionaryFormatError{Reason: "variant must be a [left, right, text] triple"}
	}

	start, err := parseBound(triple[0], MinBound)
	if err != nil {
		return PluralText{}, err
	}
	end, err := parseBound(triple[1], MaxBound)
	if err != nil {
		return PluralText{}, err
	}
	text, ok := triple[2].(string)
	if !ok {
		return PluralText{}, &DictionaryFormatError{Token: fmt.Sprint(triple[2]), Reason: "variant text must be a string"}
	}

	interval, intervalErr := NewInterval(start, end)
	if intervalErr != nil {
		return PluralText{}, &DictionaryFormatError{Token: fmt.Sprintf("%v..%v", triple[0], triple[1]), Reason: intervalErr.Error()}
	}

	return PluralText{Interval: interval, Text: text}, nil
}

// parseBound converts an interval bound. Null and blank strings yield the
// sentinel; any other token must be an integer that fits in int. YAML decodes
// integers above MaxInt64 as uint64, which is rejected as not an integer.
func parseBound(v any, sentinel int) (int, *DictionaryFormatError) {
	invalid := func(token string) *DictionaryFormatError {
		return &DictionaryFormatError{Token: token, Reason: "interval bound is not an integer"}
	}

	switch t := v.(type) {
	case nil:
		return sentinel, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return sentinel, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, invalid(t)
		}
		return n, nil
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err != nil {
			return 0, invalid(t.String())
		}
		return n, nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) || t < math.MinInt64 || t >= math.MaxInt64 {
			return 0, invalid(strconv.FormatFloat(t, 'f', -1, 64))
		}
		return int(t), nil
	default:
		return 0, invalid(fmt.Sprint(t))
	}
}
