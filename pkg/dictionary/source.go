package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is a readable dictionary document.
type Source interface {
	// Name identifies the document in errors and logs. The extension selects
	// the decoder.
	Name() string
	// Open returns a stream over the document. Callers close it.
	Open() (io.ReadCloser, error)
	// Companion returns the pluralized companion document, if one exists.
	Companion(suffix string) (Source, bool)
}

// FSSource is a document stored in an fs.FS.
type FSSource struct {
	fsys fs.FS
	path string
}

// NewFSSource returns a source reading name from fsys.
func NewFSSource(fsys fs.FS, name string) *FSSource {
	return &FSSource{fsys: fsys, path: name}
}

func (s *FSSource) Name() string { return s.path }

func (s *FSSource) Open() (io.ReadCloser, error) {
	f, err := s.fsys.Open(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenSource, err)
	}
	return f, nil
}

func (s *FSSource) Companion(suffix string) (Source, bool) {
	name := CompanionName(s.path, suffix)
	info, err := fs.Stat(s.fsys, name)
	if err != nil || info.IsDir() {
		return nil, false
	}
	return &FSSource{fsys: s.fsys, path: name}, true
}

// BytesSource is an in-memory document with an optional pluralized companion.
type BytesSource struct {
	name   string
	data   []byte
	plural []byte
}

// NewBytesSource returns an in-memory source. The name extension selects the decoder.
func NewBytesSource(name string, data []byte) *BytesSource {
	return &BytesSource{name: name, data: data}
}

// WithPlural attaches a pluralized companion document and returns the source.
func (s *BytesSource) WithPlural(data []byte) *BytesSource {
	s.plural = data
	return s
}

func (s *BytesSource) Name() string { return s.name }

func (s *BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s *BytesSource) Companion(suffix string) (Source, bool) {
	if s.plural == nil {
		return nil, false
	}
	return &BytesSource{name: CompanionName(s.name, suffix), data: s.plural}, true
}

func readSource(src Source) ([]byte, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSource, err)
	}
	return data, nil
}

// ReadDocument reads and parses src and, when one exists, its pluralized
// companion located with pluralSuffix. A companion declaring a different
// culture is a *DictionaryLoadError.
func ReadDocument(src Source, pluralSuffix string) (*Document, *PluralDocument, error) {
	if src == nil {
		return nil, nil, ErrNilSource
	}
	if pluralSuffix == "" {
		pluralSuffix = DefaultPluralSuffix
	}

	data, err := readSource(src)
	if err != nil {
		return nil, nil, err
	}
	doc, err := Parse(src.Name(), data)
	if err != nil {
		return nil, nil, err
	}

	companion, ok := src.Companion(pluralSuffix)
	if !ok {
		return doc, nil, nil
	}
	data, err = readSource(companion)
	if err != nil {
		return nil, nil, err
	}
	plural, err := ParsePlural(companion.Name(), data, doc.Scope)
	if err != nil {
		return nil, nil, err
	}
	if plural.Culture != doc.Culture {
		return nil, nil, &DictionaryLoadError{
			Source: companion.Name(),
			Reason: "pluralized culture " + plural.Culture + " does not match " + doc.Culture,
		}
	}
	return doc, plural, nil
}

type documentHeader struct {
	Culture string `json:"culture" yaml:"culture"`
	Scope   string `json:"scope" yaml:"scope"`
}

// readHeader decodes only the culture and scope of a document.
func readHeader(src Source) (culture, scope string, err error) {
	data, err := readSource(src)
	if err != nil {
		return "", "", err
	}

	var h documentHeader
	switch strings.ToLower(path.Ext(src.Name())) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &h)
	default:
		err = json.Unmarshal(data, &h)
	}
	if err != nil {
		return "", "", &MalformedDocumentError{Source: src.Name(), Err: err}
	}

	culture = CanonicalCulture(h.Culture)
	if culture == "" {
		return "", "", &DictionaryLoadError{Source: src.Name(), Reason: "document does not declare a culture"}
	}
	scope = strings.TrimSpace(h.Scope)
	if scope == "" {
		scope = GlobalScope
	}
	return culture, scope, nil
}
