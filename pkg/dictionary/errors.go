package dictionary

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("malformed dictionary document")
	ErrDictionaryFormat  = errors.New("invalid dictionary format")
	ErrDictionaryLoad    = errors.New("failed to load dictionary")

	ErrNilSource           = errors.New("dictionary source is nil")
	ErrNilCatalog          = errors.New("dictionary catalog is nil")
	ErrDuplicateDictionary = errors.New("duplicate dictionary for culture and scope")
	ErrFailedToOpenSource  = errors.New("failed to open dictionary source")
	ErrFailedToReadSource  = errors.New("failed to read dictionary source")
	ErrEmptyCulture        = errors.New("empty culture identifier")
	ErrInvalidInterval     = errors.New("interval start is greater than end")
	ErrUnknownResolution   = errors.New("unknown error resolution")
	ErrCatalogScanCanceled = errors.New("catalog scan canceled")
)

// MalformedDocumentError reports a document that is not valid structured data
// or whose top level is not an object.
type MalformedDocumentError struct {
	Source string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrMalformedDocument, e.Source)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedDocument, e.Source, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

func (e *MalformedDocumentError) Is(target error) bool { return target == ErrMalformedDocument }

// DictionaryFormatError reports a pluralization entry that cannot be parsed,
// typically an interval bound that is not an integer.
type DictionaryFormatError struct {
	Scope   string
	Culture string
	Key     string
	Token   string
	Reason  string
}

func (e *DictionaryFormatError) Error() string {
	msg := fmt.Sprintf("%s: scope %q, culture %q, key %q", ErrDictionaryFormat, e.Scope, e.Culture, e.Key)
	if e.Token != "" {
		msg += fmt.Sprintf(", token %q", e.Token)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *DictionaryFormatError) Is(target error) bool { return target == ErrDictionaryFormat }

// DictionaryLoadError reports a document set that parsed but cannot back the
// node, e.g. a pluralized companion declaring a different culture.
type DictionaryLoadError struct {
	Source string
	Reason string
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrDictionaryLoad, e.Source, e.Reason)
}

func (e *DictionaryLoadError) Is(target error) bool { return target == ErrDictionaryLoad }
