package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ErrorResolution selects what a lookup returns when no dictionary in the
// fallback chain has the key.
type ErrorResolution int

const (
	// ReturnKey echoes the key as the value with ResourceNotFound set.
	ReturnKey ErrorResolution = iota
	// ReturnNull returns a nil result.
	ReturnNull
)

func (r ErrorResolution) String() string {
	switch r {
	case ReturnKey:
		return "key"
	case ReturnNull:
		return "null"
	default:
		return fmt.Sprintf("ErrorResolution(%d)", int(r))
	}
}

// ParseErrorResolution parses "key" or "null" (case-insensitive; the
// "return_" prefix is accepted).
func ParseErrorResolution(s string) (ErrorResolution, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "return_") {
	case "key", "":
		return ReturnKey, nil
	case "null", "nil":
		return ReturnNull, nil
	default:
		return ReturnKey, fmt.Errorf("%w: %q", ErrUnknownResolution, s)
	}
}

// LookupError describes a lookup that ended without a resolution.
type LookupError struct {
	Key     string         `json:"key"`
	Scope   string         `json:"scope"`
	Culture string         `json:"culture"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorCallback receives every unresolved lookup.
type ErrorCallback func(ctx context.Context, e LookupError)

// Option is a function that configures a Translator instance.
type Option func(*Translator)

// WithDefaultCulture sets the culture used when a lookup passes an empty one.
func WithDefaultCulture(culture string) Option {
	return func(t *Translator) {
		if c := CanonicalCulture(culture); c != "" {
			t.defaultCulture = c
		}
	}
}

// WithDefaultScope sets the scope used when a lookup passes an empty one.
// The default resolver also falls back to it before GlobalScope.
func WithDefaultScope(scope string) Option {
	return func(t *Translator) {
		if s := strings.TrimSpace(scope); s != "" {
			t.defaultScope = s
		}
	}
}

// WithErrorResolution sets the miss policy. Default is ReturnKey.
func WithErrorResolution(r ErrorResolution) Option {
	return func(t *Translator) {
		t.resolution = r
	}
}

// WithErrorCallback registers a callback invoked for every unresolved lookup.
func WithErrorCallback(cb ErrorCallback) Option {
	return func(t *Translator) {
		t.onError = cb
	}
}

// WithLogger provides a customizable logger for the translator and its nodes.
// If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging controls whether unresolved lookups are
// logged. Default is false to avoid excessive logging.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.logMissing = log
	}
}

// WithResolver sets the culture and scope fallback resolver.
// Default is a LanguageResolver ending at the default culture.
func WithResolver(r Resolver) Option {
	return func(t *Translator) {
		if r != nil {
			t.resolver = r
		}
	}
}

// WithRegistry shares a node registry between translators.
func WithRegistry(r *Registry) Option {
	return func(t *Translator) {
		if r != nil {
			t.registry = r
		}
	}
}

// WithProvider sets the persistent-store provider consulted after the file
// chain. Default is NullProvider.
func WithProvider(p Provider) Option {
	return func(t *Translator) {
		if p != nil {
			t.provider = p
		}
	}
}

// WithPluralSuffix sets the suffix locating pluralized companion documents.
func WithPluralSuffix(suffix string) Option {
	return func(t *Translator) {
		if suffix != "" {
			t.pluralSuffix = suffix
		}
	}
}

// WithMergeCacheSize bounds the number of memoized merged views.
// Zero disables memoization.
func WithMergeCacheSize(n int) Option {
	return func(t *Translator) {
		if n >= 0 {
			t.mergeCacheSize = n
		}
	}
}
