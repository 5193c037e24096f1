package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Culture records a culture identifier under the key "culture".
func Culture(culture string) slog.Attr {
	return slog.String("culture", culture)
}

// Scope records a dictionary scope under the key "scope".
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Key records a translation key under the key "key".
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// Source records the identifier of a dictionary document under the key "source".
// If source is empty, it returns an empty Attr.
func Source(source string) slog.Attr {
	if source == "" {
		return slog.Attr{}
	}
	return slog.String("source", source)
}

// Kind records a dictionary table kind (translations, pluralized, constants).
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
