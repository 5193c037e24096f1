package dictionary

import (
	"context"
	"fmt"
)

// Status describes the outcome of a query. Ordinary misses are reported here
// instead of as errors.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Culture string `json:"culture"`
	Scope   string `json:"scope"`
}

// Result pairs a query result with its status.
type Result[T any] struct {
	Result T      `json:"result"`
	Status Status `json:"status"`
}

// Query is the client-facing surface of a Translator.
type Query struct {
	t *Translator
}

// Query returns the client-facing query surface.
func (t *Translator) Query() Query {
	return Query{t: t}
}

func (q Query) Translate(ctx context.Context, key, scope, culture string) Result[*LocalizedString] {
	scope, culture = q.t.normalize(scope, culture)
	return lookupResult(q.t.Translate(ctx, key, scope, culture), key, scope, culture)
}

func (q Query) TranslateFormat(ctx context.Context, key string, params []string, scope, culture string) Result[*LocalizedString] {
	scope, culture = q.t.normalize(scope, culture)
	return lookupResult(q.t.TranslateFormat(ctx, key, params, scope, culture), key, scope, culture)
}

func (q Query) TranslatePluralization(ctx context.Context, key string, quantity int, scope, culture string) Result[*LocalizedString] {
	scope, culture = q.t.normalize(scope, culture)
	return lookupResult(q.t.TranslatePluralization(ctx, key, quantity, scope, culture), key, scope, culture)
}

func (q Query) TranslateConstant(ctx context.Context, key, scope, culture string) Result[*LocalizedString] {
	scope, culture = q.t.normalize(scope, culture)
	return lookupResult(q.t.TranslateConstant(ctx, key, scope, culture), key, scope, culture)
}

// Dictionary returns the merged view of one table kind: KindTranslations,
// KindPluralized or KindConstants.
func (q Query) Dictionary(ctx context.Context, kind, scope, culture string) Result[any] {
	scope, culture = q.t.normalize(scope, culture)
	status := Status{Success: true, Culture: culture, Scope: scope}

	switch kind {
	case KindTranslations:
		return Result[any]{Result: q.t.GetDictionary(ctx, scope, culture), Status: status}
	case KindConstants:
		return Result[any]{Result: q.t.GetConstantsDictionary(ctx, scope, culture), Status: status}
	case KindPluralized:
		return Result[any]{Result: q.t.GetPluralizedDictionary(ctx, scope, culture), Status: status}
	default:
		status.Success = false
		status.Message = fmt.Sprintf("unknown dictionary kind %q", kind)
		return Result[any]{Status: status}
	}
}

func lookupResult(v *LocalizedString, key, scope, culture string) Result[*LocalizedString] {
	status := Status{Success: true, Culture: culture, Scope: scope}
	if v == nil || v.ResourceNotFound {
		status.Success = false
		status.Message = fmt.Sprintf("key %q not found", key)
	}
	return Result[*LocalizedString]{Result: v, Status: status}
}
