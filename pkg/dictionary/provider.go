package dictionary

import "context"

// Provider serves dictionary tables for a (scope, culture) pair from a
// persistent store. Implementations live outside this package; the
// translator consults a provider only after its file chain misses.
type Provider interface {
	Translations(ctx context.Context, scope, culture string) (map[string]LocalizedString, error)
	Pluralized(ctx context.Context, scope, culture string) (map[string]PluralizedString, error)
	Constants(ctx context.Context, scope, culture string) (map[string]LocalizedString, error)
}

// NullProvider is the default provider. It has no entries.
type NullProvider struct{}

func (NullProvider) Translations(context.Context, string, string) (map[string]LocalizedString, error) {
	return map[string]LocalizedString{}, nil
}

func (NullProvider) Pluralized(context.Context, string, string) (map[string]PluralizedString, error) {
	return map[string]PluralizedString{}, nil
}

func (NullProvider) Constants(context.Context, string, string) (map[string]LocalizedString, error) {
	return map[string]LocalizedString{}, nil
}
