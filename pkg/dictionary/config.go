package dictionary

// Config holds translator settings read from the environment
// (github.com/caarlos0/env tags).
type Config struct {
	Dir             string `env:"DICTIONARY_DIR" envDefault:"./dictionaries"`
	DefaultCulture  string `env:"DICTIONARY_DEFAULT_CULTURE" envDefault:"en"`
	DefaultScope    string `env:"DICTIONARY_DEFAULT_SCOPE" envDefault:"global"`
	ErrorResolution string `env:"DICTIONARY_ERROR_RESOLUTION" envDefault:"key"`
	PluralSuffix    string `env:"DICTIONARY_PLURAL_SUFFIX" envDefault:".plural"`
	MergeCacheSize  int    `env:"DICTIONARY_MERGE_CACHE_SIZE" envDefault:"128"`
	LogMissing      bool   `env:"DICTIONARY_LOG_MISSING" envDefault:"false"`
}

// Options converts the configuration into translator options.
func (c Config) Options() ([]Option, error) {
	resolution, err := ParseErrorResolution(c.ErrorResolution)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithDefaultCulture(c.DefaultCulture),
		WithDefaultScope(c.DefaultScope),
		WithErrorResolution(resolution),
		WithPluralSuffix(c.PluralSuffix),
		WithMergeCacheSize(c.MergeCacheSize),
		WithMissingTranslationsLogging(c.LogMissing),
	}, nil
}
