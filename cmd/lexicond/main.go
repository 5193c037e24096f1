// Command lexicond serves dictionary lookups over HTTP.
//
// Configuration is read from the environment, optionally seeded from a .env
// file in the working directory. See config for the variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/dictionary/api"
	"github.com/dmitrymomot/lexicon/pkg/httpserver"
	"github.com/dmitrymomot/lexicon/pkg/logger"
)

type config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"json"`
	Store      string `env:"DICTIONARY_STORE" envDefault:"none"`
	CacheStore bool   `env:"DICTIONARY_STORE_CACHE" envDefault:"false"`
	SeedStore  bool   `env:"DICTIONARY_STORE_SEED" envDefault:"false"`

	Dictionary dictionary.Config
	HTTP       httpserver.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg, err := env.ParseAs[config]()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithService("lexicond"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, b, err := setup(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.Health(log))
	r.Get("/readyz", httpserver.Health(log, b.checks...))
	r.Mount("/", api.NewHandler(tr.Query(), api.WithLogger(log)).Routes())

	if err := httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// setup indexes the dictionary directory, opens the configured store and
// builds the translator.
func setup(ctx context.Context, cfg config, log *slog.Logger) (*dictionary.Translator, *backend, error) {
	catalog, err := dictionary.NewDirCatalog(ctx, cfg.Dictionary.Dir,
		dictionary.WithCatalogLogger(log),
		dictionary.WithCatalogPluralSuffix(cfg.Dictionary.PluralSuffix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("index dictionaries: %w", err)
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SeedStore {
		if err := seed(ctx, catalog, b, cfg.Dictionary.PluralSuffix, log); err != nil {
			b.close()
			return nil, nil, err
		}
	}

	opts, err := cfg.Dictionary.Options()
	if err != nil {
		b.close()
		return nil, nil, fmt.Errorf("dictionary options: %w", err)
	}
	opts = append(opts, dictionary.WithLogger(log), dictionary.WithProvider(b.provider))

	tr, err := dictionary.New(catalog, opts...)
	if err != nil {
		b.close()
		return nil, nil, err
	}
	return tr, b, nil
}
