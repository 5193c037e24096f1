package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/dictionary/api"
	"github.com/dmitrymomot/lexicon/pkg/logger"
)

const testdataDir = "../../pkg/dictionary/testdata/dictionaries"

type recordingImporter struct {
	mu      sync.Mutex
	docs    []string
	plurals int
	err     error
}

func (r *recordingImporter) Import(_ context.Context, doc *dictionary.Document, plural *dictionary.PluralDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.docs = append(r.docs, doc.Scope+"/"+doc.Culture)
	if plural != nil {
		r.plurals++
	}
	return nil
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := env.ParseAs[config]()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "none", cfg.Store)
	assert.False(t, cfg.CacheStore)
	assert.False(t, cfg.SeedStore)
	assert.Equal(t, "en", cfg.Dictionary.DefaultCulture)
	assert.Equal(t, "global", cfg.Dictionary.DefaultScope)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DICTIONARY_STORE", "postgres")
	t.Setenv("DICTIONARY_STORE_SEED", "true")
	t.Setenv("DICTIONARY_DIR", testdataDir)

	cfg, err := env.ParseAs[config]()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store)
	assert.True(t, cfg.SeedStore)
	assert.Equal(t, testdataDir, cfg.Dictionary.Dir)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		b, err := openBackend(ctx, config{Store: "none"}, logger.Discard())
		require.NoError(t, err)
		defer b.close()

		assert.IsType(t, dictionary.NullProvider{}, b.provider)
		assert.Nil(t, b.importer)
		assert.Empty(t, b.checks)
	})

	t.Run("empty means none", func(t *testing.T) {
		b, err := openBackend(ctx, config{CacheStore: true}, logger.Discard())
		require.NoError(t, err)
		defer b.close()
		assert.IsType(t, dictionary.NullProvider{}, b.provider)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := openBackend(ctx, config{Store: "sqlite"}, logger.Discard())
		require.ErrorIs(t, err, ErrUnknownStore)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	catalog, err := dictionary.NewDirCatalog(ctx, testdataDir)
	require.NoError(t, err)

	t.Run("imports every document", func(t *testing.T) {
		imp := &recordingImporter{}
		var invalidated []string
		b := &backend{
			importer: imp,
			invalidate: func(_ context.Context, scope, culture string) error {
				invalidated = append(invalidated, scope+"/"+culture)
				return nil
			},
		}

		require.NoError(t, seed(ctx, catalog, b, "", logger.Discard()))
		assert.ElementsMatch(t, []string{"checkout/en", "global/en", "global/en-US"}, imp.docs)
		assert.Equal(t, imp.docs, invalidated)
		assert.Positive(t, imp.plurals)
	})

	t.Run("import error aborts", func(t *testing.T) {
		boom := errors.New("boom")
		b := &backend{importer: &recordingImporter{err: boom}}
		require.ErrorIs(t, seed(ctx, catalog, b, "", logger.Discard()), boom)
	})

	t.Run("no importer", func(t *testing.T) {
		require.NoError(t, seed(ctx, catalog, &backend{}, "", logger.Discard()))
	})
}

func TestSetup(t *testing.T) {
	t.Setenv("DICTIONARY_DIR", testdataDir)
	cfg, err := env.ParseAs[config]()
	require.NoError(t, err)

	tr, b, err := setup(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer b.close()

	srv := httptest.NewServer(api.NewHandler(tr.Query()).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/translate?key=color&culture=en-US")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSetup_MissingDir(t *testing.T) {
	cfg := config{Dictionary: dictionary.Config{Dir: t.TempDir() + "/missing"}}
	_, _, err := setup(context.Background(), cfg, logger.Discard())
	require.Error(t, err)
}

func TestSetup_BadErrorResolution(t *testing.T) {
	t.Setenv("DICTIONARY_DIR", testdataDir)
	t.Setenv("DICTIONARY_ERROR_RESOLUTION", "explode")
	cfg, err := env.ParseAs[config]()
	require.NoError(t, err)

	_, _, err = setup(context.Background(), cfg, logger.Discard())
	require.Error(t, err)
}
