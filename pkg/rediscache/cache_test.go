package rediscache_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/logger"
	"github.com/dmitrymomot/lexicon/pkg/rediscache"
)

var _ dictionary.Provider = (*rediscache.Cache)(nil)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Translations(context.Context, string, string) (map[string]dictionary.LocalizedString, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return map[string]dictionary.LocalizedString{"greeting": {Name: "greeting", Value: "Hello"}}, nil
}

func (p *countingProvider) Pluralized(context.Context, string, string) (map[string]dictionary.PluralizedString, error) {
	p.calls++
	return map[string]dictionary.PluralizedString{}, p.err
}

func (p *countingProvider) Constants(context.Context, string, string) (map[string]dictionary.LocalizedString, error) {
	p.calls++
	return map[string]dictionary.LocalizedString{}, p.err
}

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCache_UnavailableRedisFallsThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	next := &countingProvider{}
	c := rediscache.New(unreachableClient(t), next, rediscache.WithLogger(logger.New(logger.WithOutput(&buf))))
	ctx := context.Background()

	table, err := c.Translations(ctx, dictionary.GlobalScope, "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", table["greeting"].Value)
	assert.Equal(t, 1, next.calls)
	assert.Contains(t, buf.String(), "dictionary cache read failed")
	assert.Contains(t, buf.String(), "dictionary cache write failed")

	_, err = c.Pluralized(ctx, dictionary.GlobalScope, "en")
	require.NoError(t, err)
	_, err = c.Constants(ctx, dictionary.GlobalScope, "en")
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestCache_ProviderErrorsPropagate(t *testing.T) {
	t.Parallel()

	errDown := errors.New("store down")
	c := rediscache.New(unreachableClient(t), &countingProvider{err: errDown})

	_, err := c.Translations(context.Background(), dictionary.GlobalScope, "en")
	assert.ErrorIs(t, err, errDown)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	c := rediscache.New(unreachableClient(t), &countingProvider{})
	assert.Error(t, c.Invalidate(context.Background(), dictionary.GlobalScope, "en"))
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := rediscache.Connect(context.Background(), rediscache.Config{ConnectionURL: "not a url"})
	assert.ErrorIs(t, err, rediscache.ErrFailedToParseRedisConnString)
}
