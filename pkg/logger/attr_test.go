package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/lexicon/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDictionaryAttrs(t *testing.T) {
	assert.Equal(t, slog.String("culture", "en-US"), logger.Culture("en-US"))
	assert.Equal(t, slog.String("scope", "global"), logger.Scope("global"))
	assert.Equal(t, slog.String("key", "greeting"), logger.Key("greeting"))
	assert.Equal(t, slog.String("kind", "constants"), logger.Kind("constants"))
	assert.Equal(t, slog.String("component", "registry"), logger.Component("registry"))
}

func TestSource(t *testing.T) {
	assert.Equal(t, slog.String("source", "en.json"), logger.Source("en.json"))
	assert.True(t, logger.Source("").Equal(slog.Attr{}))
}
