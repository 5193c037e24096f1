package mongostore_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lexicon/pkg/mongostore"
)

func TestConfig(t *testing.T) {
	t.Run("connection url is required", func(t *testing.T) {
		_, err := env.ParseAs[mongostore.Config]()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
		cfg, err := env.ParseAs[mongostore.Config]()
		require.NoError(t, err)
		assert.Equal(t, "lexicon", cfg.Database)
		assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, uint64(100), cfg.MaxPoolSize)
		assert.Equal(t, 3, cfg.RetryAttempts)
	})
}
