package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, HistoryLocal, cfg.HistoryBackend)
		assert.Equal(t, KVSQLite, cfg.KVBackend)
		assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModel)
		assert.Equal(t, "gemini-3-flash-preview", cfg.TextModel)
		assert.Equal(t, "gemini-3-pro-preview", cfg.ReasoningModel)
		assert.Equal(t, 2*time.Hour, cfg.SessionIdleTTL)
		assert.False(t, cfg.RemoteHistory())
	})

	t.Run("supabase backend requires credentials", func(t *testing.T) {
		v := viper.New()
		v.Set("HISTORY_BACKEND", "supabase")
		_, err := Load(v)
		assert.EqualError(t, err, "SUPABASE_URL is required")

		v.Set("SUPABASE_URL", "https://example.supabase.co")
		_, err = Load(v)
		assert.EqualError(t, err, "SUPABASE_SERVICE_KEY is required")

		v.Set("SUPABASE_SERVICE_KEY", "service")
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.True(t, cfg.RemoteHistory())
	})

	t.Run("unknown backends are rejected", func(t *testing.T) {
		v := viper.New()
		v.Set("KV_BACKEND", "etcd")
		_, err := Load(v)
		assert.EqualError(t, err, "unknown KV_BACKEND: etcd")
	})

	t.Run("cors origins", func(t *testing.T) {
		v := viper.New()
		v.Set("CORS_ALLOWED_ORIGINS", " http://localhost:5173, ,https://studio.example ")
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://localhost:5173", "https://studio.example"}, cfg.AllowedOrigins)
	})

	t.Run("redis address", func(t *testing.T) {
		v := viper.New()
		v.Set("KV_BACKEND", "redis")
		v.Set("REDIS_HOST", "cache")
		v.Set("REDIS_PORT", "6380")
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
	})
}
