package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_STRING", "postgres://localhost:5432/vertex")
	t.Setenv("WEBHOOK_SECRET", "shpss_secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("HTTP_PORT", "")
		t.Setenv("SIGNATURE_ENCODING", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTP_PORT)
		assert.Equal(t, "base64", cfg.SIGNATURE_ENCODING)
		assert.Empty(t, cfg.KAFKA_BROKERS)
	})

	t.Run("explicit values", func(t *testing.T) {
		setRequired(t)
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("SIGNATURE_ENCODING", "hex")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("KAFKA_TOPIC", "insurance.manifests")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTP_PORT)
		assert.Equal(t, "hex", cfg.SIGNATURE_ENCODING)
		assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.KAFKA_BROKERS)
		assert.Equal(t, "insurance.manifests", cfg.KAFKA_TOPIC)
	})

	t.Run("missing db string", func(t *testing.T) {
		t.Setenv("DB_STRING", "")
		t.Setenv("WEBHOOK_SECRET", "shpss_secret")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("missing webhook secret", func(t *testing.T) {
		t.Setenv("DB_STRING", "postgres://localhost:5432/vertex")
		t.Setenv("WEBHOOK_SECRET", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown signature encoding", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SIGNATURE_ENCODING", "base32")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
