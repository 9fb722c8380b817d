package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	minimal := []byte("mongodb:\n  uri: mongodb://localhost:27017\nkafka:\n  brokers:\n    - localhost:9092\n")
	require.NoError(t, os.WriteFile(path, minimal, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "files_manager", cfg.Mongo.Database)
	assert.Equal(t, "files.thumbnails", cfg.Kafka.ThumbnailTopic)
	assert.Equal(t, "users.welcome", cfg.Kafka.WelcomeTopic)
	assert.Equal(t, "files-worker-thumbnails", cfg.Kafka.ThumbnailGroup)
	assert.Equal(t, "files-worker-welcome", cfg.Kafka.WelcomeGroup)
	assert.NotEqual(t, cfg.Kafka.ThumbnailGroup, cfg.Kafka.WelcomeGroup)
	assert.Equal(t, 24*60*60, int(cfg.SessionTTL.Seconds()))
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	explicit := []byte(`app:
  port: 8080
kafka:
  brokers:
    - broker:9092
  thumbnail_group: tg
  welcome_group: wg
session:
  ttl_hours: 1
`)
	require.NoError(t, os.WriteFile(path, explicit, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "tg", cfg.Kafka.ThumbnailGroup)
	assert.Equal(t, "wg", cfg.Kafka.WelcomeGroup)
	assert.Equal(t, 1*60*60, int(cfg.SessionTTL.Seconds()))
}
