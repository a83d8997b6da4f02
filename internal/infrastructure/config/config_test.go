package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
database:
  driver: sqlite
  database: deskflow.db
devtask:
  reject_duplicate_conversion: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("DESKFLOW_KAFKA_BROKERS", "kafka:9092")

	cfg, err := Load("test", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.DevTask.RejectDuplicateConversion)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, "deskflow.lifecycle", cfg.Kafka.Topic)
	assert.Same(t, cfg, Get())
}

func TestLoad_MissingFileIsReported(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
