package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Ledger.Store)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Ledger.LockTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("ledger:\n  store: memory\n  max_retries: 5\nkafka:\n  brokers: \"k1:9092, k2:9092\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600))
	t.Setenv("LEDGER_MAX_RETRIES", "7")
	t.Setenv("LEDGER_RETRY_BACKOFF", "50ms")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Ledger.Store)
	assert.Equal(t, 7, cfg.Ledger.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Ledger.RetryBackoff)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers())
}
