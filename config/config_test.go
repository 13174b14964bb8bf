package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/submodsync/config"
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submodsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("should work from a bare checkout", func(t *testing.T) {
		t.Parallel()

		// when
		cfg := config.Default()

		// then
		assert.Equal(t, ".gitmodules", cfg.Manifest)
		assert.Equal(t, ".", cfg.Workspace)
		assert.Equal(t, 6, cfg.Concurrency)
		assert.Equal(t, 30*time.Second, time.Duration(cfg.Timeout))
		assert.Equal(t, string(entities.RetryNone), cfg.Retry.Strategy)
		assert.NotEmpty(t, cfg.Categories)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should fill omitted fields with defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "manifest: custom.gitmodules\n")

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "custom.gitmodules", cfg.Manifest)
		assert.Equal(t, 6, cfg.Concurrency)
		assert.Equal(t, 30*time.Second, time.Duration(cfg.Timeout))
	})

	t.Run("should parse duration strings and retry settings", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
manifest: .gitmodules
timeout: 5s
concurrency: 12
retry:
  strategy: exponential
  base_delay: 250ms
  max_attempts: 3
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, time.Duration(cfg.Timeout))
		assert.Equal(t, 12, cfg.Concurrency)
		assert.Equal(t, "exponential", cfg.Retry.Strategy)
		assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.Retry.BaseDelay))
		assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	})

	t.Run("should parse custom category rules", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
categories:
  - prefix: vendor/
    name: vendor
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		require.Len(t, cfg.Categories, 1)
		assert.Equal(t, "vendor/", cfg.Categories[0].Prefix)
		assert.Equal(t, "vendor", cfg.Categories[0].Name)
	})

	t.Run("should reject an out-of-range concurrency", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "concurrency: 500\n")

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "concurrency")
	})

	t.Run("should reject an invalid duration", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "timeout: fast\n")

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid duration")
	})

	t.Run("should reject an unknown retry strategy", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
retry:
  strategy: aggressive
  max_attempts: 2
`)

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "retry strategy")
	})

	t.Run("should reject a retrying strategy without a base delay", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
retry:
  strategy: fixed
  max_attempts: 2
`)

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base_delay")
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestConfigRuntimeContext(t *testing.T) {
	t.Parallel()

	t.Run("should convert file settings into the runtime context", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Manifest = "m.gitmodules"
		cfg.Workspace = "/workspace"
		cfg.Retry.Strategy = string(entities.RetryFixed)
		cfg.Retry.MaxAttempts = 2

		// when
		runtime := cfg.RuntimeContext()

		// then
		assert.Equal(t, "m.gitmodules", runtime.ManifestPath)
		assert.Equal(t, "/workspace", runtime.WorkspaceRoot)
		assert.Equal(t, entities.RetryFixed, runtime.Retry.Strategy)
		assert.Equal(t, 2, runtime.Retry.MaxAttempts)
	})
}
