package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petshop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
base_url: "https://api.petshop.example"
timeout: "10s"
storage:
  backend: file
  path: /tmp/petshop/session.json
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.petshop.example", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.GetTimeout())
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Enabled, "default de log habilitado")
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
base_url: "https://api.petshop.example"
storage:
  backend: file
  path: /tmp/session.json
`)

	t.Setenv("PETSHOP_BASE_URL", "https://hml.petshop.example")
	t.Setenv("PETSHOP_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://hml.petshop.example", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("PETSHOP_BASE_URL", "http://localhost:8600")
	t.Setenv("PETSHOP_STORAGE_PATH", "/tmp/session.json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8600", cfg.BaseURL)
	assert.Equal(t, "file", cfg.Storage.Backend, "envDefault aplicado")
}

func TestLoad_RedisBackend(t *testing.T) {
	path := writeConfig(t, `
base_url: "http://localhost:8600"
storage:
  backend: redis
  redis:
    addr: "localhost:6379"
    db: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Run("base_url obrigatória", func(t *testing.T) {
		_, err := Load(writeConfig(t, `timeout: "5s"`))
		assert.Error(t, err)
	})

	t.Run("backend desconhecido", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
base_url: "http://localhost:8600"
storage:
  backend: dynamodb
`))
		assert.Error(t, err)
	})

	t.Run("nível de log inválido", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
base_url: "http://localhost:8600"
storage:
  backend: file
  path: /tmp/s.json
logging:
  level: verbose
`))
		assert.Error(t, err)
	})
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("PETSHOP_BASE_URL", "http://localhost:8600")
	t.Setenv("PETSHOP_STORAGE_PATH", "/tmp/session.json")
	t.Setenv("PETSHOP_REDIS_DB", "não-é-número")

	_, err := Load("")
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "PETSHOP_REDIS_DB", fieldErr.EnvVar)
}

func TestGetTimeout_Default(t *testing.T) {
	assert.Equal(t, 30*time.Second, ClientConfig{}.GetTimeout())
	assert.Equal(t, 30*time.Second, ClientConfig{Timeout: "inválido"}.GetTimeout())
	assert.Equal(t, 500*time.Millisecond, ClientConfig{Timeout: "500ms"}.GetTimeout())
}
