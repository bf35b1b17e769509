package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 2330, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "media", cfg.Storage.Bucket)
	assert.NotEmpty(t, cfg.DSN)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := `
port: 9000
env: production
site:
  base_url: https://example.com/
  title: Example
admin:
  email: owner@example.com
storage:
  region: auto
  access_key_id: key
  secret_access_key: secret
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL, "trailing slash is stripped")
	assert.Equal(t, "owner@example.com", cfg.Admin.Email)
	assert.True(t, cfg.Storage.Configured())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_EMAIL", "env@example.com")
	t.Setenv("FOLIO_DATABASE_DSN", "user:pass@tcp(db:3306)/folio?parseTime=True")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "env@example.com", cfg.Admin.Email)
	assert.Equal(t, "user:pass@tcp(db:3306)/folio?parseTime=True", cfg.DSN)
}

func TestStorageConfigured(t *testing.T) {
	assert.False(t, StorageConfig{}.Configured())
	assert.False(t, StorageConfig{Region: "auto"}.Configured())
	assert.True(t, StorageConfig{
		Region:          "auto",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}.Configured())
}
