package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ADDR", "")
	t.Setenv("USER_LOOKUP_CONCURRENCY", "")

	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, 8, env.UserLookupConcurrency)
	assert.NotEmpty(t, env.CORSOrigins)
}

func TestLoadEnvFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_addr: ":9000"
mongo_database: blogs_db
scraper_url: http://scraper.local
cors_allowed_origins:
  - https://admin.example.com
user_lookup_concurrency: 4
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_ADDR", ":9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("USER_LOOKUP_CONCURRENCY", "")

	env := LoadEnv()
	assert.Equal(t, ":9100", env.AppAddr, "env var wins over file")
	assert.Equal(t, "blogs_db", env.MongoDatabase)
	assert.Equal(t, "http://scraper.local", env.ScraperURL)
	assert.Equal(t, []string{"https://admin.example.com"}, env.CORSOrigins)
	assert.Equal(t, 4, env.UserLookupConcurrency)
}

func TestLoadEnvClampsConcurrency(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("USER_LOOKUP_CONCURRENCY", "0")

	env := LoadEnv()
	assert.Equal(t, 1, env.UserLookupConcurrency)
}

func TestLoadEnvSplitsOrigins(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	env := LoadEnv()
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, env.CORSOrigins)
}

func TestLoadEnvEmptyOriginsKeepDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")

	env := LoadEnv()
	assert.Equal(t, defaultEnv().CORSOrigins, env.CORSOrigins)
}

func TestLoadEnvEmptyOriginsInFileKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cors_allowed_origins: []\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	env := LoadEnv()
	assert.Equal(t, defaultEnv().CORSOrigins, env.CORSOrigins)
}

func TestValidateRefusesDefaultSecretInRelease(t *testing.T) {
	env := defaultEnv()
	assert.ErrorIs(t, env.Validate(gin.ReleaseMode), ErrInsecureJWTSecret)
	assert.NoError(t, env.Validate(gin.DebugMode))
	assert.NoError(t, env.Validate(gin.TestMode))

	env.JWTSecret = "  "
	assert.ErrorIs(t, env.Validate(gin.ReleaseMode), ErrInsecureJWTSecret)

	env.JWTSecret = "s3cr3t-from-vault"
	assert.NoError(t, env.Validate(gin.ReleaseMode))
}
