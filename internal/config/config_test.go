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

	assert.Equal(t, 2342, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "folio", cfg.Database.Name)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
env: Production
jwt_secret: "  super-secret  "
allowed_origins:
  - "https://folio.example.com"
  - "  "
database:
  host: db.internal
  name: folio_prod
storage:
  s3:
    enable: true
    bucket: folio-media
    key_prefix: /media/
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://folio.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "folio_prod", cfg.Database.Name)
	assert.True(t, cfg.Storage.S3.Enable)
	assert.Equal(t, "media", cfg.Storage.S3.KeyPrefix)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [oops"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDSNValue(t *testing.T) {
	c := DatabaseConfig{DSN: "user:pw@tcp(h:3306)/db"}
	assert.Equal(t, "user:pw@tcp(h:3306)/db", c.DSNValue())

	c = DatabaseConfig{
		Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw",
		Name: "folio", Charset: "utf8mb4", Loc: "Local",
	}
	dsn := c.DSNValue()
	assert.Contains(t, dsn, "root:pw@tcp(127.0.0.1:3306)/folio?")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "parseTime=True")
}

func TestRedisURLValue(t *testing.T) {
	c := RedisConfig{URL: "redis://localhost:6379/0"}
	assert.Equal(t, "redis://localhost:6379/0", c.URLValue())

	c = RedisConfig{URL: "localhost:6380"}
	assert.Equal(t, "redis://localhost:6380", c.URLValue())

	c = RedisConfig{Host: "cache.internal", Port: 6379, DB: 2, Password: "pw", TLS: true}
	url := c.URLValue()
	assert.Contains(t, url, "rediss://")
	assert.Contains(t, url, "cache.internal:6379/2")
}
