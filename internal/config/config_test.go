package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.RenderWait)
	assert.Equal(t, "none", cfg.Storage.Driver)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9000"
api_base_url: "http://backend.internal/api"
api_timeout: 4s
log_level: debug
storage:
  driver: local
  local_url_prefix: /media
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_BASE_URL", "")
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("RENDER_WAIT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.HTTPAddr, "env wins over file")
	assert.Equal(t, "http://backend.internal/api", cfg.APIBaseURL)
	assert.Equal(t, 4*time.Second, cfg.APITimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.RenderWait)
	assert.Equal(t, "/media", cfg.Storage.LocalURLPrefix)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "API_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))

	bad := cfg
	bad.APIBaseURL = "not a url"
	assert.Error(t, Validate(bad))

	s3 := cfg
	s3.Storage.Driver = "s3"
	assert.Error(t, Validate(s3), "s3 needs region and bucket")
	s3.Storage.S3Region, s3.Storage.S3Bucket = "eu-central-1", "media"
	assert.NoError(t, Validate(s3))
}
