package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("APP_NAME", "jobboard")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SYNC_PAGE_SIZE", "25")
	t.Setenv("CLEANUP_LOCK_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jobboard", cfg.App.AppName)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int32(25), cfg.Sync.PageSize)
	assert.Equal(t, 2*time.Minute, cfg.Cleanup.LockTTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 50, cfg.Match.MaxPageScan)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
}

func TestLoad_ReadsDotenvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	content := "APP_NAME=from-file\nAPP_ENV=development\nHTTP_PORT=9000\nSTORAGE_BUCKET=cvs\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.App.AppName)
	assert.Equal(t, "9000", cfg.App.HTTPPort)
	assert.Equal(t, "cvs", cfg.Storage.Bucket)
	assert.False(t, cfg.IsProduction())
}
