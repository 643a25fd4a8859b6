package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ADDR", "GIN_MODE", "STORAGE_DRIVER", "DATABASE_DSN", "JWT_SECRET",
		"ACCESS_TOKEN_EXPIRE_MINUTES", "CORS_ALLOWED_ORIGINS", "UPLOAD_DIR",
		"MAX_UPLOAD_SIZE", "ALLOWED_EXTENSIONS", "LOG_LEVEL", "SEED_DEMO",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "  s3cret ")

	env, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, ":8080", env.AppAddr)
	require.Equal(t, DriverMySQL, env.StorageDriver)
	require.Equal(t, "s3cret", env.JWTSecret.Value())
	require.Equal(t, 7*24*time.Hour, env.TokenTTL)
	require.Equal(t, int64(5<<20), env.MaxUploadSize)
	require.Equal(t, []string{".jpg", ".jpeg", ".png", ".webp"}, env.AllowedExts)
	require.Equal(t, "uploads/properties", env.UploadDir)
	require.False(t, env.SeedDemo)
}

func TestLoadEnvRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	_, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadEnvRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoadEnvReadsDotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("STORAGE_DRIVER")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nSTORAGE_DRIVER=memory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("STORAGE_DRIVER")
	})

	env, err := LoadEnv(path)
	require.NoError(t, err)
	require.Equal(t, "from-file", env.JWTSecret.Value())
	require.Equal(t, DriverMemory, env.StorageDriver)
}

func TestSecretIsRedacted(t *testing.T) {
	s := Secret("hunter2")
	require.Equal(t, "[REDACTED]", s.String())
	require.NotContains(t, fmt.Sprintf("%v %#v %s", s, s, s), "hunter2")
	require.Equal(t, "hunter2", s.Value())
}
