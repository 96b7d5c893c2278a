package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("CHARGEHIVE_API_URL", "https://api.chargehive.example/api")
		t.Setenv("CHARGEHIVE_STATE_PATH", t.TempDir())
		t.Setenv("CHARGEHIVE_TIMEOUT", "10s")
		t.Setenv("CHARGEHIVE_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://api.chargehive.example/api", cfg.APIBaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("missing API URL", func(t *testing.T) {
		t.Setenv("CHARGEHIVE_API_URL", "")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CHARGEHIVE_API_URL is required")
	})

	t.Run("production env", func(t *testing.T) {
		t.Setenv("CHARGEHIVE_API_URL", "https://api.chargehive.example/api")
		t.Setenv("CHARGEHIVE_STATE_PATH", t.TempDir())
		t.Setenv("CHARGEHIVE_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"empty defaults to 30s", "", 30 * time.Second},
		{"valid duration", "5s", 5 * time.Second},
		{"minutes", "2m", 2 * time.Minute},
		{"invalid falls back", "soon", 30 * time.Second},
		{"negative falls back", "-1s", 30 * time.Second},
		{"zero falls back", "0s", 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTimeout(tt.input))
		})
	}
}

func TestLoadWithFile_RealEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := dir + "/.env"
	content := "CHARGEHIVE_API_URL=https://envfile.example/api\nCHARGEHIVE_LOG_LEVEL=warn\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// godotenv.Load does NOT overwrite existing env vars, so unset them first.
	for _, key := range []string{"CHARGEHIVE_API_URL", "CHARGEHIVE_LOG_LEVEL"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	t.Setenv("CHARGEHIVE_STATE_PATH", dir)

	cfg, err := LoadWithFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://envfile.example/api", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadWithFile_NonExistentFile(t *testing.T) {
	// Should not fail - just proceeds with env vars.
	t.Setenv("CHARGEHIVE_API_URL", "https://api.chargehive.example/api")
	t.Setenv("CHARGEHIVE_STATE_PATH", t.TempDir())

	cfg, err := LoadWithFile("/nonexistent/.env")
	require.NoError(t, err)
	assert.Equal(t, "https://api.chargehive.example/api", cfg.APIBaseURL)
}

func TestLoadPreferences(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		prefs, err := LoadPreferences(t.TempDir() + "/prefs.toml")
		require.NoError(t, err)
		assert.Equal(t, DefaultLatitude, prefs.DefaultLatitude)
		assert.Equal(t, DefaultLongitude, prefs.DefaultLongitude)
		assert.Equal(t, "card", prefs.PaymentMethod)
		assert.Equal(t, 10, prefs.TransactionLimit)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := t.TempDir() + "/prefs.toml"
		require.NoError(t, os.WriteFile(path, []byte("payment_method = \"token\"\n"), 0o644))

		prefs, err := LoadPreferences(path)
		require.NoError(t, err)
		assert.Equal(t, "token", prefs.PaymentMethod)
		assert.Equal(t, 10, prefs.TransactionLimit)
		assert.Equal(t, DefaultLatitude, prefs.DefaultLatitude)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := t.TempDir() + "/prefs.toml"
		require.NoError(t, os.WriteFile(path, []byte("payment_method = [broken\n"), 0o644))

		_, err := LoadPreferences(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error loading preferences file")
	})

	t.Run("invalid payment method", func(t *testing.T) {
		path := t.TempDir() + "/prefs.toml"
		require.NoError(t, os.WriteFile(path, []byte("payment_method = \"barter\"\n"), 0o644))

		_, err := LoadPreferences(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment_method")
	})

	t.Run("invalid transaction limit", func(t *testing.T) {
		path := t.TempDir() + "/prefs.toml"
		require.NoError(t, os.WriteFile(path, []byte("transaction_limit = -2\n"), 0o644))

		_, err := LoadPreferences(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transaction_limit")
	})
}
