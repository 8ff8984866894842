package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Config reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SECJOBCOACH_DB", "SECJOBCOACH_LOG_LEVEL", "SECJOBCOACH_LOG_FILE",
		"SECJOBCOACH_DUE_LIMIT", "SECJOBCOACH_TZ",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 12, cfg.DueLimit)
	assert.Empty(t, cfg.DBPath)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECJOBCOACH_DB", "/tmp/x.db")
	t.Setenv("SECJOBCOACH_LOG_LEVEL", "debug")
	t.Setenv("SECJOBCOACH_DUE_LIMIT", "20")
	t.Setenv("SECJOBCOACH_TZ", "UTC")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{DBPath: "/tmp/x.db", LogLevel: "debug", DueLimit: 20, TZ: "UTC"}, cfg)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SECJOBCOACH_DUE_LIMIT=7\nSECJOBCOACH_LOG_LEVEL=warn\n"), 0o600))
	t.Setenv("SECJOBCOACH_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("SECJOBCOACH_DUE_LIMIT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.DueLimit)
	assert.Equal(t, "error", cfg.LogLevel, "process environment wins over the file")
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"not a number", "SECJOBCOACH_DUE_LIMIT", "lots"},
		{"zero limit", "SECJOBCOACH_DUE_LIMIT", "0"},
		{"bad zone", "SECJOBCOACH_TZ", "Mars/Olympus_Mons"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestDueLimitOrDefault(t *testing.T) {
	assert.Equal(t, 10, Config{}.DueLimitOrDefault())
	assert.Equal(t, 3, Config{DueLimit: 3}.DueLimitOrDefault())
}
