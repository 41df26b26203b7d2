package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PYPIRCGEN_CONFIG", filepath.Join(t.TempDir(), "missing.ini"))
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	assert.Equal(t, ".pypirc", cfg.Filename)
	assert.Equal(t, 10*time.Second, cfg.GetProbeTimeout())
}

func TestLoadConfig_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nhost = 0.0.0.0\nport = 8080\n"), 0o644))
	t.Setenv("PYPIRCGEN_CONFIG", path)
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nhost = 0.0.0.0\nport = 8080\n"), 0o644))
	t.Setenv("PYPIRCGEN_CONFIG", path)
	t.Setenv("PORT", "9999")
	t.Setenv("HOST", "")

	cfg := LoadConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadConfig_InvalidPortFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = not-a-number\n"), 0o644))
	t.Setenv("PYPIRCGEN_CONFIG", path)
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestGetProbeTimeout_Invalid(t *testing.T) {
	cfg := &Config{ProbeTimeout: "soon"}
	assert.Equal(t, 10*time.Second, cfg.GetProbeTimeout())

	cfg.ProbeTimeout = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.GetProbeTimeout())
}

func TestLoadConfig_FlaskSectionFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[flask]\nhost = 0.0.0.0\nport = 5001\n"), 0o644))
	t.Setenv("PYPIRCGEN_CONFIG", path)
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "5001", cfg.Server.Port)
}

func TestLoadConfig_ServerSectionWinsOverFlask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[flask]\nhost = 0.0.0.0\nport = 5001\n\n[server]\nport = 8080\n"), 0o644))
	t.Setenv("PYPIRCGEN_CONFIG", path)
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestEffectiveLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("VERBOSE", "")
	assert.Equal(t, "warn", LoadConfig().EffectiveLogLevel())

	t.Setenv("VERBOSE", "true")
	assert.Equal(t, "debug", LoadConfig().EffectiveLogLevel())
}
