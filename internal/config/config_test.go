package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Default(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 2, cfg.Precision)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_YAML(t *testing.T) {
	p := writeFile(t, "bccalc.yaml", "precision: 4\nlog_level: debug\nlog_format: json\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Config{Precision: 4, LogLevel: "debug", LogFormat: "json"}, cfg)
}

func TestLoad_YAMLPartial(t *testing.T) {
	p := writeFile(t, "bccalc.yml", "precision: 0\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Precision)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_TOML(t *testing.T) {
	p := writeFile(t, "bccalc.toml", "precision = 6\nlog_level = \"warn\"\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Config{Precision: 6, LogLevel: "warn", LogFormat: "text"}, cfg)
}

func TestLoad_ExpandEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("precision: 3\n"), 0o644))
	t.Setenv("BCCALC_TEST_DIR", dir)

	cfg, err := Load("$BCCALC_TEST_DIR/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Precision)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		p := writeFile(t, "bccalc.json", "{}")
		_, err := Load(p)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		p := writeFile(t, "bccalc.yaml", "precision: [1\n")
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})

	t.Run("malformed toml", func(t *testing.T) {
		p := writeFile(t, "bccalc.toml", "precision = \n")
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})

	t.Run("invalid values", func(t *testing.T) {
		p := writeFile(t, "bccalc.yaml", "precision: -1\n")
		_, err := Load(p)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Default(), false},
		{"zero precision", Config{Precision: 0, LogLevel: "error", LogFormat: "json"}, false},
		{"negative precision", Config{Precision: -1, LogLevel: "info", LogFormat: "text"}, true},
		{"unknown level", Config{Precision: 2, LogLevel: "loud", LogFormat: "text"}, true},
		{"empty level", Config{Precision: 2, LogLevel: "", LogFormat: "text"}, true},
		{"unknown format", Config{Precision: 2, LogLevel: "info", LogFormat: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
