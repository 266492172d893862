package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:8089", cfg.Server.Address())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
nibl:
  base_url: http://localhost:9000/nibl
  timeout: 5
  concurrent_fetch: true
search:
  finders: [nibl, mock]
  resolution: 1080p
  output: json
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/nibl", cfg.Nibl.BaseURL)
	assert.Equal(t, 5, cfg.Nibl.Timeout)
	assert.True(t, cfg.Nibl.ConcurrentFetch)
	assert.Equal(t, []string{"nibl", "mock"}, cfg.Search.Finders)
	assert.Equal(t, "1080p", cfg.Search.Resolution)
	assert.Equal(t, OutputJSON, cfg.Search.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 8089, cfg.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "search:\n  resolution: 720p\n")
	t.Setenv("XDCCFIND_SEARCH_RESOLUTION", "480p")
	t.Setenv("XDCCFIND_NIBL_TIMEOUT", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "480p", cfg.Search.Resolution)
	assert.Equal(t, 12, cfg.Nibl.Timeout)
}

func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load(writeConfig(t, "search: [unclosed"))
	require.Error(t, err)
}

func TestLoad_RejectsUnknownFinder(t *testing.T) {
	_, err := Load(writeConfig(t, "search:\n  finders: [nibl, horriblesubs]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horriblesubs")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty base url", func(c *Config) { c.Nibl.BaseURL = " " }, true},
		{"zero timeout", func(c *Config) { c.Nibl.Timeout = 0 }, true},
		{"no finders", func(c *Config) { c.Search.Finders = nil }, true},
		{"mock finder", func(c *Config) { c.Search.Finders = []string{FinderMock} }, false},
		{"unknown output", func(c *Config) { c.Search.Output = "xml" }, true},
		{"plain output", func(c *Config) { c.Search.Output = OutputPlain }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
