package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.False(t, cfg.GetDebug())
	assert.False(t, cfg.GetExitOnError())
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "communicator.json")
	content := `{
  "baseUrl": "https://api.example.com",
  "headers": {"Accept": "application/json"},
  "debug": true,
  "maxRedirects": 3
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, map[string]string{"Accept": "application/json"}, cfg.Headers)
	assert.True(t, cfg.GetDebug())
	assert.Equal(t, 3, cfg.MaxRedirects)
	assert.Equal(t, "error", cfg.LogLevel, "unset fields keep defaults")
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "communicator.yaml")
	content := `baseUrl: https://api.example.com
headers:
  Accept: application/json
exitOnError: true
rateLimit: 2.5
validateSSL: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.True(t, cfg.GetExitOnError())
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.False(t, cfg.GetValidateSSL())
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "communicator.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("finds yml file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "communicator.yml"), []byte("baseUrl: http://localhost:8080\n"), 0644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	})
}

func TestMerge(t *testing.T) {
	base := &Config{
		BaseURL:      "https://a.example.com",
		Headers:      map[string]string{"Accept": "application/json", "X-Team": "core"},
		MaxRedirects: 10,
		Debug:        BoolPtr(true),
	}
	override := &Config{
		BaseURL: "https://b.example.com",
		Headers: map[string]string{"X-Team": "edge"},
		Debug:   BoolPtr(false),
	}

	merged := base.Merge(override)

	assert.Equal(t, "https://b.example.com", merged.BaseURL)
	assert.Equal(t, 10, merged.MaxRedirects)
	assert.False(t, merged.GetDebug())
	assert.Equal(t, map[string]string{"Accept": "application/json", "X-Team": "edge"}, merged.Headers)
	assert.Equal(t, "core", base.Headers["X-Team"], "source config must not change")

	assert.Same(t, base, base.Merge(nil))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("API_HOST", "api.example.com")
	t.Setenv("API_TOKEN", "s3cret")

	cfg := &Config{
		BaseURL: "https://${API_HOST}",
		Headers: map[string]string{"Authorization": "Bearer ${API_TOKEN}"},
	}

	expanded := cfg.ExpandEnv()
	assert.Equal(t, "https://api.example.com", expanded.BaseURL)
	assert.Equal(t, "Bearer s3cret", expanded.Headers["Authorization"])
	assert.Equal(t, "Bearer ${API_TOKEN}", cfg.Headers["Authorization"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid", &Config{BaseURL: "https://api.example.com"}, false},
		{"missing base url", &Config{}, true},
		{"negative redirects", &Config{BaseURL: "https://x", MaxRedirects: -1}, true},
		{"negative rate", &Config{BaseURL: "https://x", RateLimit: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveConfig_RoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communicator.yaml")
	cfg := DefaultConfig()
	cfg.BaseURL = "https://api.example.com"
	cfg.Headers = map[string]string{"Accept": "application/json"}

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
