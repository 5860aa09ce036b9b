package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultEngineURL, cfg.EngineURL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		yamlContent string
		wantConfig  *Config
		wantErr     bool
	}{
		{
			name: "full_config",
			yamlContent: `engineUrl: http://engine.local:3001
apiKey: secret
timeout: 10s`,
			wantConfig: &Config{
				EngineURL: "http://engine.local:3001",
				APIKey:    "secret",
				Timeout:   10 * time.Second,
			},
		},
		{
			name:        "partial_config_keeps_defaults",
			yamlContent: `apiKey: only-a-key`,
			wantConfig: &Config{
				EngineURL: DefaultEngineURL,
				APIKey:    "only-a-key",
				Timeout:   DefaultTimeout,
			},
		},
		{
			name:        "empty_file_keeps_defaults",
			yamlContent: ``,
			wantConfig: &Config{
				EngineURL: DefaultEngineURL,
				Timeout:   DefaultTimeout,
			},
		},
		{
			name:        "invalid_timeout_string",
			yamlContent: `timeout: soon`,
			wantErr:     true,
		},
		{
			name:        "invalid_yaml",
			yamlContent: `engineUrl: [unclosed`,
			wantErr:     true,
		},
		{
			name: "invalid_engine_url_scheme",
			yamlContent: `engineUrl: ftp://engine.local
timeout: 5s`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tt.yamlContent)

			cfg, err := Load(WithConfigPath(path))

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, cfg)
		})
	}
}

func TestWithConfigPathErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := Load(WithConfigPath(""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})

	t.Run("nonexistent path", func(t *testing.T) {
		t.Parallel()

		_, err := Load(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))

		require.Error(t, err)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	// No t.Parallel(): these cases mutate process environment.

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("MODUSNAP_ENGINE_URL", "http://env-engine:9000")
		t.Setenv("MODUSNAP_API_KEY", "env-key")
		t.Setenv("MODUSNAP_TIMEOUT", "7s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "http://env-engine:9000", cfg.EngineURL)
		assert.Equal(t, "env-key", cfg.APIKey)
		assert.Equal(t, 7*time.Second, cfg.Timeout)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("MODUSNAP_ENGINE_URL", "http://env-wins:9000")

		path := writeConfigFile(t, "engineUrl: http://file-engine:3001")

		cfg, err := Load(WithConfigPath(path))

		require.NoError(t, err)
		assert.Equal(t, "http://env-wins:9000", cfg.EngineURL)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid http",
			cfg:  Config{EngineURL: "http://127.0.0.1:3001", Timeout: time.Second},
		},
		{
			name: "valid https",
			cfg:  Config{EngineURL: "https://engine.example.com", Timeout: time.Second},
		},
		{
			name:    "missing host",
			cfg:     Config{EngineURL: "http://", Timeout: time.Second},
			wantErr: "has no host",
		},
		{
			name:    "bad scheme",
			cfg:     Config{EngineURL: "unix:///tmp/sock", Timeout: time.Second},
			wantErr: "must use http or https",
		},
		{
			name:    "zero timeout",
			cfg:     Config{EngineURL: "http://e", Timeout: 0},
			wantErr: "timeout must be positive",
		},
		{
			name:    "negative timeout",
			cfg:     Config{EngineURL: "http://e", Timeout: -time.Second},
			wantErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()

			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
