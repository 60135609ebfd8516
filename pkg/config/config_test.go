package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/slack-scim/pkg/config"
)

func embedded(value string) commoncfg.SourceRef {
	return commoncfg.SourceRef{
		Source: commoncfg.EmbeddedSourceValue,
		Value:  value,
	}
}

func TestResolve(t *testing.T) {
	baseURL := embedded(`"https://proxy.example.com/scim/v1"`)

	tests := []struct {
		name          string
		cfg           config.Config
		expected      *config.Params
		expectError   bool
		errorContains string
	}{
		{
			name:     "Token only",
			cfg:      config.Config{Token: embedded("xoxp-123-123")},
			expected: &config.Params{Token: "xoxp-123-123"},
		},
		{
			name:     "Quoted base URL",
			cfg:      config.Config{BaseURL: &baseURL, Token: embedded(`"xoxp-123-123"`)},
			expected: &config.Params{BaseURL: "https://proxy.example.com/scim/v1", Token: "xoxp-123-123"},
		},
		{
			name:          "Empty token",
			cfg:           config.Config{Token: embedded("  ")},
			expectError:   true,
			errorContains: "value is empty",
		},
		{
			name: "Unknown TLS version",
			cfg: config.Config{
				Token: embedded("xoxp-123-123"),
				TLS:   &config.TLS{MinVersion: "0.9"},
			},
			expectError:   true,
			errorContains: "unknown TLS version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := tt.cfg.Resolve()

			if tt.expectError {
				assert.Error(t, err)

				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}

				assert.Nil(t, params)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, params)
			}
		})
	}
}

func TestResolveRejectsMalformedURL(t *testing.T) {
	baseURL := embedded("not a url at all")
	cfg := config.Config{BaseURL: &baseURL, Token: embedded("xoxp-123-123")}

	_, err := cfg.Resolve()
	assert.ErrorContains(t, err, "Invalid configuration")
}

func TestResolveTLS(t *testing.T) {
	cfg := config.Config{
		Token: embedded("xoxp-123-123"),
		TLS:   &config.TLS{MinVersion: "1.3"},
	}

	params, err := cfg.Resolve()
	require.NoError(t, err)
	require.NotNil(t, params.TLS)
	assert.Equal(t, uint16(0x0304), params.TLS.MinVersion)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("token:\n  source: embedded\n  value: xoxp-123-123\ndebug: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Nil(t, cfg.BaseURL)

	params, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "xoxp-123-123", params.Token)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "Failed reading configuration")
}
