package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhook = "https://discord.com/api/webhooks/123/token"

func TestParseColor(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    int
		expectedErr string
	}{
		{name: "hex with 0x prefix", input: "0x5865F2", expected: 0x5865F2},
		{name: "hex with hash prefix", input: "#ED4245", expected: 0xED4245},
		{name: "decimal", input: "5793266", expected: 5793266},
		{name: "surrounding spaces", input: "  0x57F287 ", expected: 0x57F287},
		{name: "zero", input: "0", expected: 0},
		{name: "max", input: "0xFFFFFF", expected: 0xFFFFFF},
		{name: "too large", input: "0x1000000", expectedErr: "outside the RGB range"},
		{name: "negative", input: "-1", expectedErr: "outside the RGB range"},
		{name: "garbage", input: "blurple", expectedErr: "cannot parse"},
		{name: "empty", input: "", expectedErr: "cannot parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseColor(tt.input)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedErr string
	}{
		{
			name:        "missing webhook_url",
			env:         map[string]string{},
			expectedErr: "webhook_url is required",
		},
		{
			name:        "relative webhook_url",
			env:         map[string]string{"DN_WEBHOOK_URL": "/api/webhooks/1/abc"},
			expectedErr: "webhook_url is invalid",
		},
		{
			name:        "non-http webhook_url",
			env:         map[string]string{"DN_WEBHOOK_URL": "ftp://discord.com/api/webhooks/1/abc"},
			expectedErr: "scheme must be http or https",
		},
		{
			name:        "invalid avatar_url",
			env:         map[string]string{"DN_WEBHOOK_URL": testWebhook, "DN_AVATAR_URL": "avatar.png"},
			expectedErr: "avatar_url is invalid",
		},
		{
			name:        "invalid color",
			env:         map[string]string{"DN_WEBHOOK_URL": testWebhook, "DN_COLOR": "purple"},
			expectedErr: "color is invalid",
		},
		{
			name:        "zero timeout",
			env:         map[string]string{"DN_WEBHOOK_URL": testWebhook, "DN_TIMEOUT": "0s"},
			expectedErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("DN_WEBHOOK_URL", testWebhook)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, testWebhook, cfg.WebhookURL)
	assert.Equal(t, DefaultColor, cfg.Color)
	assert.Equal(t, 0x5865F2, cfg.ColorValue)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Username)
	assert.Empty(t, cfg.AvatarURL)
	assert.Empty(t, cfg.FooterText)
}

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("DN_WEBHOOK_URL", testWebhook)
	t.Setenv("DN_USERNAME", "ci-bot")
	t.Setenv("DN_AVATAR_URL", "https://example.com/bot.png")
	t.Setenv("DN_COLOR", "#57F287")
	t.Setenv("DN_FOOTER_TEXT", "nightly")
	t.Setenv("DN_TIMEOUT", "2s")
	t.Setenv("DN_VERBOSE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ci-bot", cfg.Username)
	assert.Equal(t, "https://example.com/bot.png", cfg.AvatarURL)
	assert.Equal(t, 0x57F287, cfg.ColorValue)
	assert.Equal(t, "nightly", cfg.FooterText)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoad_FromConfigFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "notify.yaml")
	content := `webhook_url: https://discord.com/api/webhooks/456/secret
username: hooks
color: "0xFEE75C"
footer_text: from file
timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	viper.Set("config", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://discord.com/api/webhooks/456/secret", cfg.WebhookURL)
	assert.Equal(t, "hooks", cfg.Username)
	assert.Equal(t, 0xFEE75C, cfg.ColorValue)
	assert.Equal(t, "from file", cfg.FooterText)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "notify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webhook_url: https://discord.com/api/webhooks/456/secret\n"), 0600))
	viper.Set("config", path)
	t.Setenv("DN_WEBHOOK_URL", testWebhook)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testWebhook, cfg.WebhookURL)
}

func TestLoad_BrokenConfigFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "notify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webhook_url: [unterminated\n"), 0600))
	viper.Set("config", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
