package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultColor is the embed color used when none is configured (Discord blurple)
const DefaultColor = "0x5865F2"

// Config holds the application configuration
type Config struct {
	// Discord webhook endpoint; the URL itself carries the credentials
	WebhookURL string `mapstructure:"webhook_url" yaml:"webhook_url"`

	// Presentation overrides
	Username   string `mapstructure:"username" yaml:"username,omitempty"`     // Display name override
	AvatarURL  string `mapstructure:"avatar_url" yaml:"avatar_url,omitempty"` // Avatar override
	Color      string `mapstructure:"color" yaml:"color,omitempty"`           // Hex (0x5865F2, #5865F2) or decimal
	FooterText string `mapstructure:"footer_text" yaml:"footer_text,omitempty"`

	// General settings
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
	Verbose bool          `mapstructure:"verbose" yaml:"verbose,omitempty"`

	// ColorValue is Color parsed during Load
	ColorValue int `mapstructure:"-" yaml:"-"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Set default values; every key needs one so AutomaticEnv values reach Unmarshal
	viper.SetDefault("webhook_url", "")
	viper.SetDefault("username", "")
	viper.SetDefault("avatar_url", "")
	viper.SetDefault("footer_text", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("color", DefaultColor)
	viper.SetDefault("timeout", 5*time.Second)

	// An explicit --config path wins over the search paths
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/discordnotify")
		viper.AddConfigPath("$HOME/.discordnotify")
	}

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, continue with defaults and env vars
	}

	// DN_WEBHOOK_URL maps to webhook_url
	viper.SetEnvPrefix("DN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and parses derived values
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("webhook_url is required")
	}
	if err := validateHTTPURL(c.WebhookURL); err != nil {
		return fmt.Errorf("webhook_url is invalid: %w", err)
	}

	if c.AvatarURL != "" {
		if err := validateHTTPURL(c.AvatarURL); err != nil {
			return fmt.Errorf("avatar_url is invalid: %w", err)
		}
	}

	if c.Color == "" {
		c.Color = DefaultColor
	}
	color, err := ParseColor(c.Color)
	if err != nil {
		return fmt.Errorf("color is invalid: %w", err)
	}
	c.ColorValue = color

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}

// ParseColor parses an RGB color given as "0x5865F2", "#5865F2" or a decimal integer
func ParseColor(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "#") {
		trimmed = "0x" + trimmed[1:]
	}

	value, err := strconv.ParseInt(trimmed, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a color", s)
	}
	if value < 0 || value > 0xFFFFFF {
		return 0, fmt.Errorf("color %q is outside the RGB range", s)
	}

	return int(value), nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
