package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"discordnotify/internal/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// NewConfigureCmd creates the configure subcommand
func NewConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactively configure the Discord webhook",
		Long: `Configure discordnotify in interactive mode.

This command will guide you through setting up:
- The Discord webhook URL
- Display name and avatar overrides
- Default embed color and footer

The webhook will be tested and the configuration saved to config.yaml.`,
		RunE: runConfigure,
	}
}

// ConfigWizard holds the wizard answers
type ConfigWizard struct {
	WebhookURL string
	Username   string
	AvatarURL  string
	Color      string
	FooterText string
}

func runConfigure(cmd *cobra.Command, args []string) error {
	fmt.Println("\ndiscordnotify Configuration Wizard")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	wizard := &ConfigWizard{}

	if err := configureWebhook(wizard); err != nil {
		return err
	}

	if err := configurePresentation(wizard); err != nil {
		return err
	}

	cfg := wizard.toConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := testWebhook(cmd.Context(), cfg); err != nil {
		fmt.Printf("\nWarning: Webhook test failed: %v\n", err)
		fmt.Println("You can still save the configuration and fix it later.")

		var proceed bool
		prompt := &survey.Confirm{
			Message: "Do you want to save the configuration anyway?",
			Default: true,
		}
		if err := survey.AskOne(prompt, &proceed); err != nil {
			return err
		}
		if !proceed {
			return fmt.Errorf("configuration cancelled")
		}
	} else {
		fmt.Println("\nWebhook test successful!")
	}

	var configPath string
	prompt := &survey.Input{
		Message: "Config file path:",
		Default: "config.yaml",
		Help:    "Where to save the configuration file",
	}
	if err := survey.AskOne(prompt, &configPath); err != nil {
		return err
	}

	if err := saveConfiguration(cfg, configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to: %s\n", configPath)
	fmt.Println("\nYou can now run: discordnotify message \"hello\"")
	fmt.Println()

	return nil
}

func configureWebhook(wizard *ConfigWizard) error {
	fmt.Println("🔗 Discord Webhook")
	fmt.Println(strings.Repeat("-", 60))

	question := &survey.Input{
		Message: "Webhook URL:",
		Help:    "Channel settings > Integrations > Webhooks > Copy Webhook URL",
	}

	return survey.AskOne(question, &wizard.WebhookURL, survey.WithValidator(survey.Required), survey.WithValidator(validateWebhookAnswer))
}

func configurePresentation(wizard *ConfigWizard) error {
	fmt.Println("\n🎨 Presentation")
	fmt.Println(strings.Repeat("-", 60))

	questions := []*survey.Question{
		{
			Name: "username",
			Prompt: &survey.Input{
				Message: "Display name override (empty keeps the webhook's name):",
			},
		},
		{
			Name: "avatarURL",
			Prompt: &survey.Input{
				Message: "Avatar URL override (empty keeps the webhook's avatar):",
			},
		},
		{
			Name: "color",
			Prompt: &survey.Input{
				Message: "Default embed color:",
				Default: config.DefaultColor,
				Help:    "0xRRGGBB, #RRGGBB or a decimal integer",
			},
			Validate: validateColorAnswer,
		},
		{
			Name: "footerText",
			Prompt: &survey.Input{
				Message: "Default embed footer (optional):",
			},
		},
	}

	return survey.Ask(questions, wizard)
}

func validateWebhookAnswer(ans interface{}) error {
	cfg := &config.Config{WebhookURL: fmt.Sprint(ans), Timeout: time.Second}
	return cfg.Validate()
}

func validateColorAnswer(ans interface{}) error {
	_, err := config.ParseColor(fmt.Sprint(ans))
	return err
}

func (w *ConfigWizard) toConfig() *config.Config {
	return &config.Config{
		WebhookURL: strings.TrimSpace(w.WebhookURL),
		Username:   strings.TrimSpace(w.Username),
		AvatarURL:  strings.TrimSpace(w.AvatarURL),
		Color:      strings.TrimSpace(w.Color),
		FooterText: w.FooterText,
		Timeout:    5 * time.Second,
	}
}

func testWebhook(ctx context.Context, cfg *config.Config) error {
	fmt.Println("\nTesting webhook...")

	logger := logrus.NewEntry(logrus.New())
	logger.Logger.SetOutput(os.Stderr)        // Send logs to stderr to keep output clean
	logger.Logger.SetLevel(logrus.ErrorLevel) // Only show errors

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	notifier := newNotifier(cfg, logger)

	testMessage := "This is a test message from the configure command.\nIf you see this, your webhook is working correctly!"

	if err := notifier.Send(ctx, "discordnotify configuration test", testMessage); err != nil {
		return fmt.Errorf("failed to send test notification: %w", err)
	}

	return nil
}

func saveConfiguration(cfg *config.Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The webhook URL is a credential
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
