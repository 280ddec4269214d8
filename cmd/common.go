package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"discordnotify/internal/config"
	"discordnotify/internal/notification"
)

// ErrNotDelivered is returned when Discord did not accept a notification
var ErrNotDelivered = errors.New("notification was not delivered")

// SetupLogging configures the logging system
func SetupLogging(verbose bool) *logrus.Entry {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	// Use JSON logging format
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Return a base logger entry
	return logrus.WithField("service", "discordnotify")
}

// loadNotifier reads the configuration and builds a Discord notifier from it
func loadNotifier() (*notification.DiscordNotifier, *logrus.Entry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := SetupLogging(cfg.Verbose)

	return newNotifier(cfg, logger), logger, nil
}

func newNotifier(cfg *config.Config, logger *logrus.Entry) *notification.DiscordNotifier {
	profile := notification.Profile{
		Username:   cfg.Username,
		AvatarURL:  cfg.AvatarURL,
		Color:      cfg.ColorValue,
		FooterText: cfg.FooterText,
	}

	client := &http.Client{Timeout: cfg.Timeout}

	return notification.NewDiscordNotifierWithClient(cfg.WebhookURL, profile, client, logger.WithField("component", "discord"))
}
