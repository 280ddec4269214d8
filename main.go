package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"discordnotify/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "discordnotify",
		Short: "Send embeds and messages to a Discord webhook",
		Long: `discordnotify posts a single notification to a Discord webhook and exits.
It exits non-zero when Discord does not accept the notification.`,
		// main logs the returned error once
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("discordnotify version %s (commit: %s)\n", version, commit)
		},
	})
	rootCmd.AddCommand(cmd.NewEmbedCmd())
	rootCmd.AddCommand(cmd.NewMessageCmd())
	rootCmd.AddCommand(cmd.NewConfigureCmd())

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Configuration file path")
	flags.String("webhook-url", "", "Discord webhook URL")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	// Bind flags to viper under their config keys
	bindings := map[string]string{
		"config":      "config",
		"webhook_url": "webhook-url",
		"verbose":     "verbose",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			logrus.WithError(err).Fatal("Failed to bind flags")
		}
	}

	return rootCmd
}
