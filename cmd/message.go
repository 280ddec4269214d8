package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readContent joins args into the message text; a single "-" reads stdin instead
func readContent(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	return strings.Join(args, " "), nil
}

// NewMessageCmd creates the message subcommand
func NewMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message <content...>",
		Short: "Send a plain text message to the Discord webhook",
		Long: `Send a plain text message to the Discord webhook.

All arguments are joined with spaces. Pass "-" to read the message from stdin.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(args, os.Stdin)
			if err != nil {
				return err
			}

			notifier, _, err := loadNotifier()
			if err != nil {
				return err
			}

			if !notifier.SendMessage(cmd.Context(), content) {
				return ErrNotDelivered
			}
			return nil
		},
	}
}
