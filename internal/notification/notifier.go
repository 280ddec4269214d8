package notification

import "context"

// Notifier is a generic interface for sending notifications.
// Unlike the bool helpers on DiscordNotifier, Send reports why delivery failed.
type Notifier interface {
	Send(ctx context.Context, subject, message string) error
}

var _ Notifier = (*DiscordNotifier)(nil)
