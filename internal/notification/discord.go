package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/sirupsen/logrus"
)

// DefaultColor is the Discord brand blurple
const DefaultColor = 0x5865F2

// NewField builds an embed field; inline is always serialized
func NewField(name, value string, inline bool) discord.EmbedField {
	return discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: &inline,
	}
}

// Profile holds presentation defaults applied to every notification
type Profile struct {
	Username   string // overrides the webhook's display name when set
	AvatarURL  string // overrides the webhook's avatar when set
	Color      int    // embed color when none is given; 0 means DefaultColor
	FooterText string // embed footer when none is given
}

// EmbedOption customizes a single embed
type EmbedOption func(*discord.Embed)

// WithColor sets the embed color (RGB packed into an int)
func WithColor(color int) EmbedOption {
	return func(e *discord.Embed) {
		e.Color = color
	}
}

// WithFields appends fields to the embed, preserving order
func WithFields(fields ...discord.EmbedField) EmbedOption {
	return func(e *discord.Embed) {
		e.Fields = append(e.Fields, fields...)
	}
}

// WithFooter sets the embed footer; empty text removes it
func WithFooter(text string) EmbedOption {
	return func(e *discord.Embed) {
		if text == "" {
			e.Footer = nil
			return
		}
		e.Footer = &discord.EmbedFooter{Text: text}
	}
}

// DiscordNotifier handles sending notifications via a Discord webhook
type DiscordNotifier struct {
	*HTTPNotifier
	profile Profile
	now     func() time.Time
}

// NewDiscordNotifier creates a new Discord notifier with the default 5s HTTP timeout
func NewDiscordNotifier(webhookURL string, profile Profile, logger *logrus.Entry) *DiscordNotifier {
	return NewDiscordNotifierWithClient(webhookURL, profile, nil, logger)
}

// NewDiscordNotifierWithClient creates a new Discord notifier with a custom HTTP client
func NewDiscordNotifierWithClient(webhookURL string, profile Profile, httpClient *http.Client, logger *logrus.Entry) *DiscordNotifier {
	if profile.Color == 0 {
		profile.Color = DefaultColor
	}

	return &DiscordNotifier{
		HTTPNotifier: NewHTTPNotifier(webhookURL, httpClient, logger),
		profile:      profile,
		now:          time.Now,
	}
}

// SendEmbed posts a single embed and reports whether Discord accepted it.
// Failures of any kind are logged and reported as false.
func (n *DiscordNotifier) SendEmbed(ctx context.Context, title, description string, opts ...EmbedOption) bool {
	embed := n.buildEmbed(title, description, opts...)

	if err := n.deliver(ctx, n.wrapEmbed(embed)); err != nil {
		n.logger.WithError(err).WithField("title", title).Warn("Failed to send Discord embed")
		return false
	}

	n.logger.WithField("title", title).Info("Successfully sent Discord embed")
	return true
}

// SendMessage posts plain text content and reports whether Discord accepted it.
func (n *DiscordNotifier) SendMessage(ctx context.Context, content string) bool {
	payload := discord.WebhookMessageCreate{
		Username:  n.profile.Username,
		AvatarURL: n.profile.AvatarURL,
		Content:   clampContent(content),
	}

	if err := n.deliver(ctx, payload); err != nil {
		n.logger.WithError(err).Warn("Failed to send Discord message")
		return false
	}

	n.logger.Info("Successfully sent Discord message")
	return true
}

// Send sends subject and message as an embed (implements Notifier interface)
func (n *DiscordNotifier) Send(ctx context.Context, subject, message string) error {
	return n.deliver(ctx, n.wrapEmbed(n.buildEmbed(subject, message)))
}

func (n *DiscordNotifier) buildEmbed(title, description string, opts ...EmbedOption) discord.Embed {
	timestamp := n.now().UTC().Truncate(time.Millisecond)
	embed := discord.Embed{
		Title:       title,
		Description: description,
		Color:       n.profile.Color,
		Timestamp:   &timestamp,
	}
	if n.profile.FooterText != "" {
		embed.Footer = &discord.EmbedFooter{Text: n.profile.FooterText}
	}

	for _, opt := range opts {
		opt(&embed)
	}

	return clampEmbed(embed)
}

func (n *DiscordNotifier) wrapEmbed(embed discord.Embed) discord.WebhookMessageCreate {
	return discord.WebhookMessageCreate{
		Username:  n.profile.Username,
		AvatarURL: n.profile.AvatarURL,
		Embeds:    []discord.Embed{embed},
	}
}

// deliver posts the payload; Discord answers a successful webhook execution with 204
func (n *DiscordNotifier) deliver(ctx context.Context, payload interface{}) error {
	status, err := n.PostJSON(ctx, payload)
	if err != nil {
		return err
	}

	if status != http.StatusNoContent {
		return fmt.Errorf("failed to send message: status %d", status)
	}

	return nil
}
