package cmd

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"discordnotify/internal/config"
	"discordnotify/internal/notification"
)

// fieldFlag appends embed fields in command-line order; --field and
// --inline-field share one slice so their relative order survives.
type fieldFlag struct {
	fields *[]discord.EmbedField
	inline bool
}

func (f *fieldFlag) String() string {
	if f.fields == nil {
		return ""
	}
	var parts []string
	for _, field := range *f.fields {
		if isInline(field) == f.inline {
			parts = append(parts, field.Name+"="+field.Value)
		}
	}
	return strings.Join(parts, ",")
}

func (f *fieldFlag) Set(value string) error {
	field, err := parseField(value, f.inline)
	if err != nil {
		return err
	}
	*f.fields = append(*f.fields, field)
	return nil
}

func (f *fieldFlag) Type() string {
	return "name=value"
}

func isInline(field discord.EmbedField) bool {
	return field.Inline != nil && *field.Inline
}

// parseField splits "name=value" at the first '='
func parseField(s string, inline bool) (discord.EmbedField, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return discord.EmbedField{}, fmt.Errorf("field %q must have the form name=value", s)
	}

	name := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if name == "" {
		return discord.EmbedField{}, fmt.Errorf("field %q has an empty name", s)
	}
	if value == "" {
		return discord.EmbedField{}, fmt.Errorf("field %q has an empty value", s)
	}

	return notification.NewField(name, value, inline), nil
}

type embedOptions struct {
	title       string
	description string
	color       string
	footer      string
	fields      []discord.EmbedField
}

// buildEmbedOptions converts command-line values into notifier options.
// Unset color and footer fall back to the configured profile.
func (o *embedOptions) buildEmbedOptions(cmd *cobra.Command) ([]notification.EmbedOption, error) {
	var opts []notification.EmbedOption

	if o.color != "" {
		color, err := config.ParseColor(o.color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, notification.WithColor(color))
	}

	if len(o.fields) > 0 {
		opts = append(opts, notification.WithFields(o.fields...))
	}

	if cmd.Flags().Changed("footer") {
		opts = append(opts, notification.WithFooter(o.footer))
	}

	return opts, nil
}

// NewEmbedCmd creates the embed subcommand
func NewEmbedCmd() *cobra.Command {
	o := &embedOptions{}

	command := &cobra.Command{
		Use:   "embed",
		Short: "Send a rich embed to the Discord webhook",
		Example: `  discordnotify embed --title "Build passed" --description "main is green" \
    --field branch=main --inline-field duration=3m12s --footer "ci"`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := o.buildEmbedOptions(cmd)
			if err != nil {
				return err
			}

			notifier, logger, err := loadNotifier()
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"title":  o.title,
				"fields": len(o.fields),
			}).Debug("Sending embed")

			if !notifier.SendEmbed(cmd.Context(), o.title, o.description, opts...) {
				return ErrNotDelivered
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVarP(&o.title, "title", "t", "", "Embed title")
	flags.StringVarP(&o.description, "description", "d", "", "Embed description")
	flags.StringVar(&o.color, "color", "", "Embed color as 0xRRGGBB, #RRGGBB or decimal (defaults to the configured color)")
	flags.StringVar(&o.footer, "footer", "", "Footer text (an empty value removes the configured footer)")
	flags.Var(&fieldFlag{fields: &o.fields}, "field", "Add a field as name=value (repeatable)")
	flags.Var(&fieldFlag{fields: &o.fields, inline: true}, "inline-field", "Add an inline field as name=value (repeatable)")
	_ = command.MarkFlagRequired("title")

	return command
}
