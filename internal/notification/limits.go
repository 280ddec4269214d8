package notification

import (
	"unicode/utf8"

	"github.com/disgoorg/disgo/discord"
)

// Discord rejects webhook bodies exceeding these character counts
const (
	maxTitleLength      = 256
	maxDescriptionLen   = 4096
	maxFieldNameLength  = 256
	maxFieldValueLength = 1024
	maxFields           = 25
	maxFooterLength     = 2048
	maxContentLength    = 2000

	// maxEmbedTotal caps title, description, field names and values, and footer combined
	maxEmbedTotal = 6000
)

const ellipsis = "..."

// truncate cuts s to at most limit runes, marking the cut with an ellipsis.
// Limits too small to hold the ellipsis get a plain cut.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// shrink removes up to excess runes from s, never going below floor runes.
// It returns the new string and how many runes were removed.
func shrink(s string, excess, floor int) (string, int) {
	length := utf8.RuneCountInString(s)
	if excess <= 0 || length <= floor {
		return s, 0
	}

	target := length - excess
	if target < floor {
		target = floor
	}
	return truncate(s, target), length - target
}

// embedLength counts the characters Discord sums against maxEmbedTotal
func embedLength(e discord.Embed) int {
	total := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, field := range e.Fields {
		total += utf8.RuneCountInString(field.Name) + utf8.RuneCountInString(field.Value)
	}
	if e.Footer != nil {
		total += utf8.RuneCountInString(e.Footer.Text)
	}
	return total
}

// clampEmbed shortens every text part of the embed to Discord's maxima, then
// fits the whole embed under maxEmbedTotal: the description goes first, then
// field values from the last field backwards, then trailing fields are dropped.
func clampEmbed(e discord.Embed) discord.Embed {
	e.Title = truncate(e.Title, maxTitleLength)
	e.Description = truncate(e.Description, maxDescriptionLen)

	if len(e.Fields) > 0 {
		count := len(e.Fields)
		if count > maxFields {
			count = maxFields
		}
		fields := make([]discord.EmbedField, count)
		for i := 0; i < count; i++ {
			fields[i] = discord.EmbedField{
				Name:   truncate(e.Fields[i].Name, maxFieldNameLength),
				Value:  truncate(e.Fields[i].Value, maxFieldValueLength),
				Inline: e.Fields[i].Inline,
			}
		}
		e.Fields = fields
	}

	if e.Footer != nil {
		e.Footer = &discord.EmbedFooter{Text: truncate(e.Footer.Text, maxFooterLength)}
	}

	excess := embedLength(e) - maxEmbedTotal
	if excess <= 0 {
		return e
	}

	var removed int
	e.Description, removed = shrink(e.Description, excess, 0)
	excess -= removed

	// Field values may not be empty, so each keeps at least the ellipsis
	for i := len(e.Fields) - 1; i >= 0 && excess > 0; i-- {
		e.Fields[i].Value, removed = shrink(e.Fields[i].Value, excess, len(ellipsis))
		excess -= removed
	}

	for len(e.Fields) > 0 && excess > 0 {
		last := e.Fields[len(e.Fields)-1]
		excess -= utf8.RuneCountInString(last.Name) + utf8.RuneCountInString(last.Value)
		e.Fields = e.Fields[:len(e.Fields)-1]
	}
	if len(e.Fields) == 0 {
		e.Fields = nil
	}

	return e
}

func clampContent(content string) string {
	return truncate(content, maxContentLength)
}
