package utils

import (
	"regexp"
	"strings"
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// Slack mentions: <@USER_ID> or <@USER_ID|username>
var slackMentionRegex = regexp.MustCompile(`<@[^>|]+(?:\|[^>]+)?>`)

// StripMentions removes Slack mentions from message text. Thread replies may
// re-mention the bot, so the instruction text must survive the strip.
func StripMentions(text string) string {
	text = slackMentionRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func ConvertMarkdownToSlack(message string) string {
	result := message

	// Step 1: Convert markdown links [text](url) to Slack format <url|text>
	// This must be done first to avoid conflicts with other formatting
	linkRegex := regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	result = linkRegex.ReplaceAllString(result, "<$2|$1>")

	// Step 2: Handle headings with embedded bold markdown by extracting and converting the content first
	headingRegex := regexp.MustCompile(`(?m)^#+\s*(.+)$`)
	result = headingRegex.ReplaceAllStringFunc(result, func(match string) string {
		content := regexp.MustCompile(`^#+\s*(.+)$`).ReplaceAllString(match, "$1")
		boldRegex := regexp.MustCompile(`\*\*(.+?)\*\*`)
		content = boldRegex.ReplaceAllString(content, "$1")
		return "*" + content + "*"
	})

	// Step 3: Convert remaining **text** (double asterisks) to *text* (single asterisks)
	boldRegex := regexp.MustCompile(`\*\*(.+?)\*\*`)
	result = boldRegex.ReplaceAllString(result, "*$1*")

	return result
}
