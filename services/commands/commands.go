package commands

import (
	"regexp"
	"strings"

	"github.com/brbranch/slack-claude-bot/core/log"
	"github.com/brbranch/slack-claude-bot/models"
)

// Primary grammar: "!claude <project> <instruction...>", instruction may span
// multiple lines.
var commandPattern = regexp.MustCompile(`(?s)^!claude\s+(\S+)\s+(.+)$`)

// Secondary grammar: a leading Slack mention token, e.g. "<@U12345> run tests"
var mentionPrefixPattern = regexp.MustCompile(`^<@[^>|]+(?:\|[^>]+)?>`)

// CommandParserService classifies raw messages as bot invocations
type CommandParserService struct{}

func NewCommandParserService() *CommandParserService {
	return &CommandParserService{}
}

// Parse classifies a message as an invocation or not. Returns nil when the
// message matches neither grammar; that is not an error, the message is
// simply not a command.
//
// The secondary (mention) grammar only applies when the channel has a default
// project configured.
func (p *CommandParserService) Parse(message *models.Message, defaultProject string) *models.ParsedCommand {
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return nil
	}

	if match := commandPattern.FindStringSubmatch(text); match != nil {
		prompt := strings.TrimSpace(match[2])
		if prompt != "" {
			log.Debug("Parsed explicit command for project %s", match[1])
			return &models.ParsedCommand{
				ProjectName: match[1],
				PromptText:  prompt,
				ImageURLs:   extractImageURLs(message),
			}
		}
	}

	if defaultProject != "" {
		if loc := mentionPrefixPattern.FindStringIndex(text); loc != nil {
			prompt := strings.TrimSpace(text[loc[1]:])
			if prompt == "" {
				return nil
			}
			log.Debug("Parsed mention command for default project %s", defaultProject)
			return &models.ParsedCommand{
				ProjectName: defaultProject,
				PromptText:  prompt,
				ImageURLs:   extractImageURLs(message),
			}
		}
	}

	return nil
}

// extractImageURLs collects the private URLs of image attachments. Returns
// nil rather than an empty slice when there are none, to distinguish "no
// images" from "images not yet resolved".
func extractImageURLs(message *models.Message) []string {
	var urls []string
	for _, attachment := range message.Attachments {
		if attachment.IsImage() {
			urls = append(urls, attachment.PrivateURL)
		}
	}
	return urls
}
