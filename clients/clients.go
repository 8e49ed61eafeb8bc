package clients

import (
	"context"

	"github.com/brbranch/slack-claude-bot/models"
)

// SlackClient is the outbound Slack surface the polling coordinator depends on
type SlackClient interface {
	AuthTest() (*SlackAuthTestResponse, error)
	FetchHistory(ctx context.Context, channelID, oldest string) ([]models.Message, error)
	FetchThreadReplies(ctx context.Context, channelID, threadTS, oldest string) ([]models.Message, error)
	PostMessage(ctx context.Context, channelID, threadTS, text string) error
	DownloadAttachment(ctx context.Context, attachment models.Attachment, destDir string) (string, error)
}

// SlackAuthTestResponse carries the bot identity needed for the reply-loop guard
type SlackAuthTestResponse struct {
	UserID string
	TeamID string
}

// ClaudeRunner invokes the claude CLI and returns its raw stream-json output
type ClaudeRunner interface {
	Run(ctx context.Context, prompt string, options *ClaudeOptions) (string, error)
}

// ClaudeOptions are the per-invocation knobs for the claude CLI
type ClaudeOptions struct {
	WorkingDirectory  string
	ResumeSessionID   string
	SystemPrompt      string
	ImagePaths        []string
	ExtraAllowedTools []string
}
