package poller

import (
	"context"

	"github.com/brbranch/slack-claude-bot/models"
)

// ClaudeExecutor is the execution surface the polling coordinator drives.
// Execute never returns an error: failures are carried inside the result.
type ClaudeExecutor interface {
	Execute(
		ctx context.Context,
		prompt, workingDirectory string,
		images []string,
		resumeSessionID, systemPrompt string,
	) *models.ExecutionResult
}
