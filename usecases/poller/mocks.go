package poller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brbranch/slack-claude-bot/models"
)

// MockClaudeExecutor is a testify mock for the ClaudeExecutor interface
type MockClaudeExecutor struct {
	mock.Mock
}

func (m *MockClaudeExecutor) Execute(
	ctx context.Context,
	prompt, workingDirectory string,
	images []string,
	resumeSessionID, systemPrompt string,
) *models.ExecutionResult {
	args := m.Called(ctx, prompt, workingDirectory, images, resumeSessionID, systemPrompt)
	return args.Get(0).(*models.ExecutionResult)
}
