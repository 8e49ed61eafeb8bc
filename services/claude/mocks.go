package claude

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brbranch/slack-claude-bot/clients"
)

// MockClaudeRunner is a testify mock for the clients.ClaudeRunner interface
type MockClaudeRunner struct {
	mock.Mock
}

func (m *MockClaudeRunner) Run(ctx context.Context, prompt string, options *clients.ClaudeOptions) (string, error) {
	args := m.Called(ctx, prompt, options)
	return args.String(0), args.Error(1)
}
