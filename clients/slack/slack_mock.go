package slack

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brbranch/slack-claude-bot/clients"
	"github.com/brbranch/slack-claude-bot/models"
)

// MockSlackClient is a testify mock for the clients.SlackClient interface
type MockSlackClient struct {
	mock.Mock
}

func (m *MockSlackClient) AuthTest() (*clients.SlackAuthTestResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackAuthTestResponse), args.Error(1)
}

func (m *MockSlackClient) FetchHistory(ctx context.Context, channelID, oldest string) ([]models.Message, error) {
	args := m.Called(ctx, channelID, oldest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockSlackClient) FetchThreadReplies(
	ctx context.Context,
	channelID, threadTS, oldest string,
) ([]models.Message, error) {
	args := m.Called(ctx, channelID, threadTS, oldest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockSlackClient) PostMessage(ctx context.Context, channelID, threadTS, text string) error {
	args := m.Called(ctx, channelID, threadTS, text)
	return args.Error(0)
}

func (m *MockSlackClient) DownloadAttachment(
	ctx context.Context,
	attachment models.Attachment,
	destDir string,
) (string, error) {
	args := m.Called(ctx, attachment, destDir)
	return args.String(0), args.Error(1)
}
