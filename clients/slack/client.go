package slack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/slack-go/slack"

	"github.com/brbranch/slack-claude-bot/clients"
	"github.com/brbranch/slack-claude-bot/models"
	"github.com/brbranch/slack-claude-bot/utils"
)

const fetchLimit = 100

// SlackClient implements the clients.SlackClient interface using the slack-go/slack SDK
type SlackClient struct {
	*slack.Client
}

// NewSlackClient creates a new Slack client with the provided bot token
func NewSlackClient(authToken string) clients.SlackClient {
	return &SlackClient{
		Client: slack.New(authToken),
	}
}

// AuthTest verifies the bot token and returns information about the bot
func (c *SlackClient) AuthTest() (*clients.SlackAuthTestResponse, error) {
	response, err := c.Client.AuthTest()
	if err != nil {
		return nil, err
	}

	return &clients.SlackAuthTestResponse{
		UserID: response.UserID,
		TeamID: response.TeamID,
	}, nil
}

// FetchHistory fetches channel messages with timestamp >= oldest, in
// chronological order
func (c *SlackClient) FetchHistory(ctx context.Context, channelID, oldest string) ([]models.Message, error) {
	response, err := c.Client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    oldest,
		Inclusive: true,
		Limit:     fetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for channel %s: %w", channelID, err)
	}

	messages := mapSlackMessages(response.Messages, channelID)
	sortMessagesByTimestamp(messages)
	return messages, nil
}

// FetchThreadReplies fetches replies in a thread with timestamp >= oldest, in
// chronological order
func (c *SlackClient) FetchThreadReplies(
	ctx context.Context,
	channelID, threadTS, oldest string,
) ([]models.Message, error) {
	slackMessages, _, _, err := c.Client.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
		Oldest:    oldest,
		Inclusive: true,
		Limit:     fetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch replies for thread %s in channel %s: %w", threadTS, channelID, err)
	}

	messages := mapSlackMessages(slackMessages, channelID)
	sortMessagesByTimestamp(messages)
	return messages, nil
}

// PostMessage sends a message to a Slack channel, threaded when threadTS is set
func (c *SlackClient) PostMessage(ctx context.Context, channelID, threadTS, text string) error {
	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}

	_, _, err := c.Client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return fmt.Errorf("failed to post message to channel %s: %w", channelID, err)
	}
	return nil
}

// DownloadAttachment downloads a private Slack file into destDir and returns
// the local path
func (c *SlackClient) DownloadAttachment(
	ctx context.Context,
	attachment models.Attachment,
	destDir string,
) (string, error) {
	if attachment.PrivateURL == "" {
		return "", fmt.Errorf("attachment %s has no private download URL", attachment.ID)
	}

	name := attachment.Name
	if name == "" {
		name = attachment.ID
	}
	localPath := filepath.Join(destDir, filepath.Base(name))

	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create local file for attachment %s: %w", attachment.ID, err)
	}
	defer file.Close()

	if err := c.Client.GetFileContext(ctx, attachment.PrivateURL, file); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("failed to download attachment %s: %w", attachment.ID, err)
	}

	return localPath, nil
}

func mapSlackMessages(slackMessages []slack.Message, channelID string) []models.Message {
	var messages []models.Message
	for _, sm := range slackMessages {
		message := models.Message{
			ID:        sm.Timestamp,
			ChannelID: channelID,
			AuthorID:  sm.User,
			Text:      sm.Text,
			ThreadTS:  sm.ThreadTimestamp,
		}
		for _, f := range sm.Files {
			message.Attachments = append(message.Attachments, models.Attachment{
				ID:         f.ID,
				Name:       f.Name,
				MimeType:   f.Mimetype,
				PrivateURL: f.URLPrivateDownload,
			})
		}
		messages = append(messages, message)
	}
	return messages
}

// sortMessagesByTimestamp orders messages oldest-first. Slack returns history
// newest-first but routing must observe messages in arrival order.
func sortMessagesByTimestamp(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return utils.CompareTimestamps(messages[i].ID, messages[j].ID) < 0
	})
}
