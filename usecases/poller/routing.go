package poller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasepe/codename"

	"github.com/brbranch/slack-claude-bot/core"
	"github.com/brbranch/slack-claude-bot/core/log"
	"github.com/brbranch/slack-claude-bot/models"
	"github.com/brbranch/slack-claude-bot/utils"
)

const processingAck = "⏳ Processing your request..."

// routeTopLevelMessage handles a message observed in a channel's history.
// Dedup membership is checked before any side effect; the id is marked seen
// as soon as the routing decision is made.
func (u *PollerUseCase) routeTopLevelMessage(ctx context.Context, message *models.Message) {
	if u.dedupLedger.Seen(message.ID) {
		return
	}
	if message.AuthorID == u.botUserID {
		// Never route our own messages, or the bot would reply to itself
		u.dedupLedger.MarkSeen(message.ID)
		return
	}

	command := u.commandParser.Parse(message, u.config.Channels[message.ChannelID])
	if command == nil {
		// Not a command. Left unmarked: the already-advanced watermark keeps
		// it from being revisited on later ticks.
		return
	}
	u.dedupLedger.MarkSeen(message.ID)

	log.Info("🆕 New command in channel %s for project %s", message.ChannelID, command.ProjectName)

	projectPath, ok := u.config.Projects[command.ProjectName]
	if !ok {
		log.Warn("Unknown project %q requested in channel %s", command.ProjectName, message.ChannelID)
		u.postReply(ctx, message.ChannelID, message.ID,
			fmt.Sprintf("❌ Project %q not found", command.ProjectName))
		return
	}

	u.postReply(ctx, message.ChannelID, message.ID, processingAck)

	imagePaths := u.downloadImages(ctx, message)

	result := u.claudeService.Execute(
		ctx,
		command.PromptText,
		projectPath,
		imagePaths,
		"",
		u.config.Claude.SystemPrompt,
	)

	u.postReply(ctx, message.ChannelID, message.ID,
		formatExecutionReply(result, projectPath, u.config.MessageBudget))

	key := models.ThreadKey{ChannelID: message.ChannelID, ThreadTS: message.ID}
	u.sessionStore.Put(key, models.ThreadSession{
		ProjectName:     command.ProjectName,
		ProjectPath:     projectPath,
		ClaudeSessionID: result.ClaudeSessionID,
		UpdatedAt:       time.Now(),
	})
	u.threadWatermarks[key] = message.ID
	u.trackCost(key, result)

	log.Info("📋 Completed successfully - handled command in thread %s with session %s",
		message.ID, result.ClaudeSessionID)
}

// routeThreadReply continues an existing conversation. The reply's resume
// target is whatever session id the previous execution in this thread left
// behind.
func (u *PollerUseCase) routeThreadReply(ctx context.Context, key models.ThreadKey, reply *models.Message) {
	if u.dedupLedger.Seen(reply.ID) {
		return
	}
	if reply.AuthorID == u.botUserID {
		u.dedupLedger.MarkSeen(reply.ID)
		return
	}

	// Replies may re-mention the bot
	prompt := utils.StripMentions(reply.Text)
	if prompt == "" {
		u.dedupLedger.MarkSeen(reply.ID)
		return
	}

	maybeSession := u.sessionStore.Get(key)
	if !maybeSession.IsPresent() {
		log.Error("No session found for polled thread %s in channel %s", key.ThreadTS, key.ChannelID)
		return
	}
	session := maybeSession.MustGet()

	u.dedupLedger.MarkSeen(reply.ID)

	log.Info("💬 Continuing conversation in thread %s (session: %s)", key.ThreadTS, session.ClaudeSessionID)

	u.postReply(ctx, key.ChannelID, key.ThreadTS, processingAck)

	imagePaths := u.downloadImages(ctx, reply)

	result := u.claudeService.Execute(
		ctx,
		prompt,
		session.ProjectPath,
		imagePaths,
		session.ClaudeSessionID,
		u.config.Claude.SystemPrompt,
	)

	u.postReply(ctx, key.ChannelID, key.ThreadTS,
		formatExecutionReply(result, session.ProjectPath, u.config.MessageBudget))

	if result.ClaudeSessionID != "" && result.ClaudeSessionID != session.ClaudeSessionID {
		session.ClaudeSessionID = result.ClaudeSessionID
		session.UpdatedAt = time.Now()
		u.sessionStore.Put(key, session)
	}
	u.trackCost(key, result)
}

func (u *PollerUseCase) postReply(ctx context.Context, channelID, threadTS, text string) {
	if err := u.slackClient.PostMessage(ctx, channelID, threadTS, text); err != nil {
		log.Error("Failed to post message to channel %s thread %s: %v", channelID, threadTS, err)
	}
}

// downloadImages fetches a message's image attachments into a scratch
// directory. A failed download drops that image and is never fatal.
func (u *PollerUseCase) downloadImages(ctx context.Context, message *models.Message) []string {
	var paths []string
	var scratchDir string

	for _, attachment := range message.Attachments {
		if !attachment.IsImage() {
			continue
		}

		if scratchDir == "" {
			dir, err := u.makeScratchDir()
			if err != nil {
				log.Error("Failed to create scratch directory for attachments: %v", err)
				return paths
			}
			scratchDir = dir
		}

		path, err := u.slackClient.DownloadAttachment(ctx, attachment, scratchDir)
		if err != nil {
			log.Error("Failed to download attachment %s, dropping it: %v", attachment.ID, err)
			continue
		}
		paths = append(paths, path)
	}

	return paths
}

func (u *PollerUseCase) makeScratchDir() (string, error) {
	name := core.NewID("img")
	if u.rng != nil {
		name = codename.Generate(u.rng, 0)
	}

	dir := filepath.Join(os.TempDir(), "slack-claude-bot", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	return dir, nil
}

func (u *PollerUseCase) trackCost(key models.ThreadKey, result *models.ExecutionResult) {
	if result.CostUSD.IsZero() {
		return
	}
	total := u.costTracker.TrackUsage(key, result.CostUSD)
	log.Info("💰 Thread %s total cost so far: $%s", key.ThreadTS, total.StringFixed(4))
}
