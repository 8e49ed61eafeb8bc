package poller

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/lucasepe/codename"

	"github.com/brbranch/slack-claude-bot/clients"
	"github.com/brbranch/slack-claude-bot/config"
	"github.com/brbranch/slack-claude-bot/core/log"
	"github.com/brbranch/slack-claude-bot/models"
	"github.com/brbranch/slack-claude-bot/services/commands"
	"github.com/brbranch/slack-claude-bot/services/costs"
	"github.com/brbranch/slack-claude-bot/services/dedup"
	"github.com/brbranch/slack-claude-bot/services/sessions"
)

// PollerUseCase is the orchestrating state machine: once per tick it pulls new
// messages for each configured channel and each active thread, and routes them
// through dedup -> parse/continue -> execute -> reply -> session update.
//
// It is the exclusive owner of the session store, the dedup ledger and the
// watermark tables; no other component mutates them.
type PollerUseCase struct {
	config        *config.AppConfig
	slackClient   clients.SlackClient
	claudeService ClaudeExecutor
	commandParser *commands.CommandParserService
	sessionStore  *sessions.SessionStore
	dedupLedger   *dedup.Ledger
	costTracker   *costs.CostTracker

	botUserID string

	// Watermarks are the timestamp boundaries below which messages have
	// already been fetched. Monotonically non-decreasing per source.
	channelWatermarks map[string]string
	threadWatermarks  map[models.ThreadKey]string

	rng *rand.Rand
}

func NewPollerUseCase(
	cfg *config.AppConfig,
	slackClient clients.SlackClient,
	claudeService ClaudeExecutor,
	sessionStore *sessions.SessionStore,
	dedupLedger *dedup.Ledger,
	costTracker *costs.CostTracker,
) *PollerUseCase {
	rng, err := codename.DefaultRNG()
	if err != nil {
		log.Warn("Failed to seed codename RNG, falling back to ULID scratch names: %v", err)
		rng = nil
	}

	return &PollerUseCase{
		config:            cfg,
		slackClient:       slackClient,
		claudeService:     claudeService,
		commandParser:     commands.NewCommandParserService(),
		sessionStore:      sessionStore,
		dedupLedger:       dedupLedger,
		costTracker:       costTracker,
		channelWatermarks: make(map[string]string),
		threadWatermarks:  make(map[models.ThreadKey]string),
		rng:               rng,
	}
}

// Start verifies the Slack credentials and runs the polling loop until the
// context is cancelled.
func (u *PollerUseCase) Start(ctx context.Context) error {
	log.Info("📋 Starting polling coordinator")

	authResponse, err := u.slackClient.AuthTest()
	if err != nil {
		return fmt.Errorf("failed to verify Slack credentials: %w", err)
	}
	u.botUserID = authResponse.UserID
	log.Info("✅ Connected to Slack as bot user %s", u.botUserID)

	// Only messages arriving after startup are handled: channel watermarks
	// start at the current time, not at the beginning of channel history.
	startTS := nowTimestamp()
	for channelID := range u.config.Channels {
		u.channelWatermarks[channelID] = startTS
	}

	ticker := time.NewTicker(u.config.PollingInterval())
	defer ticker.Stop()

	// A single-worker pool serializes ticks: the session store, dedup ledger
	// and watermark tables are mutated read-modify-write, so two ticks must
	// never interleave. A tick that fires while one is still queued is
	// skipped rather than stacked up.
	wp := workerpool.New(1)
	defer wp.StopWait()

	for {
		select {
		case <-ctx.Done():
			log.Info("🔌 Polling coordinator shutting down")
			return nil
		case <-ticker.C:
			if wp.WaitingQueueSize() > 0 {
				log.Warn("Previous tick still in progress, skipping this tick")
				continue
			}
			wp.Submit(func() {
				u.runTick(ctx)
			})
		}
	}
}

// runTick performs one polling pass over all sources. Sources are visited
// sequentially: a thread's reply processing depends on the session state its
// previous reply produced.
func (u *PollerUseCase) runTick(ctx context.Context) {
	for _, channelID := range u.watchedChannels() {
		u.pollChannel(ctx, channelID)
	}

	for _, key := range u.sortedActiveThreads() {
		u.pollThread(ctx, key)
	}
}

func (u *PollerUseCase) watchedChannels() []string {
	channelIDs := make([]string, 0, len(u.config.Channels))
	for channelID := range u.config.Channels {
		channelIDs = append(channelIDs, channelID)
	}
	sort.Strings(channelIDs)
	return channelIDs
}

func (u *PollerUseCase) sortedActiveThreads() []models.ThreadKey {
	keys := u.sessionStore.ActiveThreads()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ChannelID != keys[j].ChannelID {
			return keys[i].ChannelID < keys[j].ChannelID
		}
		return keys[i].ThreadTS < keys[j].ThreadTS
	})
	return keys
}

func (u *PollerUseCase) pollChannel(ctx context.Context, channelID string) {
	watermark := u.channelWatermarks[channelID]

	messages, err := u.slackClient.FetchHistory(ctx, channelID, watermark)
	if err != nil {
		// Transient fetch failure: the watermark stays put and the tick
		// continues with the remaining sources
		log.Error("Failed to fetch history for channel %s: %v", channelID, err)
		return
	}

	u.channelWatermarks[channelID] = maxObservedTimestamp(watermark, messages)

	for i := range messages {
		message := &messages[i]
		if message.IsThreadReply() {
			continue // replies are handled by the thread poller
		}
		u.routeTopLevelMessage(ctx, message)
	}
}

func (u *PollerUseCase) pollThread(ctx context.Context, key models.ThreadKey) {
	watermark, ok := u.threadWatermarks[key]
	if !ok {
		watermark = key.ThreadTS
	}

	replies, err := u.slackClient.FetchThreadReplies(ctx, key.ChannelID, key.ThreadTS, watermark)
	if err != nil {
		log.Error("Failed to fetch replies for thread %s in channel %s: %v", key.ThreadTS, key.ChannelID, err)
		return
	}

	u.threadWatermarks[key] = maxObservedTimestamp(watermark, replies)

	for i := range replies {
		reply := &replies[i]
		if reply.ID == key.ThreadTS {
			continue // the root message, already handled when the thread was created
		}
		u.routeThreadReply(ctx, key, reply)
	}
}
