package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	claudeclient "github.com/brbranch/slack-claude-bot/clients/claude"
	slackclient "github.com/brbranch/slack-claude-bot/clients/slack"
	"github.com/brbranch/slack-claude-bot/config"
	"github.com/brbranch/slack-claude-bot/core/log"
	claudeservice "github.com/brbranch/slack-claude-bot/services/claude"
	"github.com/brbranch/slack-claude-bot/services/costs"
	"github.com/brbranch/slack-claude-bot/services/dedup"
	"github.com/brbranch/slack-claude-bot/services/sessions"
	"github.com/brbranch/slack-claude-bot/usecases/poller"
	"github.com/brbranch/slack-claude-bot/utils"
)

type Options struct {
	ConfigPath        string `long:"config" default:"config.yaml" description:"Path to the YAML configuration file"`
	Verbose           bool   `long:"verbose" description:"Enable debug-level logging"`
	BypassPermissions bool   `long:"bypassPermissions" description:"Use bypassPermissions mode for Claude (WARNING: Only use in controlled sandbox environments)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.SetLevel(slog.LevelInfo)
	if opts.Verbose {
		log.SetLevel(slog.LevelDebug)
	}

	logFilePath, err := setupProgramLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up program logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if opts.BypassPermissions {
		cfg.Claude.PermissionMode = "bypassPermissions"
		fmt.Fprintf(os.Stderr, "Warning: --bypassPermissions flag should only be used in a controlled, sandbox environment. Otherwise, anyone from Slack will have access to your entire system\n")
	}

	// One instance per working directory: two pollers sharing a workspace
	// would race each other's dedup state
	dirLock, err := utils.NewDirLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory lock: %v\n", err)
		os.Exit(1)
	}
	if err := dirLock.TryLock(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := dirLock.Unlock(); err != nil {
			log.Error("Failed to release directory lock: %v", err)
		}
	}()

	instanceID := uuid.New()
	log.Info("🆔 Bot instance ID: %s", instanceID)

	slackAPI := slackclient.NewSlackClient(cfg.SlackBotToken)
	claudeRunner := claudeclient.NewClaudeClient(cfg.Claude.Binary, cfg.Claude.PermissionMode, cfg.Claude.Timeout())
	claudeService := claudeservice.NewClaudeService(claudeRunner, cfg.Claude.AllowedTools)

	pollerUseCase := poller.NewPollerUseCase(
		cfg,
		slackAPI,
		claudeService,
		sessions.NewSessionStore(),
		dedup.NewLedger(),
		costs.NewCostTracker(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		fmt.Fprintf(os.Stderr, "\n📝 App execution finished, logs for this session are stored in %s\n", logFilePath)
	}()

	if err := pollerUseCase.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error running polling coordinator: %v\n", err)
		os.Exit(1)
	}
}

func setupProgramLogging() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	logsDir := filepath.Join(homeDir, ".config", "slack-claude-bot", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	logFilePath := filepath.Join(logsDir, fmt.Sprintf("%s.log", timestamp))

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	// Always write to both stdout and file
	log.SetWriter(io.MultiWriter(os.Stdout, logFile))

	return logFilePath, nil
}
