package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPollingIntervalMs = 3000
	defaultMessageBudget     = 3900
	defaultClaudeBinary      = "claude"
	defaultPermissionMode    = "acceptEdits"
	defaultTimeoutSeconds    = 300
)

// ClaudeConfig controls how the claude CLI is invoked.
type ClaudeConfig struct {
	Binary         string   `yaml:"binary"`
	PermissionMode string   `yaml:"permission_mode"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	AllowedTools   []string `yaml:"allowed_tools"` // appended to the built-in allow-list, never substituted
	SystemPrompt   string   `yaml:"system_prompt"`
}

func (c ClaudeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type AppConfig struct {
	// SlackBotToken comes from the SLACK_BOT_TOKEN environment variable,
	// never from the YAML file.
	SlackBotToken string `yaml:"-"`

	Projects          map[string]string `yaml:"projects"` // project name -> working directory
	Channels          map[string]string `yaml:"channels"` // channel ID -> default project name ("" = no default)
	PollingIntervalMs int               `yaml:"polling_interval_ms"`
	MessageBudget     int               `yaml:"message_budget"`
	Claude            ClaudeConfig      `yaml:"claude"`
}

func (c *AppConfig) PollingInterval() time.Duration {
	return time.Duration(c.PollingIntervalMs) * time.Millisecond
}

func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := &AppConfig{
		PollingIntervalMs: defaultPollingIntervalMs,
		MessageBudget:     defaultMessageBudget,
		Claude: ClaudeConfig{
			Binary:         defaultClaudeBinary,
			PermissionMode: defaultPermissionMode,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.SlackBotToken = os.Getenv("SLACK_BOT_TOKEN")

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *AppConfig) validate() error {
	if c.SlackBotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}
	if len(c.Projects) == 0 {
		return fmt.Errorf("at least one project must be configured")
	}
	for name, path := range c.Projects {
		if path == "" {
			return fmt.Errorf("project %q has an empty path", name)
		}
	}
	for channelID, projectName := range c.Channels {
		if projectName == "" {
			continue
		}
		if _, ok := c.Projects[projectName]; !ok {
			return fmt.Errorf("channel %s references unknown default project %q", channelID, projectName)
		}
	}
	if c.PollingIntervalMs <= 0 {
		return fmt.Errorf("polling_interval_ms must be positive")
	}
	if c.MessageBudget <= 0 {
		return fmt.Errorf("message_budget must be positive")
	}
	if c.Claude.TimeoutSeconds <= 0 {
		return fmt.Errorf("claude.timeout_seconds must be positive")
	}
	return nil
}
