package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, `
projects:
  demo: /srv/demo
channels:
  C1: demo
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "xoxb-test", cfg.SlackBotToken)
	assert.Equal(t, 3000, cfg.PollingIntervalMs)
	assert.Equal(t, 3900, cfg.MessageBudget)
	assert.Equal(t, "claude", cfg.Claude.Binary)
	assert.Equal(t, "acceptEdits", cfg.Claude.PermissionMode)
	assert.Equal(t, 300, cfg.Claude.TimeoutSeconds)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, `
projects:
  demo: /srv/demo
polling_interval_ms: 5000
message_budget: 2000
claude:
  binary: /usr/local/bin/claude
  permission_mode: plan
  timeout_seconds: 60
  allowed_tools:
    - "Bash(npm:*)"
  system_prompt: "be terse"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.PollingIntervalMs)
	assert.Equal(t, 2000, cfg.MessageBudget)
	assert.Equal(t, "/usr/local/bin/claude", cfg.Claude.Binary)
	assert.Equal(t, "plan", cfg.Claude.PermissionMode)
	assert.Equal(t, []string{"Bash(npm:*)"}, cfg.Claude.AllowedTools)
	assert.Equal(t, "be terse", cfg.Claude.SystemPrompt)
}

func TestLoadConfig_TokenNeverFromYAML(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-from-env")
	path := writeConfigFile(t, `
slackbottoken: xoxb-from-yaml
projects:
  demo: /srv/demo
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "xoxb-from-env", cfg.SlackBotToken)
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "")
	path := writeConfigFile(t, `
projects:
  demo: /srv/demo
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLACK_BOT_TOKEN")
}

func TestLoadConfig_RequiresProjects(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, `
channels:
  C1: ""
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one project")
}

func TestLoadConfig_UnknownChannelDefault(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, `
projects:
  demo: /srv/demo
channels:
  C1: nonexistent
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown default project")
}

func TestLoadConfig_ChannelWithoutDefaultIsValid(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, `
projects:
  demo: /srv/demo
channels:
  C1: ""
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Channels["C1"])
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
