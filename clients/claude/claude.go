package claude

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/brbranch/slack-claude-bot/clients"
	"github.com/brbranch/slack-claude-bot/core"
	"github.com/brbranch/slack-claude-bot/core/log"
)

// fixedAllowedTools is the capability allow-list that every invocation gets.
// Caller-supplied tools are appended, never substituted.
var fixedAllowedTools = []string{
	"Read",
	"Write",
	"Edit",
	"MultiEdit",
	"Glob",
	"Grep",
	"LS",
	"Bash(git:*)",
	"Bash(ls:*)",
	"Bash(cat:*)",
	"Bash(mkdir:*)",
}

// ClaudeClient invokes the claude CLI in stream-json mode. The single-blob
// output mode cannot carry a session identifier or file-mutation events, so
// the streaming mode is always used.
type ClaudeClient struct {
	binary         string
	permissionMode string
	timeout        time.Duration
}

func NewClaudeClient(binary, permissionMode string, timeout time.Duration) *ClaudeClient {
	return &ClaudeClient{
		binary:         binary,
		permissionMode: permissionMode,
		timeout:        timeout,
	}
}

func (c *ClaudeClient) Run(ctx context.Context, prompt string, options *clients.ClaudeOptions) (string, error) {
	if options == nil {
		options = &clients.ClaudeOptions{}
	}

	args := []string{
		"--permission-mode", c.permissionMode,
		"--verbose",
		"--output-format", "stream-json",
	}

	allowedTools := append([]string{}, fixedAllowedTools...)
	allowedTools = append(allowedTools, options.ExtraAllowedTools...)
	args = append(args, "--allowedTools", strings.Join(allowedTools, " "))

	if options.SystemPrompt != "" {
		args = append(args, "--append-system-prompt", options.SystemPrompt)
	}
	if options.ResumeSessionID != "" {
		args = append(args, "--resume", options.ResumeSessionID)
	}

	args = append(args, "-p", prompt)

	// Image paths go last, as positional arguments after all options
	args = append(args, options.ImagePaths...)

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.binary, args...)
	cmd.Dir = options.WorkingDirectory
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Info("📋 Starting claude command in %s (resume: %q)", options.WorkingDirectory, options.ResumeSessionID)
	err := cmd.Run()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		log.Error("Claude command timed out after %s", c.timeout)
		return stdout.String(), &core.ErrClaudeCommandErr{
			Err:    runCtx.Err(),
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		}
	}
	if err != nil {
		log.Error("Claude command failed: %v", err)
		return stdout.String(), &core.ErrClaudeCommandErr{
			Err:    err,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		}
	}

	log.Info("📋 Completed successfully - claude command produced %d bytes of output", stdout.Len())
	return stdout.String(), nil
}
