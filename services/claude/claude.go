package claude

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brbranch/slack-claude-bot/clients"
	"github.com/brbranch/slack-claude-bot/core"
	"github.com/brbranch/slack-claude-bot/core/log"
	"github.com/brbranch/slack-claude-bot/models"
)

// PlaceholderAnswer is posted when decoding yields no final-answer text at
// all, so downstream formatting never posts a blank message.
const PlaceholderAnswer = "Claude finished without producing a final answer."

// ClaudeService drives the claude CLI and normalizes its streaming output
// into an ExecutionResult.
type ClaudeService struct {
	runner clients.ClaudeRunner

	// extraAllowedTools come from configuration and are granted on every
	// invocation, on top of the runner's built-in allow-list.
	extraAllowedTools []string
}

func NewClaudeService(runner clients.ClaudeRunner, extraAllowedTools []string) *ClaudeService {
	return &ClaudeService{
		runner:            runner,
		extraAllowedTools: extraAllowedTools,
	}
}

// Execute runs one claude invocation. It never returns an error: all failure
// modes are reported through the result's Succeeded/ErrorText fields, and
// whatever was decoded before a failure (partial answer, file mutations) is
// still visible in the result.
func (s *ClaudeService) Execute(
	ctx context.Context,
	prompt, workingDirectory string,
	images []string,
	resumeSessionID, systemPrompt string,
) *models.ExecutionResult {
	log.Info("📋 Starting claude execution in %s", workingDirectory)

	options := &clients.ClaudeOptions{
		WorkingDirectory:  workingDirectory,
		ResumeSessionID:   resumeSessionID,
		SystemPrompt:      systemPrompt,
		ImagePaths:        images,
		ExtraAllowedTools: s.extraAllowedTools,
	}

	rawOutput, err := s.runner.Run(ctx, prompt, options)
	if err != nil {
		return s.buildFailureResult(err, rawOutput)
	}

	result := decodeExecutionResult(rawOutput)
	result.Succeeded = true
	if result.Output == "" {
		log.Warn("Claude produced no result record, using placeholder answer")
		result.Output = PlaceholderAnswer
	}

	log.Info("📋 Completed successfully - claude execution with session %s, %d file mutations",
		result.ClaudeSessionID, len(result.FileMutations))
	return result
}

// buildFailureResult converts a runner error into a failed ExecutionResult,
// keeping the best-effort decode of whatever output was captured before the
// failure so partial progress stays visible to the operator.
func (s *ClaudeService) buildFailureResult(err error, rawOutput string) *models.ExecutionResult {
	log.Error("Claude execution failed: %v", err)

	claudeErr, isClaudeErr := core.IsClaudeCommandErr(err)
	if !isClaudeErr {
		// Process-launch-level failure, nothing was captured
		return &models.ExecutionResult{
			Succeeded: false,
			ErrorText: err.Error(),
		}
	}

	result := decodeExecutionResult(claudeErr.Stdout)
	result.Succeeded = false
	result.ErrorText = claudeErr.Stderr
	if result.ErrorText == "" {
		result.ErrorText = claudeErr.Err.Error()
	}
	return result
}

// decodeExecutionResult extracts the final answer, session id, file mutations
// and cost from raw stream-json output. Later result records overwrite
// earlier ones: the protocol is expected to emit at most one, but the decoder
// must not assume it.
func decodeExecutionResult(rawOutput string) *models.ExecutionResult {
	result := &models.ExecutionResult{}

	messages := MapClaudeOutputToMessages(rawOutput)
	for _, message := range messages {
		switch msg := message.(type) {
		case ToolResultMessage:
			result.FileMutations = append(result.FileMutations, models.FileMutation{
				Kind: msg.MutationKind(),
				Path: msg.ToolUseResult.FilePath,
			})
		case ResultMessage:
			result.Output = msg.Result
			result.ClaudeSessionID = msg.SessionID
			result.CostUSD = decimal.NewFromFloat(msg.TotalCostUsd)
		}
	}

	// Fall back to any message's session id when no result record appeared
	if result.ClaudeSessionID == "" {
		for _, message := range messages {
			if sessionID := message.GetSessionID(); sessionID != "" {
				result.ClaudeSessionID = sessionID
				break
			}
		}
	}

	return result
}
