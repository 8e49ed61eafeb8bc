package claude

import (
	"bufio"
	"encoding/json"
	"strings"

	"github.com/brbranch/slack-claude-bot/models"
)

// ClaudeMessage represents one decoded line of claude stream-json output
type ClaudeMessage interface {
	GetType() string
	GetSessionID() string
}

// ResultMessage is the terminal record carrying the final answer and the
// session identifier
type ResultMessage struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	IsError      bool    `json:"is_error"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUsd float64 `json:"total_cost_usd"`
}

func (r ResultMessage) GetType() string {
	return r.Type
}

func (r ResultMessage) GetSessionID() string {
	return r.SessionID
}

// ToolResultMessage is any record that carries a tool result with a file path,
// i.e. evidence of a file mutation
type ToolResultMessage struct {
	Type          string `json:"type"`
	SessionID     string `json:"session_id"`
	ToolUseResult struct {
		Type     string `json:"type"`
		FilePath string `json:"filePath"`
	} `json:"tool_use_result"`
}

func (t ToolResultMessage) GetType() string {
	return t.Type
}

func (t ToolResultMessage) GetSessionID() string {
	return t.SessionID
}

// MutationKind maps the tool result's declared type to the mutation enum,
// defaulting to Unknown for missing or unrecognized types
func (t ToolResultMessage) MutationKind() models.FileMutationKind {
	switch t.ToolUseResult.Type {
	case "create":
		return models.FileMutationCreate
	case "edit", "update":
		return models.FileMutationEdit
	case "delete":
		return models.FileMutationDelete
	default:
		return models.FileMutationUnknown
	}
}

// UnknownClaudeMessage represents a well-formed line of a type the decoder
// does not act upon (system, assistant, user, ...)
type UnknownClaudeMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

func (u UnknownClaudeMessage) GetType() string {
	return u.Type
}

func (u UnknownClaudeMessage) GetSessionID() string {
	return u.SessionID
}

// MapClaudeOutputToMessages parses claude stream-json output into structured
// messages. The protocol is not guaranteed line-clean: diagnostic or partial
// lines can appear, and those are silently discarded rather than treated as
// errors. Records never span multiple lines.
func MapClaudeOutputToMessages(output string) []ClaudeMessage {
	var messages []ClaudeMessage

	// Use a scanner with a larger buffer to handle long lines
	scanner := bufio.NewScanner(strings.NewReader(output))
	// Set a 1MB buffer to handle very long JSON lines
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		message, ok := parseClaudeMessage([]byte(line))
		if !ok {
			continue
		}
		messages = append(messages, message)
	}

	return messages
}

// parseClaudeMessage attempts to parse a JSON line into the appropriate
// message type. The second return value is false for lines that are not valid
// JSON objects.
func parseClaudeMessage(lineBytes []byte) (ClaudeMessage, bool) {
	var probe struct {
		Type          string `json:"type"`
		SessionID     string `json:"session_id"`
		ToolUseResult *struct {
			Type     string `json:"type"`
			FilePath string `json:"filePath"`
		} `json:"tool_use_result"`
	}

	if err := json.Unmarshal(lineBytes, &probe); err != nil {
		return nil, false
	}

	if probe.ToolUseResult != nil && probe.ToolUseResult.FilePath != "" {
		var toolResultMsg ToolResultMessage
		if err := json.Unmarshal(lineBytes, &toolResultMsg); err == nil {
			return toolResultMsg, true
		}
	}

	if probe.Type == "result" {
		var resultMsg ResultMessage
		if err := json.Unmarshal(lineBytes, &resultMsg); err == nil {
			return resultMsg, true
		}
	}

	return UnknownClaudeMessage{
		Type:      probe.Type,
		SessionID: probe.SessionID,
	}, true
}
