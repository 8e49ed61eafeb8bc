package claude

import (
	"testing"

	"github.com/brbranch/slack-claude-bot/models"
)

func TestMapClaudeOutputToMessages(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedCount int
		expectedTypes []string
	}{
		{
			name:          "single result message",
			input:         `{"type":"result","subtype":"success","result":"All done","session_id":"c069b138-4f6c-406b-b79a-1e940179378d"}`,
			expectedCount: 1,
			expectedTypes: []string{"result"},
		},
		{
			name: "mixed message types",
			input: `{"type":"system","subtype":"init","session_id":"session1"}
{"type":"assistant","message":{"id":"msg_01","type":"message","content":[{"type":"text","text":"Working on it"}]},"session_id":"session1"}
{"type":"result","subtype":"success","result":"Done","session_id":"session1"}`,
			expectedCount: 3,
			expectedTypes: []string{"system", "assistant", "result"},
		},
		{
			name: "malformed lines are silently discarded",
			input: `{"type":"system","session_id":"session1"}
not json
{partial json
{"type":"result","result":"Done","session_id":"session1"}`,
			expectedCount: 2,
			expectedTypes: []string{"system", "result"},
		},
		{
			name: "tool result with file path",
			input: `{"type":"user","session_id":"session1","tool_use_result":{"type":"create","filePath":"/srv/demo/a.ts"}}
{"type":"result","result":"Created the file","session_id":"session1"}`,
			expectedCount: 2,
			expectedTypes: []string{"user", "result"},
		},
		{
			name: "empty lines and whitespace",
			input: `{"type":"system","session_id":"session1"}


{"type":"result","result":"Done","session_id":"session1"}`,
			expectedCount: 2,
			expectedTypes: []string{"system", "result"},
		},
		{
			name:          "empty input",
			input:         "",
			expectedCount: 0,
			expectedTypes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := MapClaudeOutputToMessages(tt.input)

			if len(messages) != tt.expectedCount {
				t.Errorf("Expected %d messages, got %d", tt.expectedCount, len(messages))
				return
			}

			for i, expectedType := range tt.expectedTypes {
				actualType := messages[i].GetType()
				if actualType != expectedType {
					t.Errorf("Message %d: expected type %s, got %s", i, expectedType, actualType)
				}
			}
		})
	}
}

func TestToolResultMutationKind(t *testing.T) {
	tests := []struct {
		name         string
		resultType   string
		expectedKind models.FileMutationKind
	}{
		{"create maps to Create", "create", models.FileMutationCreate},
		{"edit maps to Edit", "edit", models.FileMutationEdit},
		{"update maps to Edit", "update", models.FileMutationEdit},
		{"delete maps to Delete", "delete", models.FileMutationDelete},
		{"missing type maps to Unknown", "", models.FileMutationUnknown},
		{"unrecognized type maps to Unknown", "rename", models.FileMutationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ToolResultMessage{}
			msg.ToolUseResult.Type = tt.resultType
			msg.ToolUseResult.FilePath = "/srv/demo/a.ts"

			if kind := msg.MutationKind(); kind != tt.expectedKind {
				t.Errorf("Expected kind %s, got %s", tt.expectedKind, kind)
			}
		})
	}
}
