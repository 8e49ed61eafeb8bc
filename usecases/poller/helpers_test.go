package poller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brbranch/slack-claude-bot/models"
)

func TestFormatExecutionReply_Success(t *testing.T) {
	result := &models.ExecutionResult{
		Succeeded: true,
		Output:    "## Summary\nFixed the **bug**",
		FileMutations: []models.FileMutation{
			{Kind: models.FileMutationCreate, Path: "/srv/demo/src/a.ts"},
			{Kind: models.FileMutationEdit, Path: "/srv/demo/src/b.ts"},
			{Kind: models.FileMutationDelete, Path: "/srv/demo/src/c.ts"},
		},
	}

	reply := formatExecutionReply(result, "/srv/demo", 3900)

	assert.Contains(t, reply, "*Summary*")
	assert.Contains(t, reply, "Fixed the *bug*")
	assert.Contains(t, reply, "📁 *File changes:*")
	assert.Contains(t, reply, "• Created `src/a.ts`")
	assert.Contains(t, reply, "• Edited `src/b.ts`")
	assert.Contains(t, reply, "• Deleted `src/c.ts`")
	assert.NotContains(t, reply, "Claude execution failed")
}

func TestFormatExecutionReply_Failure(t *testing.T) {
	result := &models.ExecutionResult{
		Succeeded: false,
		ErrorText: "exit status 1",
		Output:    "partial answer",
	}

	reply := formatExecutionReply(result, "/srv/demo", 3900)

	assert.True(t, strings.HasPrefix(reply, "❌ *Claude execution failed*"))
	assert.Contains(t, reply, "```\nexit status 1\n```")
	assert.Contains(t, reply, "partial answer")
}

func TestFormatExecutionReply_UnknownMutationKind(t *testing.T) {
	result := &models.ExecutionResult{
		Succeeded: true,
		Output:    "done",
		FileMutations: []models.FileMutation{
			{Kind: models.FileMutationUnknown, Path: "/srv/demo/x"},
		},
	}

	reply := formatExecutionReply(result, "/srv/demo", 3900)

	assert.Contains(t, reply, "• Changed `x`")
}

func TestFormatExecutionReply_TruncatesToBudget(t *testing.T) {
	result := &models.ExecutionResult{
		Succeeded: true,
		Output:    strings.Repeat("a", 5000),
	}

	reply := formatExecutionReply(result, "/srv/demo", 200)

	assert.LessOrEqual(t, len([]rune(reply)), 200)
	assert.True(t, strings.HasSuffix(reply, truncationMarker))
}

func TestTruncateMessage_ShortMessageUntouched(t *testing.T) {
	assert.Equal(t, "hello", truncateMessage("hello", 10))
}

func TestTruncateMessage_CutsOnRuneBoundaries(t *testing.T) {
	message := strings.Repeat("日", 100)

	truncated := truncateMessage(message, 50)

	assert.LessOrEqual(t, len([]rune(truncated)), 50)
	// No broken UTF-8 sequences
	assert.True(t, strings.HasSuffix(truncated, truncationMarker))
	for _, r := range truncated {
		assert.NotEqual(t, '�', r)
	}
}

func TestRelativeMutationPath(t *testing.T) {
	assert.Equal(t, "src/a.ts", relativeMutationPath("/srv/demo/src/a.ts", "/srv/demo"))
	assert.Equal(t, "src/a.ts", relativeMutationPath("/srv/demo/src/a.ts", "/srv/demo/"))
	assert.Equal(t, "/other/b.ts", relativeMutationPath("/other/b.ts", "/srv/demo"))
}
