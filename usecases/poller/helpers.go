package poller

import (
	"fmt"
	"strings"

	"github.com/brbranch/slack-claude-bot/models"
	"github.com/brbranch/slack-claude-bot/utils"
)

const truncationMarker = "\n… (message truncated)"

// formatExecutionReply renders an execution result as a Slack message:
// answer text (or failure banner), then the list of touched files, truncated
// to fit the message budget.
func formatExecutionReply(result *models.ExecutionResult, projectPath string, budget int) string {
	var builder strings.Builder

	if !result.Succeeded {
		builder.WriteString("❌ *Claude execution failed*\n")
		if result.ErrorText != "" {
			builder.WriteString("```\n")
			builder.WriteString(result.ErrorText)
			builder.WriteString("\n```\n")
		}
	}

	if result.Output != "" {
		builder.WriteString(utils.ConvertMarkdownToSlack(result.Output))
	}

	if mutations := formatFileMutations(result.FileMutations, projectPath); mutations != "" {
		builder.WriteString("\n\n")
		builder.WriteString(mutations)
	}

	return truncateMessage(builder.String(), budget)
}

func formatFileMutations(mutations []models.FileMutation, projectPath string) string {
	if len(mutations) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("📁 *File changes:*")
	for _, mutation := range mutations {
		builder.WriteString(fmt.Sprintf("\n• %s `%s`",
			mutationLabel(mutation.Kind), relativeMutationPath(mutation.Path, projectPath)))
	}
	return builder.String()
}

func mutationLabel(kind models.FileMutationKind) string {
	switch kind {
	case models.FileMutationCreate:
		return "Created"
	case models.FileMutationEdit:
		return "Edited"
	case models.FileMutationDelete:
		return "Deleted"
	default:
		return "Changed"
	}
}

func relativeMutationPath(path, projectPath string) string {
	if projectPath == "" {
		return path
	}
	return strings.TrimPrefix(path, strings.TrimSuffix(projectPath, "/")+"/")
}

// truncateMessage cuts a message down so it fits within budget runes,
// marker included. Cuts on rune boundaries so multi-byte text stays valid.
func truncateMessage(message string, budget int) string {
	runes := []rune(message)
	if len(runes) <= budget {
		return message
	}

	marker := []rune(truncationMarker)
	keep := budget - len(marker)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + string(marker)
}
