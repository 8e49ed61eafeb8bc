package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMentions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain mention", "<@U12345> run the tests", "run the tests"},
		{"mention with username", "<@U12345|claudebot> run the tests", "run the tests"},
		{"mention in the middle", "hey <@U12345> please help", "hey  please help"},
		{"no mention", "just some text", "just some text"},
		{"only a mention", "<@U12345>", ""},
		{"surrounding whitespace trimmed", "  <@U12345>   do it  ", "do it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMentions(tt.input))
		})
	}
}

func TestConvertMarkdownToSlack(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bold text",
			input:    "This is **bold** text",
			expected: "This is *bold* text",
		},
		{
			name:     "heading",
			input:    "# Summary",
			expected: "*Summary*",
		},
		{
			name:     "heading with bold inside",
			input:    "## The **important** part",
			expected: "*The important part*",
		},
		{
			name:     "link",
			input:    "see [the docs](https://example.com/docs)",
			expected: "see <https://example.com/docs|the docs>",
		},
		{
			name:     "mixed document",
			input:    "# Result\nFixed **two** bugs, see [PR](https://example.com/pr/1)",
			expected: "*Result*\nFixed *two* bugs, see <https://example.com/pr/1|PR>",
		},
		{
			name:     "plain text untouched",
			input:    "nothing special here",
			expected: "nothing special here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertMarkdownToSlack(tt.input))
		})
	}
}
