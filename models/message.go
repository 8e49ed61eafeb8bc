package models

import "strings"

// Message is a single Slack message as observed by the poller. The Slack
// timestamp doubles as the message ID and is unique within a channel.
type Message struct {
	ID          string // Slack timestamp, e.g. "1712345678.000100"
	ChannelID   string
	AuthorID    string
	Text        string
	Attachments []Attachment
	ThreadTS    string // root timestamp when the message belongs to a thread
}

// IsThreadReply reports whether the message is a reply inside a thread
// rather than the thread's root message.
func (m *Message) IsThreadReply() bool {
	return m.ThreadTS != "" && m.ThreadTS != m.ID
}

// Attachment is a file uploaded alongside a Slack message. Only image
// attachments are ever acted upon.
type Attachment struct {
	ID         string
	Name       string
	MimeType   string
	PrivateURL string
}

// IsImage reports whether the attachment is a downloadable image payload.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/") && a.PrivateURL != ""
}

// ParsedCommand is the result of classifying a message as a bot invocation.
type ParsedCommand struct {
	ProjectName string
	PromptText  string
	ImageURLs   []string // nil when the message carries no image attachments
}
