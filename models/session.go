package models

import "time"

// ThreadKey identifies a Slack thread as a composite of its channel and the
// root message timestamp. Using a struct key avoids the collision bugs of
// string-concatenated keys when ids contain the delimiter.
type ThreadKey struct {
	ChannelID string
	ThreadTS  string
}

// ThreadSession binds a Slack thread to a Claude CLI session. It is created
// after the first command dispatched in a thread and lives for the lifetime
// of the process.
type ThreadSession struct {
	ProjectName     string
	ProjectPath     string
	ClaudeSessionID string // rewritten after every execution that returns a new one
	UpdatedAt       time.Time
}
