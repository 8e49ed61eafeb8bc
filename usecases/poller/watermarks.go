package poller

import (
	"fmt"
	"time"

	"github.com/brbranch/slack-claude-bot/models"
	"github.com/brbranch/slack-claude-bot/utils"
)

// nowTimestamp formats the current time as a Slack message timestamp
// (seconds.microseconds).
func nowTimestamp() string {
	now := time.Now()
	return fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000)
}

// maxObservedTimestamp returns the largest timestamp among the current
// watermark and the fetched messages. Comparison is numeric: "999.5" sorts
// before "1000.0" even though it is lexically larger.
func maxObservedTimestamp(current string, messages []models.Message) string {
	max := current
	for i := range messages {
		if utils.CompareTimestamps(messages[i].ID, max) > 0 {
			max = messages[i].ID
		}
	}
	return max
}
