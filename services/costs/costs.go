package costs

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/brbranch/slack-claude-bot/models"
)

// CostTracker accumulates the per-thread USD cost reported by claude result
// records. In-memory only: cost history does not survive a restart, same as
// the sessions it tracks.
type CostTracker struct {
	mu     sync.Mutex
	totals map[models.ThreadKey]decimal.Decimal
}

func NewCostTracker() *CostTracker {
	return &CostTracker{
		totals: make(map[models.ThreadKey]decimal.Decimal),
	}
}

// TrackUsage adds one invocation's cost to a thread's running total and
// returns the new total.
func (t *CostTracker) TrackUsage(key models.ThreadKey, costUSD decimal.Decimal) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.totals[key].Add(costUSD)
	t.totals[key] = total
	return total
}

// Total returns a thread's running total
func (t *CostTracker) Total(key models.ThreadKey) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totals[key]
}
