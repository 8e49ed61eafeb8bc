package dedup

import "sync"

// Ledger is the set of message ids already routed to a handler. A membership
// check always precedes any side-effecting action on a message, so a message
// is never routed twice even if two polling passes observe the same fetch
// window.
type Ledger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{
		seen: make(map[string]struct{}),
	}
}

// Seen reports whether the message id was already routed
func (l *Ledger) Seen(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.seen[id]
	return exists
}

// MarkSeen records a message id. Idempotent.
func (l *Ledger) MarkSeen(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[id] = struct{}{}
}
