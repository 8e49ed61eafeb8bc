package sessions

import (
	"sync"

	"github.com/samber/mo"

	"github.com/brbranch/slack-claude-bot/models"
)

// SessionStore maps Slack threads to their Claude sessions. Put always
// replaces the whole record; callers own read-modify-write atomicity (the
// polling coordinator processes a thread sequentially).
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[models.ThreadKey]models.ThreadSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[models.ThreadKey]models.ThreadSession),
	}
}

// Get returns the session for a thread, or None when no command has been
// dispatched in it yet.
func (s *SessionStore) Get(key models.ThreadKey) mo.Option[models.ThreadSession] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[key]
	if !exists {
		return mo.None[models.ThreadSession]()
	}
	return mo.Some(session)
}

// Put creates or replaces the session for a thread
func (s *SessionStore) Put(key models.ThreadKey, session models.ThreadSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = session
}

// ActiveThreads returns the keys of all threads that have a session
func (s *SessionStore) ActiveThreads() []models.ThreadKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]models.ThreadKey, 0, len(s.sessions))
	for key := range s.sessions {
		keys = append(keys, key)
	}
	return keys
}
