package app

import (
	"sync"

	"github.com/yourusername/tg-vidbot/internal/domain"
)

// SessionStore holds the per-user selection state: a mutex-guarded map from
// Telegram user ID to the pending Session. Individual operations are atomic;
// whole flows are not serialized, so a second URL from the same user mid-flow
// overwrites the first (last write wins).
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*domain.Session),
	}
}

// Begin inserts or overwrites the session for a user, clearing any prior
// kind choice and offered formats.
func (s *SessionStore) Begin(userID int64, url string, platform domain.Platform) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &domain.Session{
		UserID:   userID,
		URL:      url,
		Platform: platform,
	}
}

// SetKind attaches the chosen media kind and the offered quality list to an
// existing session. Returns ErrSessionNotFound when the user has no pending
// session (stale callback).
func (s *SessionStore) SetKind(userID int64, audioOnly bool, formats []domain.FormatOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	session.AudioOnly = audioOnly
	session.KindChosen = true
	session.Formats = formats
	return nil
}

// Get returns a copy of the user's session. Absence is a normal outcome, not
// an error: it means the user replied to a stale interactive prompt.
func (s *SessionStore) Get(userID int64) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.Session{}, false
	}
	return *session, true
}

// Delete removes the user's session. Called on every terminal outcome so a
// later callback cannot reuse stale state.
func (s *SessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

// Len returns the number of pending sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
