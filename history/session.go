package history

import (
	"sync"
	"time"
)

// Session is the in-process transcript for one conversation. It is scoped
// to its key, never shared across callers.
type Session struct {
	turns []Turn
	mtx   sync.RWMutex
}

func (s *Session) Append(role string, content string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.turns = append(s.turns, Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

// Turns returns the transcript in append order.
func (s *Session) Turns() []Turn {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cpy := make([]Turn, len(s.turns))
	copy(cpy, s.turns)

	return cpy
}

// Reset clears the in-process transcript only; archived rows are kept.
func (s *Session) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.turns = nil
}

// Sessions maps conversation keys to their sessions.
type Sessions struct {
	sessions map[string]*Session
	mtx      sync.RWMutex
}

// Get returns the session for key, creating it on first use.
func (s *Sessions) Get(key string) *Session {
	s.mtx.RLock()
	session, ok := s.sessions[key]
	s.mtx.RUnlock()

	if ok {
		return session
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if session, ok := s.sessions[key]; ok {
		return session
	}

	session = &Session{}
	s.sessions[key] = session

	return session
}

func (s *Sessions) Delete(key string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.sessions, key)
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: map[string]*Session{},
		mtx:      sync.RWMutex{},
	}
}
