package memory

import (
	"sync"

	"lesson-author-service/internal/app"
	"lesson-author-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.EditSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.EditSession),
	}
}

func (s *SessionStore) GetOrCreate(lessonID string, doc *domain.QuizDocument) *app.EditSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[lessonID]; ok {
		return session
	}
	session := app.NewSession(lessonID, doc)
	s.sessions[lessonID] = session
	return session
}

func (s *SessionStore) Get(lessonID string) (*app.EditSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[lessonID]
	return session, ok
}

func (s *SessionStore) DeleteIfEmpty(lessonID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[lessonID]
	if !ok {
		return
	}
	if session.IsEmpty() {
		delete(s.sessions, lessonID)
	}
}
