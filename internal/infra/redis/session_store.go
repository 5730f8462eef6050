package redis

import (
	"context"
	"sync"
	"time"

	"lesson-author-service/internal/app"
	"lesson-author-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of SessionRepository.
// Notes:
//   - Editing sessions stay in-process (the document and its subscriber
//     fan-out live in memory); Redis only marks session liveness.
//   - The marker lets an operator see which lessons are being edited and
//     could back a same-lesson lockout across instances later.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.EditSession
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
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
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(lessonID), "1", s.ttl).Err()
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
		_ = s.client.Del(context.Background(), s.key(lessonID)).Err()
	}
}

func (s *SessionStore) key(lessonID string) string {
	return "lesson:editing:" + lessonID
}
