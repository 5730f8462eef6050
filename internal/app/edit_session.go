package app

import (
	"sync"
	"time"

	"lesson-author-service/internal/domain"
	"lesson-author-service/internal/quiz"
)

// EditSession owns the live quiz document of one lesson while it is
// being authored. The engine itself is single-author and synchronous;
// the session adds the lock that serializes transport goroutines and
// fans document snapshots out to subscribers (extra browser tabs, the
// preview pane).
type EditSession struct {
	lessonID  string
	createdAt time.Time
	now       func() time.Time

	mu          sync.RWMutex
	editor      *quiz.Editor
	attached    int
	subscribers map[chan domain.QuizDocument]struct{}
}

// NewSession is exported for infrastructure layers that need to seed
// sessions. doc may be nil for a lesson without a quiz yet.
func NewSession(lessonID string, doc *domain.QuizDocument) *EditSession {
	return newSessionWithClock(lessonID, doc, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(lessonID string, doc *domain.QuizDocument, now func() time.Time) *EditSession {
	return newSessionWithClock(lessonID, doc, now)
}

func newSessionWithClock(lessonID string, doc *domain.QuizDocument, now func() time.Time) *EditSession {
	return &EditSession{
		lessonID:    lessonID,
		createdAt:   now(),
		now:         now,
		editor:      quiz.NewEditor(doc),
		subscribers: make(map[chan domain.QuizDocument]struct{}),
	}
}

func (s *EditSession) attach() domain.QuizDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached++
	return s.editor.Document()
}

func (s *EditSession) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached > 0 {
		s.attached--
	}
}

func (s *EditSession) isEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attached == 0
}

// IsEmpty reports whether no connection is attached to the session.
func (s *EditSession) IsEmpty() bool {
	return s.isEmpty()
}

// apply runs one edit command through the editor and broadcasts the
// resulting snapshot. The returned string is the created element id for
// add commands.
func (s *EditSession) apply(cmd quiz.Command) (domain.QuizDocument, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	createdID, err := s.editor.Apply(cmd)
	if err != nil {
		return domain.QuizDocument{}, "", err
	}
	return s.broadcastLocked(), createdID, nil
}

// snapshot returns a deep copy of the current document.
func (s *EditSession) snapshot() domain.QuizDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editor.Document()
}

func (s *EditSession) subscribe() (<-chan domain.QuizDocument, func()) {
	ch := make(chan domain.QuizDocument, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.editor.Document()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *EditSession) broadcastLocked() domain.QuizDocument {
	snap := s.editor.Document()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow subscriber never blocks
			// the author's edit.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}
