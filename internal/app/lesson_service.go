package app

import (
	"context"

	"lesson-author-service/internal/codec"
	"lesson-author-service/internal/domain"
	"lesson-author-service/internal/quiz"
)

// SessionRepository abstracts how editing sessions are tracked
// (in-memory, Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(lessonID string, doc *domain.QuizDocument) *EditSession
	Get(lessonID string) (*EditSession, bool)
	DeleteIfEmpty(lessonID string)
}

// LessonRepository serves lesson reads, typically through a cache in
// front of the store.
type LessonRepository interface {
	GetLesson(ctx context.Context, lessonID string) (domain.Lesson, error)
	InvalidateLesson(ctx context.Context, lessonID string) error
}

// LessonStore is the system of record for lesson rows.
type LessonStore interface {
	GetLesson(ctx context.Context, lessonID string) (domain.Lesson, error)
	CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	ListLessons(ctx context.Context) ([]domain.Lesson, error)
}

// LessonService contains the authoring use cases.
type LessonService struct {
	sessions SessionRepository
	lessons  LessonRepository
	store    LessonStore
}

func NewLessonService(sessions SessionRepository, lessons LessonRepository, store LessonStore) *LessonService {
	return &LessonService{sessions: sessions, lessons: lessons, store: store}
}

// Open loads a lesson, hydrates its quiz document (a lesson without one
// gets an empty document with default settings), and attaches the caller
// to the lesson's editing session, creating it on first open.
func (s *LessonService) Open(ctx context.Context, lessonID string) (domain.QuizDocument, error) {
	lesson, err := s.lessons.GetLesson(ctx, lessonID)
	if err != nil {
		return domain.QuizDocument{}, err
	}
	var doc *domain.QuizDocument
	if lesson.QuizData != nil {
		clone := lesson.QuizData.Clone()
		doc = &clone
	}
	session := s.sessions.GetOrCreate(lessonID, doc)
	return session.attach(), nil
}

// Apply routes one edit command into the lesson's session. The returned
// id is the created element's id for add commands.
func (s *LessonService) Apply(_ context.Context, lessonID string, cmd quiz.Command) (domain.QuizDocument, string, error) {
	session, ok := s.sessions.Get(lessonID)
	if !ok {
		return domain.QuizDocument{}, "", domain.ErrSessionNotFound
	}
	return session.apply(cmd)
}

// Subscribe returns a channel receiving document snapshots after every
// mutation. The caller must invoke the cancel function to avoid leaks.
func (s *LessonService) Subscribe(_ context.Context, lessonID string) (<-chan domain.QuizDocument, func(), error) {
	session, ok := s.sessions.Get(lessonID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Save persists the session's current document into the lesson row and
// invalidates the read cache.
func (s *LessonService) Save(ctx context.Context, lessonID string) (domain.Lesson, error) {
	session, ok := s.sessions.Get(lessonID)
	if !ok {
		return domain.Lesson{}, domain.ErrSessionNotFound
	}
	snap := session.snapshot()

	lesson, err := s.store.GetLesson(ctx, lessonID)
	if err != nil {
		return domain.Lesson{}, err
	}
	lesson.QuizData = &snap
	updated, err := s.store.UpdateLesson(ctx, lesson)
	if err != nil {
		return domain.Lesson{}, err
	}
	_ = s.lessons.InvalidateLesson(ctx, lessonID)
	return updated, nil
}

// Close detaches the caller from the session and drops it once nobody
// is attached. Unsaved edits are discarded with it.
func (s *LessonService) Close(_ context.Context, lessonID string) {
	session, ok := s.sessions.Get(lessonID)
	if !ok {
		return
	}
	session.detach()
	if session.IsEmpty() {
		s.sessions.DeleteIfEmpty(lessonID)
	}
}

// GetLesson reads one lesson through the cache.
func (s *LessonService) GetLesson(ctx context.Context, lessonID string) (domain.Lesson, error) {
	return s.lessons.GetLesson(ctx, lessonID)
}

// ListLessons reads the lesson index from the store.
func (s *LessonService) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	return s.store.ListLessons(ctx)
}

// CreateLesson stores a new lesson, normalizing any quiz payload.
func (s *LessonService) CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if lesson.Grade == "" {
		lesson.Grade = "8"
	}
	if lesson.Type == "" {
		lesson.Type = "theory"
	}
	if lesson.QuizData != nil {
		quiz.Normalize(lesson.QuizData)
	}
	return s.store.CreateLesson(ctx, lesson)
}

// UpdateLesson replaces a lesson row and invalidates its cache entry.
func (s *LessonService) UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if lesson.QuizData != nil {
		quiz.Normalize(lesson.QuizData)
	}
	updated, err := s.store.UpdateLesson(ctx, lesson)
	if err != nil {
		return domain.Lesson{}, err
	}
	_ = s.lessons.InvalidateLesson(ctx, lesson.ID)
	return updated, nil
}

// Import decodes a lesson package (comments tolerated) and stores it as
// a new lesson. Nothing is written when the package is malformed.
func (s *LessonService) Import(ctx context.Context, data []byte) (domain.Lesson, error) {
	pkg, err := codec.DecodeLesson(data)
	if err != nil {
		return domain.Lesson{}, err
	}
	return s.store.CreateLesson(ctx, codec.ToLesson(pkg))
}

// Export renders a lesson as an importable package.
func (s *LessonService) Export(ctx context.Context, lessonID string) ([]byte, error) {
	lesson, err := s.lessons.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return codec.EncodeLesson(lesson)
}
