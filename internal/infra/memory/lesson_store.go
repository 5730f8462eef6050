package memory

import (
	"context"
	"sync"
	"time"

	"lesson-author-service/internal/domain"
)

// LessonStore is an in-memory implementation of app.LessonStore, used
// when no Postgres URL is configured and in tests. It doubles as a
// LessonLoader for the cache repositories.
type LessonStore struct {
	mu      sync.RWMutex
	lessons map[string]domain.Lesson
	order   []string
	now     func() time.Time
}

func NewLessonStore() *LessonStore {
	return &LessonStore{
		lessons: make(map[string]domain.Lesson),
		now:     time.Now,
	}
}

func (s *LessonStore) GetLesson(_ context.Context, lessonID string) (domain.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lesson, ok := s.lessons[lessonID]
	if !ok {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	return cloneLesson(lesson), nil
}

func (s *LessonStore) LoadLesson(ctx context.Context, lessonID string) (domain.Lesson, error) {
	return s.GetLesson(ctx, lessonID)
}

func (s *LessonStore) CreateLesson(_ context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lesson.ID == "" {
		lesson.ID = domain.NewID()
	}
	now := s.now()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	s.lessons[lesson.ID] = cloneLesson(lesson)
	s.order = append(s.order, lesson.ID)
	return lesson, nil
}

func (s *LessonStore) UpdateLesson(_ context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.lessons[lesson.ID]
	if !ok {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	lesson.CreatedAt = stored.CreatedAt
	lesson.UpdatedAt = s.now()
	s.lessons[lesson.ID] = cloneLesson(lesson)
	return lesson, nil
}

// ListLessons returns lessons newest first, matching the dashboard
// ordering of the persistence collaborator.
func (s *LessonStore) ListLessons(_ context.Context) ([]domain.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Lesson, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if lesson, ok := s.lessons[s.order[i]]; ok {
			out = append(out, cloneLesson(lesson))
		}
	}
	return out, nil
}

func cloneLesson(lesson domain.Lesson) domain.Lesson {
	if lesson.QuizData != nil {
		doc := lesson.QuizData.Clone()
		lesson.QuizData = &doc
	}
	return lesson
}

// StaticLessonLoader serves a fixed lesson set; handy for tests and the
// storeless demo mode.
type StaticLessonLoader struct {
	lessons map[string]domain.Lesson
}

func NewStaticLessonLoader(lessons map[string]domain.Lesson) *StaticLessonLoader {
	return &StaticLessonLoader{lessons: lessons}
}

func (l *StaticLessonLoader) LoadLesson(_ context.Context, lessonID string) (domain.Lesson, error) {
	lesson, ok := l.lessons[lessonID]
	if !ok {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	return cloneLesson(lesson), nil
}
