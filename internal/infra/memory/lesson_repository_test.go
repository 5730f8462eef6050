package memory

import (
	"context"
	"testing"
	"time"

	"lesson-author-service/internal/domain"
)

type countingLoader struct {
	LessonLoader
	calls int
}

func (l *countingLoader) LoadLesson(ctx context.Context, lessonID string) (domain.Lesson, error) {
	l.calls++
	return l.LessonLoader.LoadLesson(ctx, lessonID)
}

func TestLessonRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		LessonLoader: NewStaticLessonLoader(map[string]domain.Lesson{
			"lesson-1": {ID: "lesson-1", Title: "Fractions", Content: "<p>intro</p>"},
		}),
	}
	repo := NewLessonRepository(loader, time.Minute)

	lesson, err := repo.GetLesson(context.Background(), "lesson-1")
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if lesson.Title != "Fractions" {
		t.Fatalf("unexpected lesson %+v", lesson)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	if _, err := repo.GetLesson(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestLessonRepositoryInvalidateForcesReload(t *testing.T) {
	loader := &countingLoader{
		LessonLoader: NewStaticLessonLoader(map[string]domain.Lesson{
			"lesson-1": {ID: "lesson-1", Title: "Fractions", Content: "<p>intro</p>"},
		}),
	}
	repo := NewLessonRepository(loader, time.Minute)

	if _, err := repo.GetLesson(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if err := repo.InvalidateLesson(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := repo.GetLesson(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidation, loader calls=%d", loader.calls)
	}
}

func TestLessonRepositoryUnknownLesson(t *testing.T) {
	loader := &countingLoader{LessonLoader: NewStaticLessonLoader(nil)}
	repo := NewLessonRepository(loader, time.Minute)
	if _, err := repo.GetLesson(context.Background(), "missing"); err != domain.ErrLessonNotFound {
		t.Fatalf("expected lesson-not-found, got %v", err)
	}
}

func TestLessonStoreRoundTrip(t *testing.T) {
	store := NewLessonStore()
	ctx := context.Background()

	created, err := store.CreateLesson(ctx, domain.Lesson{Title: "One", Content: "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("create did not stamp the row: %+v", created)
	}

	second, err := store.CreateLesson(ctx, domain.Lesson{Title: "Two", Content: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Title = "One, revised"
	if _, err := store.UpdateLesson(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.GetLesson(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "One, revised" {
		t.Fatalf("update not applied: %+v", got)
	}

	if _, err := store.GetLesson(ctx, "missing"); err != domain.ErrLessonNotFound {
		t.Fatalf("expected lesson-not-found, got %v", err)
	}
	if _, err := store.UpdateLesson(ctx, domain.Lesson{ID: "missing"}); err != domain.ErrLessonNotFound {
		t.Fatalf("expected lesson-not-found, got %v", err)
	}

	lessons, err := store.ListLessons(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lessons) != 2 || lessons[0].ID != second.ID {
		t.Fatalf("expected newest-first listing, got %+v", lessons)
	}
}

func TestLessonStoreReturnsDetachedCopies(t *testing.T) {
	store := NewLessonStore()
	ctx := context.Background()

	doc := &domain.QuizDocument{
		Questions: []domain.Question{{ID: "q1", Kind: domain.KindShortAnswer, Prompt: "p", Points: 1}},
		Settings:  &domain.QuizSettings{PassingScore: 80},
	}
	created, err := store.CreateLesson(ctx, domain.Lesson{Title: "t", Content: "c", QuizData: doc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := store.GetLesson(ctx, created.ID)
	got.QuizData.Questions[0].Prompt = "mutated"

	again, _ := store.GetLesson(ctx, created.ID)
	if again.QuizData.Questions[0].Prompt == "mutated" {
		t.Fatalf("store handed out shared quiz state")
	}
}
