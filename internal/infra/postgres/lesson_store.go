package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lesson-author-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// LessonStore persists lesson rows with the quiz document as jsonb.
type LessonStore struct {
	pool *pgxpool.Pool
}

func NewLessonStore(pool *pgxpool.Pool) *LessonStore {
	return &LessonStore{pool: pool}
}

const lessonColumns = `id, title, grade, type, content, custom_css, quiz_data, is_published, created_at, updated_at`

func (s *LessonStore) GetLesson(ctx context.Context, lessonID string) (domain.Lesson, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id=$1`, lessonID)
	lesson, err := scanLesson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("load lesson: %w", err)
	}
	return lesson, nil
}

// LoadLesson satisfies the cache repositories' loader interface.
func (s *LessonStore) LoadLesson(ctx context.Context, lessonID string) (domain.Lesson, error) {
	return s.GetLesson(ctx, lessonID)
}

func (s *LessonStore) CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = domain.NewID()
	}
	quizRaw, err := marshalQuiz(lesson.QuizData)
	if err != nil {
		return domain.Lesson{}, err
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO lessons (id, title, grade, type, content, custom_css, quiz_data, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+lessonColumns,
		lesson.ID, lesson.Title, lesson.Grade, lesson.Type, lesson.Content,
		lesson.CustomCSS, quizRaw, lesson.IsPublished)
	created, err := scanLesson(row)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("create lesson: %w", err)
	}
	return created, nil
}

func (s *LessonStore) UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	quizRaw, err := marshalQuiz(lesson.QuizData)
	if err != nil {
		return domain.Lesson{}, err
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE lessons
		SET title=$2, grade=$3, type=$4, content=$5, custom_css=$6, quiz_data=$7,
		    is_published=$8, updated_at=now()
		WHERE id=$1
		RETURNING `+lessonColumns,
		lesson.ID, lesson.Title, lesson.Grade, lesson.Type, lesson.Content,
		lesson.CustomCSS, quizRaw, lesson.IsPublished)
	updated, err := scanLesson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("update lesson: %w", err)
	}
	return updated, nil
}

func (s *LessonStore) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("list lessons: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

func marshalQuiz(doc *domain.QuizDocument) ([]byte, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz: %w", err)
	}
	return raw, nil
}

func scanLesson(row pgx.Row) (domain.Lesson, error) {
	var (
		lesson  domain.Lesson
		quizRaw []byte
	)
	if err := row.Scan(&lesson.ID, &lesson.Title, &lesson.Grade, &lesson.Type,
		&lesson.Content, &lesson.CustomCSS, &quizRaw, &lesson.IsPublished,
		&lesson.CreatedAt, &lesson.UpdatedAt); err != nil {
		return domain.Lesson{}, err
	}
	if len(quizRaw) > 0 {
		var doc domain.QuizDocument
		if err := json.Unmarshal(quizRaw, &doc); err != nil {
			return domain.Lesson{}, fmt.Errorf("unmarshal quiz: %w", err)
		}
		lesson.QuizData = &doc
	}
	return lesson, nil
}
