package quiz

import (
	"fmt"

	"lesson-author-service/internal/domain"
)

const defaultPassingScore = 80

// NewDocument returns an empty quiz document with default settings.
func NewDocument() *domain.QuizDocument {
	doc := &domain.QuizDocument{Questions: []domain.Question{}}
	Normalize(doc)
	return doc
}

// Normalize brings a hydrated or imported document into the shape the
// editor guarantees: settings present (defaulted when absent, clamped
// when out of range), points at least 1, order items numbered by
// position, and per-kind payload slices non-nil. It is applied once at
// hydration so mutators never need scattered defaulting.
func Normalize(doc *domain.QuizDocument) {
	if doc.Questions == nil {
		doc.Questions = []domain.Question{}
	}
	if doc.Settings == nil {
		doc.Settings = &domain.QuizSettings{PassingScore: defaultPassingScore, ShuffleQuestions: false}
	}
	if doc.Settings.PassingScore < 0 {
		doc.Settings.PassingScore = 0
	}
	if doc.Settings.PassingScore > 100 {
		doc.Settings.PassingScore = 100
	}
	if doc.Settings.TimeLimit < 0 {
		doc.Settings.TimeLimit = 0
	}
	for i := range doc.Questions {
		normalizeQuestion(&doc.Questions[i])
	}
}

func normalizeQuestion(q *domain.Question) {
	if q.ID == "" {
		q.ID = domain.NewID()
	}
	if q.Points < 1 {
		q.Points = 1
	}
	switch q.Kind {
	case domain.KindMultiChoice:
		if q.Options == nil {
			q.Options = []domain.Option{}
		}
		for i := range q.Options {
			if q.Options[i].ID == "" {
				q.Options[i].ID = domain.NewID()
			}
		}
	case domain.KindShortAnswer:
		if q.CorrectAnswers == nil {
			q.CorrectAnswers = []string{}
		}
	case domain.KindFillBlank:
		// Blanks are derived state; recompute instead of trusting the
		// imported list, so content and blanks cannot drift.
		q.Blanks = deriveBlanks(q.Content)
	case domain.KindSort, domain.KindClickOrder:
		if q.Items == nil {
			q.Items = []domain.OrderItem{}
		}
		for i := range q.Items {
			if q.Items[i].ID == "" {
				q.Items[i].ID = domain.NewID()
			}
		}
		renumber(q.Items)
	case domain.KindMatch:
		if q.Pairs == nil {
			q.Pairs = []domain.Pair{}
		}
		for i := range q.Pairs {
			if q.Pairs[i].ID == "" {
				q.Pairs[i].ID = domain.NewID()
			}
		}
	}
}

// Editor is the quiz document manager. It owns the ordered question
// collection and settings of one document and keeps them normalized
// through every mutation. It is not safe for concurrent use; the
// editing session serializes access.
type Editor struct {
	doc *domain.QuizDocument
}

// NewEditor wraps a hydrated document, normalizing it first. A nil doc
// starts an empty quiz.
func NewEditor(doc *domain.QuizDocument) *Editor {
	if doc == nil {
		doc = NewDocument()
	} else {
		Normalize(doc)
	}
	return &Editor{doc: doc}
}

// AddQuestion creates a default question of the given kind, appends it,
// and returns its id. The caller treats the new question as the active
// selection.
func (e *Editor) AddQuestion(kind domain.Kind) (string, error) {
	q, err := NewQuestion(kind, len(e.doc.Questions))
	if err != nil {
		return "", err
	}
	e.doc.Questions = append(e.doc.Questions, q)
	return q.ID, nil
}

// RemoveQuestion deletes the question with the given id. Unknown ids are
// a no-op; confirmation is the caller's concern.
func (e *Editor) RemoveQuestion(id string) {
	for i := range e.doc.Questions {
		if e.doc.Questions[i].ID == id {
			e.doc.Questions = append(e.doc.Questions[:i], e.doc.Questions[i+1:]...)
			return
		}
	}
}

// UpdateQuestion replaces the stored question with the same id. The
// replacement must keep the original kind; changing a question's kind
// in place is a caller bug.
func (e *Editor) UpdateQuestion(updated domain.Question) error {
	for i := range e.doc.Questions {
		if e.doc.Questions[i].ID != updated.ID {
			continue
		}
		if e.doc.Questions[i].Kind != updated.Kind {
			return fmt.Errorf("%w: question %s is %q, got %q",
				domain.ErrKindMismatch, updated.ID, e.doc.Questions[i].Kind, updated.Kind)
		}
		q := updated.Clone()
		normalizeQuestion(&q)
		e.doc.Questions[i] = q
		return nil
	}
	return domain.ErrQuestionNotFound
}

// Question returns a pointer into the document for in-place mutation by
// the per-kind mutators.
func (e *Editor) Question(id string) (*domain.Question, error) {
	for i := range e.doc.Questions {
		if e.doc.Questions[i].ID == id {
			return &e.doc.Questions[i], nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

// Questions returns the questions in document order as a deep copy.
func (e *Editor) Questions() []domain.Question {
	out := make([]domain.Question, len(e.doc.Questions))
	for i, q := range e.doc.Questions {
		out[i] = q.Clone()
	}
	return out
}

// Settings returns a copy of the current quiz settings.
func (e *Editor) Settings() domain.QuizSettings {
	return *e.doc.Settings
}

// UpdateSettings replaces the quiz settings. The passing score must be a
// percentage and the time limit non-negative.
func (e *Editor) UpdateSettings(s domain.QuizSettings) error {
	if s.PassingScore < 0 || s.PassingScore > 100 {
		return fmt.Errorf("%w: passing score %d out of range", domain.ErrInvalidSettings, s.PassingScore)
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("%w: negative time limit", domain.ErrInvalidSettings)
	}
	*e.doc.Settings = s
	return nil
}

// Document returns a deep-copied snapshot of the whole document, ready
// to serialize or broadcast.
func (e *Editor) Document() domain.QuizDocument {
	return e.doc.Clone()
}
