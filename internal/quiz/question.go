// Package quiz implements the in-memory quiz authoring engine: default
// question shapes, per-kind mutators, and the document editor that keeps
// a lesson's quiz normalized and serializable at all times.
package quiz

import (
	"fmt"

	"lesson-author-service/internal/domain"
)

// NewQuestion builds a fully formed question of the requested kind with
// an inert default payload. ordinal is the current question count and
// only feeds the default prompt. The only failure mode is an unknown
// kind tag.
func NewQuestion(kind domain.Kind, ordinal int) (domain.Question, error) {
	if !kind.Valid() {
		return domain.Question{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	q := domain.Question{
		ID:     domain.NewID(),
		Kind:   kind,
		Prompt: fmt.Sprintf("Question %d", ordinal+1),
		Points: 1,
	}

	switch kind {
	case domain.KindMultiChoice:
		q.Options = []domain.Option{
			{ID: domain.NewID(), Text: "Option A", IsCorrect: true},
			{ID: domain.NewID(), Text: "Option B", IsCorrect: false},
		}
	case domain.KindShortAnswer:
		q.CorrectAnswers = []string{}
	case domain.KindFillBlank:
		q.Content = "Write your text with [answer] blanks..."
		q.Blanks = deriveBlanks(q.Content)
	case domain.KindSort, domain.KindClickOrder:
		q.Items = []domain.OrderItem{}
	case domain.KindMatch:
		q.Pairs = []domain.Pair{}
	}
	return q, nil
}

// SetPrompt replaces the display text of any question kind.
func SetPrompt(q *domain.Question, prompt string) {
	q.Prompt = prompt
}

// SetPoints updates the question's point value. Values below 1 are
// rejected.
func SetPoints(q *domain.Question, points int) error {
	if points < 1 {
		return domain.ErrInvalidPoints
	}
	q.Points = points
	return nil
}

func requireKind(q *domain.Question, kinds ...domain.Kind) error {
	for _, k := range kinds {
		if q.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: have %q, want one of %v", domain.ErrKindMismatch, q.Kind, kinds)
}
