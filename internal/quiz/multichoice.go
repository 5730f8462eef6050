package quiz

import (
	"fmt"

	"lesson-author-service/internal/domain"
)

// minOptions is the structural floor for multichoice questions; removals
// that would go below it are refused.
const minOptions = 2

// AddOption appends a new incorrect option with a fresh id. Existing
// options and their ids are untouched.
func AddOption(q *domain.Question) (domain.Option, error) {
	if err := requireKind(q, domain.KindMultiChoice); err != nil {
		return domain.Option{}, err
	}
	opt := domain.Option{
		ID:        domain.NewID(),
		Text:      fmt.Sprintf("Option %d", len(q.Options)+1),
		IsCorrect: false,
	}
	q.Options = append(q.Options, opt)
	return opt, nil
}

// UpdateOptionText replaces the text of the option with the given id.
func UpdateOptionText(q *domain.Question, optionID, text string) error {
	if err := requireKind(q, domain.KindMultiChoice); err != nil {
		return err
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			q.Options[i].Text = text
			return nil
		}
	}
	return domain.ErrOptionNotFound
}

// RemoveOption deletes the option with the given id. A removal that
// would drop the option count below two is silently refused: the editor
// UI hides the action, and this is the final guard.
func RemoveOption(q *domain.Question, optionID string) error {
	if err := requireKind(q, domain.KindMultiChoice); err != nil {
		return err
	}
	if len(q.Options) <= minOptions {
		return nil
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			q.Options = append(q.Options[:i], q.Options[i+1:]...)
			return nil
		}
	}
	return domain.ErrOptionNotFound
}

// SetCorrectOption marks the option with the given id correct and clears
// the flag on every other option in the same operation, so exactly one
// option is correct afterwards.
func SetCorrectOption(q *domain.Question, optionID string) error {
	if err := requireKind(q, domain.KindMultiChoice); err != nil {
		return err
	}
	found := false
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			found = true
		}
	}
	if !found {
		return domain.ErrOptionNotFound
	}
	for i := range q.Options {
		q.Options[i].IsCorrect = q.Options[i].ID == optionID
	}
	return nil
}
