package quiz

import "lesson-author-service/internal/domain"

// AddAnswer appends an empty acceptable answer. Empty strings are
// permitted; the editor flags them as low quality but the engine does
// not reject them.
func AddAnswer(q *domain.Question) error {
	if err := requireKind(q, domain.KindShortAnswer); err != nil {
		return err
	}
	q.CorrectAnswers = append(q.CorrectAnswers, "")
	return nil
}

// UpdateAnswer replaces the acceptable answer at idx.
func UpdateAnswer(q *domain.Question, idx int, text string) error {
	if err := requireKind(q, domain.KindShortAnswer); err != nil {
		return err
	}
	if idx < 0 || idx >= len(q.CorrectAnswers) {
		return domain.ErrAnswerNotFound
	}
	q.CorrectAnswers[idx] = text
	return nil
}

// RemoveAnswer deletes the acceptable answer at idx.
func RemoveAnswer(q *domain.Question, idx int) error {
	if err := requireKind(q, domain.KindShortAnswer); err != nil {
		return err
	}
	if idx < 0 || idx >= len(q.CorrectAnswers) {
		return domain.ErrAnswerNotFound
	}
	q.CorrectAnswers = append(q.CorrectAnswers[:idx], q.CorrectAnswers[idx+1:]...)
	return nil
}

// SetCaseSensitive flips whether answer matching honors letter case.
func SetCaseSensitive(q *domain.Question, sensitive bool) error {
	if err := requireKind(q, domain.KindShortAnswer); err != nil {
		return err
	}
	q.CaseSensitive = sensitive
	return nil
}
