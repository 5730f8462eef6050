package quiz

import "lesson-author-service/internal/domain"

// AddPair appends an empty left/right pair with a fresh id. Duplicate
// pairs are allowed.
func AddPair(q *domain.Question) (domain.Pair, error) {
	if err := requireKind(q, domain.KindMatch); err != nil {
		return domain.Pair{}, err
	}
	pair := domain.Pair{ID: domain.NewID()}
	q.Pairs = append(q.Pairs, pair)
	return pair, nil
}

// UpdatePair replaces both sides of the pair with the given id.
func UpdatePair(q *domain.Question, pairID, left, right string) error {
	if err := requireKind(q, domain.KindMatch); err != nil {
		return err
	}
	for i := range q.Pairs {
		if q.Pairs[i].ID == pairID {
			q.Pairs[i].Left = left
			q.Pairs[i].Right = right
			return nil
		}
	}
	return domain.ErrPairNotFound
}

// RemovePair deletes the pair with the given id.
func RemovePair(q *domain.Question, pairID string) error {
	if err := requireKind(q, domain.KindMatch); err != nil {
		return err
	}
	for i := range q.Pairs {
		if q.Pairs[i].ID == pairID {
			q.Pairs = append(q.Pairs[:i], q.Pairs[i+1:]...)
			return nil
		}
	}
	return domain.ErrPairNotFound
}
