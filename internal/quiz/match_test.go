package quiz

import (
	"errors"
	"testing"

	"lesson-author-service/internal/domain"
)

func TestMatchPairEditing(t *testing.T) {
	q, err := NewQuestion(domain.KindMatch, 0)
	if err != nil {
		t.Fatalf("new question: %v", err)
	}

	first, err := AddPair(&q)
	if err != nil {
		t.Fatalf("add pair: %v", err)
	}
	second, err := AddPair(&q)
	if err != nil {
		t.Fatalf("add pair: %v", err)
	}

	if err := UpdatePair(&q, first.ID, "1/2", "0.5"); err != nil {
		t.Fatalf("update pair: %v", err)
	}
	if q.Pairs[0].Left != "1/2" || q.Pairs[0].Right != "0.5" {
		t.Fatalf("unexpected pair %+v", q.Pairs[0])
	}
	if q.Pairs[1].Left != "" || q.Pairs[1].Right != "" {
		t.Fatalf("sibling pair changed: %+v", q.Pairs[1])
	}

	// Duplicates are allowed.
	if err := UpdatePair(&q, second.ID, "1/2", "0.5"); err != nil {
		t.Fatalf("duplicate pair: %v", err)
	}

	if err := RemovePair(&q, first.ID); err != nil {
		t.Fatalf("remove pair: %v", err)
	}
	if len(q.Pairs) != 1 || q.Pairs[0].ID != second.ID {
		t.Fatalf("unexpected pairs after removal %+v", q.Pairs)
	}
}

func TestMatchUnknownPair(t *testing.T) {
	q, _ := NewQuestion(domain.KindMatch, 0)
	if err := UpdatePair(&q, "missing", "l", "r"); !errors.Is(err, domain.ErrPairNotFound) {
		t.Fatalf("expected pair-not-found, got %v", err)
	}
	if err := RemovePair(&q, "missing"); !errors.Is(err, domain.ErrPairNotFound) {
		t.Fatalf("expected pair-not-found, got %v", err)
	}
}

func TestMatchMutatorsRejectWrongKind(t *testing.T) {
	q, _ := NewQuestion(domain.KindClickOrder, 0)
	if _, err := AddPair(&q); !errors.Is(err, domain.ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}
