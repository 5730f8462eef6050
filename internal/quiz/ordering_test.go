package quiz

import (
	"errors"
	"testing"

	"lesson-author-service/internal/domain"
)

func newSortQuestion(t *testing.T, n int) domain.Question {
	t.Helper()
	q, err := NewQuestion(domain.KindSort, 0)
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	for i := 0; i < n; i++ {
		if _, err := AddItem(&q); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}
	return q
}

func assertOrdersMatchPositions(t *testing.T, q *domain.Question) {
	t.Helper()
	for i, item := range q.Items {
		if item.Order != i {
			t.Fatalf("item %s at position %d has order %d", item.ID, i, item.Order)
		}
	}
}

func TestMoveItemUpRenumbersAll(t *testing.T) {
	q := newSortQuestion(t, 4)
	movedID := q.Items[3].ID

	if err := MoveItem(&q, 3, MoveUp); err != nil {
		t.Fatalf("move: %v", err)
	}
	if q.Items[2].ID != movedID {
		t.Fatalf("expected moved item at index 2, got %s", q.Items[2].ID)
	}
	if q.Items[2].Order != 2 {
		t.Fatalf("expected moved item order 2, got %d", q.Items[2].Order)
	}
	assertOrdersMatchPositions(t, &q)
}

func TestMoveItemAtBoundaryStillRenumbers(t *testing.T) {
	q := newSortQuestion(t, 3)
	// Damage order fields to prove the move rewrites them even when no
	// swap happens.
	q.Items[1].Order = 99

	if err := MoveItem(&q, 0, MoveUp); err != nil {
		t.Fatalf("move up at top: %v", err)
	}
	assertOrdersMatchPositions(t, &q)

	q.Items[0].Order = -5
	if err := MoveItem(&q, 2, MoveDown); err != nil {
		t.Fatalf("move down at bottom: %v", err)
	}
	assertOrdersMatchPositions(t, &q)
}

func TestMoveItemOutOfRange(t *testing.T) {
	q := newSortQuestion(t, 2)
	if err := MoveItem(&q, 5, MoveUp); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected item-not-found, got %v", err)
	}
	if err := MoveItem(&q, -1, MoveDown); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected item-not-found, got %v", err)
	}
}

// Order must equal position after any sequence of add/remove/move.
func TestOrderInvariantAcrossMutationSequence(t *testing.T) {
	for _, kind := range []domain.Kind{domain.KindSort, domain.KindClickOrder} {
		q, err := NewQuestion(kind, 0)
		if err != nil {
			t.Fatalf("new question: %v", err)
		}
		for i := 0; i < 5; i++ {
			if _, err := AddItem(&q); err != nil {
				t.Fatalf("add item: %v", err)
			}
			assertOrdersMatchPositions(t, &q)
		}
		if err := MoveItem(&q, 4, MoveUp); err != nil {
			t.Fatalf("move: %v", err)
		}
		assertOrdersMatchPositions(t, &q)

		if err := RemoveItem(&q, q.Items[1].ID); err != nil {
			t.Fatalf("remove: %v", err)
		}
		assertOrdersMatchPositions(t, &q)

		if err := MoveItem(&q, 0, MoveDown); err != nil {
			t.Fatalf("move: %v", err)
		}
		assertOrdersMatchPositions(t, &q)

		if err := RemoveItem(&q, q.Items[len(q.Items)-1].ID); err != nil {
			t.Fatalf("remove last: %v", err)
		}
		assertOrdersMatchPositions(t, &q)
		if len(q.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(q.Items))
		}
	}
}

func TestToggleDistractor(t *testing.T) {
	q := newSortQuestion(t, 2)
	id := q.Items[1].ID
	otherContent := q.Items[0].Content

	if err := ToggleDistractor(&q, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !q.Items[1].IsDistractor {
		t.Fatalf("expected distractor flag set")
	}
	if q.Items[0].IsDistractor || q.Items[0].Content != otherContent {
		t.Fatalf("sibling item changed: %+v", q.Items[0])
	}

	if err := ToggleDistractor(&q, id); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if q.Items[1].IsDistractor {
		t.Fatalf("expected distractor flag cleared")
	}
}

func TestOrderingMutatorsRejectWrongKind(t *testing.T) {
	q, _ := NewQuestion(domain.KindMultiChoice, 0)
	if _, err := AddItem(&q); !errors.Is(err, domain.ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
	if err := MoveItem(&q, 0, MoveUp); !errors.Is(err, domain.ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}
