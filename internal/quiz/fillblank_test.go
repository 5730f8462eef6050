package quiz

import (
	"errors"
	"testing"

	"lesson-author-service/internal/domain"
)

func TestSetContentDerivesBlanksInOrder(t *testing.T) {
	q, _ := NewQuestion(domain.KindFillBlank, 0)
	if err := SetContent(&q, "A [x] B [y] C"); err != nil {
		t.Fatalf("set content: %v", err)
	}
	if len(q.Blanks) != 2 {
		t.Fatalf("expected 2 blanks, got %d", len(q.Blanks))
	}
	if q.Blanks[0].Answer != "x" || q.Blanks[1].Answer != "y" {
		t.Fatalf("expected answers [x y], got %+v", q.Blanks)
	}
}

func TestSetContentNoBrackets(t *testing.T) {
	q, _ := NewQuestion(domain.KindFillBlank, 0)
	if err := SetContent(&q, "no blanks here"); err != nil {
		t.Fatalf("set content: %v", err)
	}
	if len(q.Blanks) != 0 {
		t.Fatalf("expected no blanks, got %+v", q.Blanks)
	}
}

func TestSetContentUnmatchedBracketsStayLiteral(t *testing.T) {
	q, _ := NewQuestion(domain.KindFillBlank, 0)
	if err := SetContent(&q, "open [a] then [ dangling"); err != nil {
		t.Fatalf("set content: %v", err)
	}
	if len(q.Blanks) != 1 || q.Blanks[0].Answer != "a" {
		t.Fatalf("expected single blank a, got %+v", q.Blanks)
	}

	if err := SetContent(&q, "only ] closers ] here"); err != nil {
		t.Fatalf("set content: %v", err)
	}
	if len(q.Blanks) != 0 {
		t.Fatalf("expected no blanks, got %+v", q.Blanks)
	}
}

func TestRederivationMintsFreshIDs(t *testing.T) {
	q, _ := NewQuestion(domain.KindFillBlank, 0)
	content := "Capital of [France] is [Paris]"
	if err := SetContent(&q, content); err != nil {
		t.Fatalf("set content: %v", err)
	}
	first := append([]domain.Blank(nil), q.Blanks...)

	if err := SetContent(&q, content); err != nil {
		t.Fatalf("re-derive: %v", err)
	}
	if len(q.Blanks) != len(first) {
		t.Fatalf("re-derivation changed blank count: %d vs %d", len(q.Blanks), len(first))
	}
	for i := range first {
		if q.Blanks[i].Answer != first[i].Answer {
			t.Fatalf("answers drifted at %d: %q vs %q", i, q.Blanks[i].Answer, first[i].Answer)
		}
		if q.Blanks[i].ID == first[i].ID {
			t.Fatalf("expected fresh id at %d, got reused %s", i, first[i].ID)
		}
	}
}

func TestDefaultFillBlankHasDerivedBlank(t *testing.T) {
	q, _ := NewQuestion(domain.KindFillBlank, 0)
	if len(q.Blanks) != 1 || q.Blanks[0].Answer != "answer" {
		t.Fatalf("expected placeholder blank derived from content, got %+v", q.Blanks)
	}
}

func TestSetContentRejectsWrongKind(t *testing.T) {
	q, _ := NewQuestion(domain.KindSort, 0)
	if err := SetContent(&q, "[a]"); !errors.Is(err, domain.ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}
