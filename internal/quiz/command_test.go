package quiz

import (
	"errors"
	"strings"
	"testing"

	"lesson-author-service/internal/domain"
)

func TestApplyAddQuestionReturnsID(t *testing.T) {
	editor := NewEditor(nil)
	id, err := editor.Apply(Command{Op: OpAddQuestion, Kind: domain.KindMultiChoice})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if id == "" {
		t.Fatalf("expected created question id")
	}
	if _, err := editor.Question(id); err != nil {
		t.Fatalf("created question not found: %v", err)
	}
}

func TestApplyDrivesPerKindMutators(t *testing.T) {
	editor := NewEditor(nil)
	qid, err := editor.Apply(Command{Op: OpAddQuestion, Kind: domain.KindSort})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	itemID, err := editor.Apply(Command{Op: OpAddItem, QuestionID: qid})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if itemID == "" {
		t.Fatalf("expected created item id")
	}
	if _, err := editor.Apply(Command{Op: OpAddItem, QuestionID: qid}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := editor.Apply(Command{Op: OpUpdateItem, QuestionID: qid, ElementID: itemID, Text: "step one"}); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if _, err := editor.Apply(Command{Op: OpMoveItem, QuestionID: qid, Index: 1, Direction: MoveUp}); err != nil {
		t.Fatalf("move item: %v", err)
	}

	q, _ := editor.Question(qid)
	if q.Items[1].ID != itemID || q.Items[1].Content != "step one" {
		t.Fatalf("unexpected items after command sequence: %+v", q.Items)
	}
	if q.Items[0].Order != 0 || q.Items[1].Order != 1 {
		t.Fatalf("orders not positional: %+v", q.Items)
	}
}

func TestApplyQuestionScopedOpsRequireKnownQuestion(t *testing.T) {
	editor := NewEditor(nil)
	if _, err := editor.Apply(Command{Op: OpSetPrompt, QuestionID: "missing", Text: "x"}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question-not-found, got %v", err)
	}
}

func TestApplyUpdateSettings(t *testing.T) {
	editor := NewEditor(nil)
	if _, err := editor.Apply(Command{Op: OpUpdateSettings}); !errors.Is(err, domain.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings for missing payload, got %v", err)
	}

	s := domain.QuizSettings{PassingScore: 70, ShuffleQuestions: true}
	if _, err := editor.Apply(Command{Op: OpUpdateSettings, Settings: &s}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if got := editor.Settings(); got.PassingScore != 70 || !got.ShuffleQuestions {
		t.Fatalf("settings not applied: %+v", got)
	}
}

func TestApplyUnknownOp(t *testing.T) {
	editor := NewEditor(nil)
	qid, _ := editor.Apply(Command{Op: OpAddQuestion, Kind: domain.KindMatch})
	_, err := editor.Apply(Command{Op: "explode", QuestionID: qid})
	if err == nil || !strings.Contains(err.Error(), "explode") {
		t.Fatalf("expected unsupported-op error naming the op, got %v", err)
	}
}

func TestApplyAddOptionAndPairReturnIDs(t *testing.T) {
	editor := NewEditor(nil)

	mcID, _ := editor.Apply(Command{Op: OpAddQuestion, Kind: domain.KindMultiChoice})
	optID, err := editor.Apply(Command{Op: OpAddOption, QuestionID: mcID})
	if err != nil {
		t.Fatalf("add option: %v", err)
	}
	if _, err := editor.Apply(Command{Op: OpSetCorrectOption, QuestionID: mcID, ElementID: optID}); err != nil {
		t.Fatalf("set correct via command: %v", err)
	}

	matchID, _ := editor.Apply(Command{Op: OpAddQuestion, Kind: domain.KindMatch})
	pairID, err := editor.Apply(Command{Op: OpAddPair, QuestionID: matchID})
	if err != nil {
		t.Fatalf("add pair: %v", err)
	}
	if _, err := editor.Apply(Command{Op: OpUpdatePair, QuestionID: matchID, ElementID: pairID, Left: "l", Right: "r"}); err != nil {
		t.Fatalf("update pair via command: %v", err)
	}

	q, _ := editor.Question(matchID)
	if q.Pairs[0].Left != "l" || q.Pairs[0].Right != "r" {
		t.Fatalf("pair not updated: %+v", q.Pairs)
	}
}
