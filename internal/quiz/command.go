package quiz

import (
	"fmt"

	"lesson-author-service/internal/domain"
)

// Command op names, one per editor operation. The websocket transport
// and the CLI drive the editor exclusively through these.
const (
	OpAddQuestion    = "add_question"
	OpRemoveQuestion = "remove_question"
	OpSetPrompt      = "set_prompt"
	OpSetPoints      = "set_points"

	OpAddOption        = "add_option"
	OpUpdateOption     = "update_option"
	OpRemoveOption     = "remove_option"
	OpSetCorrectOption = "set_correct_option"

	OpAddAnswer        = "add_answer"
	OpUpdateAnswer     = "update_answer"
	OpRemoveAnswer     = "remove_answer"
	OpSetCaseSensitive = "set_case_sensitive"

	OpSetContent = "set_content"

	OpAddItem          = "add_item"
	OpUpdateItem       = "update_item"
	OpRemoveItem       = "remove_item"
	OpMoveItem         = "move_item"
	OpToggleDistractor = "toggle_distractor"

	OpAddPair    = "add_pair"
	OpUpdatePair = "update_pair"
	OpRemovePair = "remove_pair"

	OpUpdateSettings = "update_settings"
)

// Command is the single envelope for edit operations. Only the fields
// relevant to Op need to be set.
type Command struct {
	Op         string      `json:"op"`
	Kind       domain.Kind `json:"kind,omitempty"`       // add_question
	QuestionID string      `json:"questionId,omitempty"` // all question-scoped ops
	ElementID  string      `json:"elementId,omitempty"`  // option/item/pair id
	Index      int         `json:"index,omitempty"`      // short-answer index, move_item position
	Direction  Direction   `json:"direction,omitempty"`  // move_item
	Text       string      `json:"text,omitempty"`       // prompts, option/item/answer text, fill content
	Left       string      `json:"left,omitempty"`       // update_pair
	Right      string      `json:"right,omitempty"`      // update_pair
	Points     int         `json:"points,omitempty"`     // set_points
	Flag       bool        `json:"flag,omitempty"`       // set_case_sensitive

	Settings *domain.QuizSettings `json:"settings,omitempty"` // update_settings
}

// Apply dispatches a command onto the editor and its per-kind mutators.
// The returned id is the created element's id for add ops, otherwise
// empty. Errors from mutators pass through unchanged so callers can
// match the domain sentinels.
func (e *Editor) Apply(cmd Command) (string, error) {
	switch cmd.Op {
	case OpAddQuestion:
		return e.AddQuestion(cmd.Kind)
	case OpRemoveQuestion:
		e.RemoveQuestion(cmd.QuestionID)
		return "", nil
	case OpUpdateSettings:
		if cmd.Settings == nil {
			return "", fmt.Errorf("%w: missing settings payload", domain.ErrInvalidSettings)
		}
		return "", e.UpdateSettings(*cmd.Settings)
	}

	q, err := e.Question(cmd.QuestionID)
	if err != nil {
		return "", err
	}

	switch cmd.Op {
	case OpSetPrompt:
		SetPrompt(q, cmd.Text)
		return "", nil
	case OpSetPoints:
		return "", SetPoints(q, cmd.Points)

	case OpAddOption:
		opt, err := AddOption(q)
		return opt.ID, err
	case OpUpdateOption:
		return "", UpdateOptionText(q, cmd.ElementID, cmd.Text)
	case OpRemoveOption:
		return "", RemoveOption(q, cmd.ElementID)
	case OpSetCorrectOption:
		return "", SetCorrectOption(q, cmd.ElementID)

	case OpAddAnswer:
		return "", AddAnswer(q)
	case OpUpdateAnswer:
		return "", UpdateAnswer(q, cmd.Index, cmd.Text)
	case OpRemoveAnswer:
		return "", RemoveAnswer(q, cmd.Index)
	case OpSetCaseSensitive:
		return "", SetCaseSensitive(q, cmd.Flag)

	case OpSetContent:
		return "", SetContent(q, cmd.Text)

	case OpAddItem:
		item, err := AddItem(q)
		return item.ID, err
	case OpUpdateItem:
		return "", UpdateItemContent(q, cmd.ElementID, cmd.Text)
	case OpRemoveItem:
		return "", RemoveItem(q, cmd.ElementID)
	case OpMoveItem:
		return "", MoveItem(q, cmd.Index, cmd.Direction)
	case OpToggleDistractor:
		return "", ToggleDistractor(q, cmd.ElementID)

	case OpAddPair:
		pair, err := AddPair(q)
		return pair.ID, err
	case OpUpdatePair:
		return "", UpdatePair(q, cmd.ElementID, cmd.Left, cmd.Right)
	case OpRemovePair:
		return "", RemovePair(q, cmd.ElementID)
	}
	return "", fmt.Errorf("unsupported command op %q", cmd.Op)
}
