package domain

import "errors"

var (
	// ErrLessonNotFound is returned when a lesson id has no stored record.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrSessionNotFound is returned when no editing session is open for a lesson.
	ErrSessionNotFound = errors.New("editing session not found")
	// ErrQuestionNotFound indicates a question id is not in the document.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates an option id is not on the question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAnswerNotFound indicates a short-answer index is out of range.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrItemNotFound indicates a sort/click-order item id or index is invalid.
	ErrItemNotFound = errors.New("item not found")
	// ErrPairNotFound indicates a match pair id is not on the question.
	ErrPairNotFound = errors.New("pair not found")
	// ErrKindMismatch signals a mutator invoked against the wrong question
	// kind. This is a caller bug, never a silent no-op.
	ErrKindMismatch = errors.New("question kind mismatch")
	// ErrUnknownKind is returned for a kind tag outside the six variants.
	ErrUnknownKind = errors.New("unknown question kind")
	// ErrInvalidPoints rejects non-positive point values.
	ErrInvalidPoints = errors.New("points must be at least 1")
	// ErrInvalidSettings rejects out-of-range quiz settings.
	ErrInvalidSettings = errors.New("invalid quiz settings")
	// ErrMalformedLesson is returned when an imported lesson package is
	// missing required fields or is not parseable.
	ErrMalformedLesson = errors.New("malformed lesson package")
)
