// Package codec encodes and decodes the lesson exchange package: the
// JSON file teachers pass around, which may carry // and /* */ comments
// copied from the distributed template.
package codec

import (
	"encoding/json"
	"fmt"

	"lesson-author-service/internal/domain"
	"lesson-author-service/internal/quiz"
)

// LessonPackage is the externally exchanged lesson shape.
type LessonPackage struct {
	Title     string               `json:"title"`
	Grade     string               `json:"grade,omitempty"`
	Type      string               `json:"type,omitempty"` // theory | practice
	Content   string               `json:"content"`
	CustomCSS string               `json:"custom_css,omitempty"`
	QuizData  *domain.QuizDocument `json:"quiz_data,omitempty"`
}

// DecodeLesson parses a lesson package, tolerating line and block
// comments in the JSON text. Missing title or content aborts the import;
// grade and type fall back to the template defaults, and a missing
// quiz_data becomes an empty normalized document.
func DecodeLesson(data []byte) (LessonPackage, error) {
	var pkg LessonPackage
	if err := json.Unmarshal(StripComments(data), &pkg); err != nil {
		return LessonPackage{}, fmt.Errorf("%w: %v", domain.ErrMalformedLesson, err)
	}
	if pkg.Title == "" {
		return LessonPackage{}, fmt.Errorf("%w: missing title", domain.ErrMalformedLesson)
	}
	if pkg.Content == "" {
		return LessonPackage{}, fmt.Errorf("%w: missing content", domain.ErrMalformedLesson)
	}
	if pkg.Grade == "" {
		pkg.Grade = "8"
	}
	if pkg.Type == "" {
		pkg.Type = "theory"
	}
	if pkg.QuizData == nil {
		pkg.QuizData = quiz.NewDocument()
	} else {
		quiz.Normalize(pkg.QuizData)
	}
	return pkg, nil
}

// ToLesson converts a decoded package into a storable lesson record.
func ToLesson(pkg LessonPackage) domain.Lesson {
	return domain.Lesson{
		Title:     pkg.Title,
		Grade:     pkg.Grade,
		Type:      pkg.Type,
		Content:   pkg.Content,
		CustomCSS: pkg.CustomCSS,
		QuizData:  pkg.QuizData,
	}
}

// EncodeLesson renders a lesson record as an importable package.
func EncodeLesson(lesson domain.Lesson) ([]byte, error) {
	pkg := LessonPackage{
		Title:     lesson.Title,
		Grade:     lesson.Grade,
		Type:      lesson.Type,
		Content:   lesson.Content,
		CustomCSS: lesson.CustomCSS,
		QuizData:  lesson.QuizData,
	}
	if pkg.QuizData == nil {
		pkg.QuizData = quiz.NewDocument()
	}
	return json.MarshalIndent(pkg, "", "  ")
}

// StripComments removes // line comments and /* */ block comments from
// otherwise-JSON text. Comment markers inside string literals are kept;
// an unterminated block comment swallows the rest of the input.
func StripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	const (
		plain = iota
		inString
		inLine
		inBlock
	)
	state := plain
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch state {
		case plain:
			switch {
			case c == '"':
				state = inString
				out = append(out, c)
			case c == '/' && i+1 < len(data) && data[i+1] == '/':
				state = inLine
				i++
			case c == '/' && i+1 < len(data) && data[i+1] == '*':
				state = inBlock
				i++
			default:
				out = append(out, c)
			}
		case inString:
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				out = append(out, data[i+1])
				i++
			} else if c == '"' {
				state = plain
			}
		case inLine:
			if c == '\n' {
				state = plain
				out = append(out, c)
			}
		case inBlock:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				state = plain
				i++
			}
		}
	}
	return out
}

// Template is the commented starter file offered for download next to
// the import button.
func Template() []byte {
	return []byte(`{
  // Required fields.
  "title": "Sample lesson",
  "content": "<h2>Lesson heading</h2><p>Lesson body...</p>",

  /* Optional fields; defaults shown. */
  "grade": "8",
  "type": "theory",
  "custom_css": ".highlight { color: red; }",

  "quiz_data": {
    "settings": { "passingScore": 80, "shuffleQuestions": false },
    "questions": [
      {
        "id": "q-1",
        "type": "multichoice",
        "question": "What is 2 + 2?",
        "points": 1,
        "options": [
          { "id": "o-1", "text": "3", "isCorrect": false },
          { "id": "o-2", "text": "4", "isCorrect": true }
        ]
      },
      {
        "id": "q-2",
        "type": "fill_blank",
        "question": "Fill in the blanks.",
        "points": 2,
        // Square brackets mark the blanks; the answer list is derived.
        "content": "The capital of [France] is [Paris].",
        "blanks": []
      }
    ]
  }
}
`)
}
