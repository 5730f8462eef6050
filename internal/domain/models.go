package domain

import "time"

// Kind discriminates the six question shapes.
type Kind string

const (
	KindMultiChoice Kind = "multichoice"
	KindShortAnswer Kind = "short_answer"
	KindFillBlank   Kind = "fill_blank"
	KindSort        Kind = "sort"
	KindMatch       Kind = "match"
	KindClickOrder  Kind = "click_order"
)

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMultiChoice, KindShortAnswer, KindFillBlank, KindSort, KindMatch, KindClickOrder:
		return true
	}
	return false
}

// Option is a multichoice answer candidate.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Blank is an answer slot derived from bracketed text in a fill_blank
// question. Blanks are never edited directly; they are recomputed from
// the question content on every content change.
type Blank struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

// OrderItem is one entry of a sort or click_order question. Order is the
// authoritative 0-based rank and always matches the item's slice index.
type OrderItem struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	Order        int    `json:"order"`
	IsDistractor bool   `json:"isDistractor,omitempty"`
}

// Pair is one left/right association of a match question.
type Pair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is the tagged union over the six kinds. Exactly one payload
// group is populated, matching Kind; the others stay nil and are elided
// from JSON.
type Question struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"type"`
	Prompt string `json:"question"`
	Points int    `json:"points"`

	// multichoice
	Options []Option `json:"options,omitempty"`

	// short_answer
	CorrectAnswers []string `json:"correctAnswers,omitempty"`
	CaseSensitive  bool     `json:"caseSensitive,omitempty"`

	// fill_blank
	Content string  `json:"content,omitempty"`
	Blanks  []Blank `json:"blanks,omitempty"`

	// sort, click_order
	Items []OrderItem `json:"items,omitempty"`

	// match
	Pairs []Pair `json:"pairs,omitempty"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]Option(nil), q.Options...)
	}
	if q.CorrectAnswers != nil {
		out.CorrectAnswers = append([]string(nil), q.CorrectAnswers...)
	}
	if q.Blanks != nil {
		out.Blanks = append([]Blank(nil), q.Blanks...)
	}
	if q.Items != nil {
		out.Items = append([]OrderItem(nil), q.Items...)
	}
	if q.Pairs != nil {
		out.Pairs = append([]Pair(nil), q.Pairs...)
	}
	return out
}

// QuizSettings holds quiz-level options.
type QuizSettings struct {
	PassingScore     int  `json:"passingScore"`        // percentage, 0..100
	ShuffleQuestions bool `json:"shuffleQuestions"`
	TimeLimit        int  `json:"timeLimit,omitempty"` // minutes, 0 = unlimited
}

// QuizDocument is the full quiz unit: ordered questions plus settings.
// Settings is a pointer so that an absent settings block is detectable
// at hydration; after normalization it is never nil.
type QuizDocument struct {
	Questions []Question    `json:"questions"`
	Settings  *QuizSettings `json:"settings"`
}

// Clone returns a deep copy of the document, safe to hand to other
// goroutines or serialize while the original keeps mutating.
func (d QuizDocument) Clone() QuizDocument {
	out := QuizDocument{Questions: make([]Question, len(d.Questions))}
	for i, q := range d.Questions {
		out.Questions[i] = q.Clone()
	}
	if d.Settings != nil {
		s := *d.Settings
		out.Settings = &s
	}
	return out
}

// Lesson is the persisted authoring record. QuizData is nil for lessons
// that carry no quiz yet; opening such a lesson yields an empty document
// with default settings.
type Lesson struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Grade       string        `json:"grade"`
	Type        string        `json:"type"` // theory | practice
	Content     string        `json:"content"`
	CustomCSS   string        `json:"custom_css,omitempty"`
	QuizData    *QuizDocument `json:"quiz_data,omitempty"`
	IsPublished bool          `json:"is_published"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
}
