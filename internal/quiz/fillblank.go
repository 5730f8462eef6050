package quiz

import (
	"regexp"

	"lesson-author-service/internal/domain"
)

// blankPattern matches the shortest span between a '[' and the next ']'.
// Unmatched brackets fall outside any match and stay literal text.
var blankPattern = regexp.MustCompile(`\[(.*?)\]`)

// SetContent replaces the fill_blank text and rebuilds the blank list
// from it. The previous blanks are discarded entirely; each bracketed
// span becomes a fresh blank, in the order the brackets appear.
func SetContent(q *domain.Question, content string) error {
	if err := requireKind(q, domain.KindFillBlank); err != nil {
		return err
	}
	q.Content = content
	q.Blanks = deriveBlanks(content)
	return nil
}

// deriveBlanks is a pure function of the content; ids are minted per
// call and are not stable across re-derivation.
func deriveBlanks(content string) []domain.Blank {
	matches := blankPattern.FindAllStringSubmatch(content, -1)
	blanks := make([]domain.Blank, 0, len(matches))
	for _, m := range matches {
		blanks = append(blanks, domain.Blank{ID: domain.NewID(), Answer: m[1]})
	}
	return blanks
}
