package quiz

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCategory is assigned to any question uploaded without one.
const DefaultCategory = "general affairs"

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether date is in YYYY-MM-DD form.
func ValidDate(date string) bool { return dateRE.MatchString(date) }

// NormalizeCategory trims, lowercases and collapses internal whitespace.
func NormalizeCategory(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Normalize validates a payload and rewrites it into canonical stored form:
// every question gets a normalized non-empty category, the correct answer is
// resolved to its index form, and the distinct category set is recomputed in
// first-appearance order. The write is all-or-nothing: any invalid question
// fails the whole document.
func Normalize(doc *Document) error {
	if len(doc.Questions) == 0 {
		return ErrNoQuestions
	}
	seen := make(map[string]bool)
	doc.QuestionCategories = doc.QuestionCategories[:0]
	for i := range doc.Questions {
		q := &doc.Questions[i]
		if len(q.Options) < 2 {
			return fmt.Errorf("%w %d: need at least 2 options", ErrBadQuestion, i+1)
		}
		idx, err := q.Correct.Resolve(q.Options)
		if err != nil {
			return fmt.Errorf("%w %d: %v", ErrBadQuestion, i+1, err)
		}
		q.Correct = CorrectIndex(idx)
		cat := NormalizeCategory(q.Category)
		if cat == "" {
			cat = DefaultCategory
		}
		q.Category = cat
		if !seen[cat] {
			seen[cat] = true
			doc.QuestionCategories = append(doc.QuestionCategories, cat)
		}
	}
	return nil
}
