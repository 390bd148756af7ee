package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no document exists for the requested date.
	ErrNotFound = errors.New("quiz not found for this date")
	// ErrInvalidDate means the date is missing or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
	// ErrNoQuestions means the payload has no non-empty questions array.
	ErrNoQuestions = errors.New("payload must include a non-empty questions array")
	// ErrBadQuestion wraps per-question validation failures (too few options,
	// unresolvable correct answer).
	ErrBadQuestion = errors.New("invalid question")
)

// Correct is the dual-representation correct-answer field: either an index
// into the question's options or the text of one option. It is resolved to a
// canonical index at write time; a stored document always carries the index
// form.
type Correct struct {
	index   int
	text    string
	isIndex bool
	set     bool
}

// CorrectIndex builds the canonical index form.
func CorrectIndex(i int) Correct { return Correct{index: i, isIndex: true, set: true} }

// CorrectText builds the option-text form, as found in raw uploads.
func CorrectText(s string) Correct { return Correct{text: s, set: true} }

func (c *Correct) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*c = CorrectIndex(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = CorrectText(s)
		return nil
	}
	return errors.New("correct must be an option index or an option string")
}

func (c Correct) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	if c.isIndex {
		return json.Marshal(c.index)
	}
	return json.Marshal(c.text)
}

// Resolve returns the option index this field designates, or an error when
// the index is out of range, the string matches no option, or the field is
// absent.
func (c Correct) Resolve(options []string) (int, error) {
	if !c.set {
		return -1, errors.New("missing correct answer")
	}
	if c.isIndex {
		if c.index < 0 || c.index >= len(options) {
			return -1, fmt.Errorf("correct index %d out of range for %d options", c.index, len(options))
		}
		return c.index, nil
	}
	for i, opt := range options {
		if opt == c.text {
			return i, nil
		}
	}
	return -1, fmt.Errorf("correct answer %q matches no option", c.text)
}

// Question is one multiple-choice question. The wire field names follow the
// quiz data files ("q" for the prompt).
type Question struct {
	Text      string   `json:"q"`
	Options   []string `json:"options"`
	Correct   Correct  `json:"correct"`
	Rationale string   `json:"rationale,omitempty"`
	Category  string   `json:"category,omitempty"`
}

// CorrectIndex resolves the correct option index for this question.
func (q Question) CorrectIndex() (int, error) { return q.Correct.Resolve(q.Options) }

// Document is the full question set and metadata for one calendar date.
// Content, Category and Difficulty come from the static quiz-file format and
// pass through the store untouched.
type Document struct {
	Date               string     `json:"date,omitempty"`
	Questions          []Question `json:"questions"`
	Content            string     `json:"content,omitempty"`
	Category           string     `json:"category,omitempty"`
	Difficulty         string     `json:"difficulty,omitempty"`
	SourceFile         string     `json:"sourceFile,omitempty"`
	QuestionCategories []string   `json:"questionCategories,omitempty"`
}

// DateEntry is one row of a detailed date listing.
type DateEntry struct {
	Date               string   `json:"date"`
	QuestionCategories []string `json:"questionCategories"`
}

// Store persists one document per calendar date with full-replace upsert
// semantics. Concurrent upserts of the same date are last-writer-wins.
type Store interface {
	Upsert(ctx context.Context, date string, payload Document, sourceFile string) (Document, error)
	GetByDate(ctx context.Context, date string) (Document, error)
	ListDates(ctx context.Context, category string) ([]DateEntry, error)
	ListCategories(ctx context.Context) ([]string, error)
}
