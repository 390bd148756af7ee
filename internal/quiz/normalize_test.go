package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  Current Affairs  ", "current affairs"},
		{"GENERAL\t\tKnowledge", "general knowledge"},
		{"science", "science"},
		{"  a  b   c ", "a b c"},
	}
	for _, c := range cases {
		if got := NormalizeCategory(c.in); got != c.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidDate(t *testing.T) {
	for _, d := range []string{"2025-06-01", "1999-12-31"} {
		if !ValidDate(d) {
			t.Errorf("ValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range []string{"", "25-06-01", "2025/06/01", "2025-6-1", "not-a-date"} {
		if ValidDate(d) {
			t.Errorf("ValidDate(%q) = true, want false", d)
		}
	}
}

func TestCorrectUnmarshalAndResolve(t *testing.T) {
	options := []string{"3", "4", "5"}

	var q Question
	if err := json.Unmarshal([]byte(`{"q":"2+2?","options":["3","4","5"],"correct":1}`), &q); err != nil {
		t.Fatal(err)
	}
	if idx, err := q.Correct.Resolve(options); err != nil || idx != 1 {
		t.Fatalf("numeric correct resolved to (%d, %v), want (1, nil)", idx, err)
	}

	if err := json.Unmarshal([]byte(`{"q":"2+2?","options":["3","4","5"],"correct":"4"}`), &q); err != nil {
		t.Fatal(err)
	}
	if idx, err := q.Correct.Resolve(options); err != nil || idx != 1 {
		t.Fatalf("string correct resolved to (%d, %v), want (1, nil)", idx, err)
	}

	if _, err := CorrectText("42").Resolve(options); err == nil {
		t.Fatal("expected error for string matching no option")
	}
	if _, err := CorrectIndex(3).Resolve(options); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
	if _, err := (Correct{}).Resolve(options); err == nil {
		t.Fatal("expected error for missing correct field")
	}
}

func TestCorrectMarshalRoundTrip(t *testing.T) {
	buf, err := json.Marshal(Question{Text: "x", Options: []string{"a", "b"}, Correct: CorrectIndex(1)})
	if err != nil {
		t.Fatal(err)
	}
	var q Question
	if err := json.Unmarshal(buf, &q); err != nil {
		t.Fatal(err)
	}
	if idx, err := q.CorrectIndex(); err != nil || idx != 1 {
		t.Fatalf("round-tripped correct = (%d, %v), want (1, nil)", idx, err)
	}
}

func TestNormalizeDefaultsAndResolves(t *testing.T) {
	doc := Document{Questions: []Question{
		{Text: "q1", Options: []string{"a", "b"}, Correct: CorrectText("b")},
		{Text: "q2", Options: []string{"a", "b"}, Correct: CorrectIndex(0), Category: "  Current   AFFAIRS "},
		{Text: "q3", Options: []string{"a", "b"}, Correct: CorrectIndex(1), Category: "current affairs"},
	}}
	if err := Normalize(&doc); err != nil {
		t.Fatal(err)
	}

	if doc.Questions[0].Category != DefaultCategory {
		t.Errorf("missing category defaulted to %q, want %q", doc.Questions[0].Category, DefaultCategory)
	}
	if doc.Questions[1].Category != "current affairs" {
		t.Errorf("category normalized to %q", doc.Questions[1].Category)
	}
	if idx, err := doc.Questions[0].CorrectIndex(); err != nil || idx != 1 {
		t.Errorf("correct not resolved at write time: (%d, %v)", idx, err)
	}
	want := []string{DefaultCategory, "current affairs"}
	if len(doc.QuestionCategories) != 2 || doc.QuestionCategories[0] != want[0] || doc.QuestionCategories[1] != want[1] {
		t.Errorf("QuestionCategories = %v, want %v", doc.QuestionCategories, want)
	}
}

func TestNormalizeRejects(t *testing.T) {
	if err := Normalize(&Document{}); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("empty questions: got %v, want ErrNoQuestions", err)
	}

	doc := Document{Questions: []Question{{Text: "q", Options: []string{"only"}, Correct: CorrectIndex(0)}}}
	if err := Normalize(&doc); !errors.Is(err, ErrBadQuestion) {
		t.Errorf("single option: got %v, want ErrBadQuestion", err)
	}

	doc = Document{Questions: []Question{{Text: "q", Options: []string{"a", "b"}, Correct: CorrectText("zzz")}}}
	if err := Normalize(&doc); !errors.Is(err, ErrBadQuestion) {
		t.Errorf("unresolvable correct: got %v, want ErrBadQuestion", err)
	}
}
