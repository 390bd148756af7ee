package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prepwise/dailyquiz/internal/quiz"
	"github.com/prepwise/dailyquiz/internal/session"
)

func completedSession(t *testing.T) (*session.Session, quiz.Document) {
	t.Helper()
	doc := quiz.Document{
		Date: "2025-06-01",
		Questions: []quiz.Question{
			{Text: "2+2?", Options: []string{"3", "4", "5"}, Correct: quiz.CorrectIndex(1), Rationale: "basic math"},
			{Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, Correct: quiz.CorrectIndex(0)},
			{Text: "Red planet?", Options: []string{"Venus", "Mars"}, Correct: quiz.CorrectIndex(1)},
		},
	}
	s := session.New()
	if err := s.Load(doc); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SelectOption(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SelectOption(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if err := s.Skip(2); err != nil {
		t.Fatal(err)
	}
	if s.State() != session.StateCompleted {
		t.Fatal("session did not complete")
	}
	return s, doc
}

func TestRenderRequiresCompletion(t *testing.T) {
	doc := quiz.Document{Date: "2025-06-01", Questions: []quiz.Question{
		{Text: "q", Options: []string{"a", "b"}, Correct: quiz.CorrectIndex(0)},
	}}
	s := session.New()
	if err := s.Load(doc); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	g := NewGenerator(dir)
	if _, err := g.Render(s, doc); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("Render on active session: %v, want ErrNotCompleted", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed render left %d files behind", len(entries))
	}
}

func TestRenderRejectsMismatchedDocument(t *testing.T) {
	s, _ := completedSession(t)
	other := quiz.Document{Date: "2025-06-01", Questions: []quiz.Question{
		{Text: "q", Options: []string{"a", "b"}, Correct: quiz.CorrectIndex(0)},
	}}
	g := NewGenerator(t.TempDir())
	if _, err := g.Render(s, other); !errors.Is(err, ErrRender) {
		t.Errorf("mismatched document: %v, want ErrRender", err)
	}
}

func TestRenderWritesPDF(t *testing.T) {
	s, doc := completedSession(t)
	dir := t.TempDir()

	path, err := NewGenerator(dir).Render(s, doc)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("report written to %s, want inside %s", path, dir)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "quiz-report-2025-06-01-") || !strings.HasSuffix(name, ".pdf") {
		t.Errorf("report name = %q", name)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf, []byte("%PDF")) {
		t.Errorf("file does not start with a PDF header: %q", buf[:min(8, len(buf))])
	}
	if len(buf) < 500 {
		t.Errorf("report is %d bytes, suspiciously small", len(buf))
	}
}

func TestRenderCreatesOutDir(t *testing.T) {
	s, doc := completedSession(t)
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := NewGenerator(dir).Render(s, doc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat report: %v", err)
	}
}

func TestRenderPaginatesLongQuiz(t *testing.T) {
	long := strings.Repeat("A reasonably wordy question body that wraps across lines. ", 4)
	var qs []quiz.Question
	for i := 0; i < 30; i++ {
		qs = append(qs, quiz.Question{
			Text:      long,
			Options:   []string{"alpha", "beta", "gamma", "delta"},
			Correct:   quiz.CorrectIndex(i % 4),
			Rationale: "Because " + long,
		})
	}
	doc := quiz.Document{Date: "2025-06-01", Questions: qs}

	s := session.New()
	if err := s.Load(doc); err != nil {
		t.Fatal(err)
	}
	for i := range qs {
		if _, err := s.SelectOption(i, 0); err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(); err != nil && !errors.Is(err, session.ErrNotActive) {
			t.Fatal(err)
		}
	}
	if err := s.Complete(); err != nil {
		t.Fatal(err)
	}

	path, err := NewGenerator(t.TempDir()).Render(s, doc)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() < 5000 {
		t.Errorf("long report is %d bytes, expected a multi-page document", info.Size())
	}
}
