package quizfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

const sampleJSON = `{"questions": [{"q": "2+2?", "options": ["3", "4"], "correct": 1}]}`

func writeQuizFile(t *testing.T, dir, date string) {
	t.Helper()
	name, err := Filename(date)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilenameMapping(t *testing.T) {
	name, err := Filename("2025-06-01")
	if err != nil || name != "25-06-01.json" {
		t.Errorf("Filename = (%q, %v), want 25-06-01.json", name, err)
	}
	if _, err := Filename("June 1st"); !errors.Is(err, quiz.ErrInvalidDate) {
		t.Errorf("bad date: %v, want ErrInvalidDate", err)
	}

	date, ok := DateFromFilename("25-06-01.json")
	if !ok || date != "2025-06-01" {
		t.Errorf("DateFromFilename = (%q, %v)", date, ok)
	}
	for _, name := range []string{"notes.txt", "2025-06-01.json", "25-06-01.json.bak"} {
		if _, ok := DateFromFilename(name); ok {
			t.Errorf("DateFromFilename accepted %q", name)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeQuizFile(t, dir, "2025-06-01")

	doc, err := Load(dir, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Date != "2025-06-01" || doc.SourceFile != "25-06-01.json" {
		t.Errorf("doc = %+v, want date and source file stamped", doc)
	}
	if len(doc.Questions) != 1 {
		t.Errorf("got %d questions", len(doc.Questions))
	}

	if _, err := Load(dir, "2025-06-02"); !errors.Is(err, quiz.ErrNotFound) {
		t.Errorf("missing file: %v, want ErrNotFound", err)
	}
	if _, err := Load(dir, "nonsense"); !errors.Is(err, quiz.ErrInvalidDate) {
		t.Errorf("bad date: %v, want ErrInvalidDate", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "25-06-03.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, "2025-06-03"); err == nil {
		t.Error("corrupt file loaded without error")
	}
}

func TestRecentProbesBackward(t *testing.T) {
	dir := t.TempDir()
	writeQuizFile(t, dir, "2025-06-10")
	writeQuizFile(t, dir, "2025-06-05")
	writeQuizFile(t, dir, "2025-03-01") // beyond the probe window

	from := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	found := Recent(dir, from, 5, 30)
	if len(found) != 2 {
		t.Fatalf("found %d files, want 2 within the window", len(found))
	}
	if found[0].Date != "2025-06-10" || found[1].Date != "2025-06-05" {
		t.Errorf("probe order = %v, want newest first", found)
	}

	// limit caps the result even when more files exist.
	if found := Recent(dir, from, 1, 30); len(found) != 1 || found[0].Date != "2025-06-10" {
		t.Errorf("limited probe = %v", found)
	}

	if found := Recent(dir, from, 5, 0); len(found) != 2 {
		t.Errorf("default window found %d, want 2 (90-day probe)", len(found))
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeQuizFile(t, dir, "2025-06-02")
	writeQuizFile(t, dir, "2025-06-01")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 2 {
		t.Fatalf("scan found %d files, want 2", len(found))
	}
	if found[0].Date != "2025-06-01" || found[1].Date != "2025-06-02" {
		t.Errorf("scan order = %v, want lexical", found)
	}
}
