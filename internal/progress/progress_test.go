package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLoadMissingFileYieldsZeros(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "progress.json"))
	if s := tr.Load(); s != (Snapshot{}) {
		t.Errorf("fresh load = %+v, want zeros", s)
	}
}

func TestLoadCorruptFileYieldsZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if s := NewTracker(path).Load(); s != (Snapshot{}) {
		t.Errorf("corrupt load = %+v, want zeros", s)
	}
}

func TestStreakRules(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "progress.json"))

	s, _, err := tr.Record(day("2025-06-01"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if s.Streak != 1 || s.LastPlayed != "2025-06-01" {
		t.Fatalf("first play = %+v", s)
	}

	// Same-day replay leaves the streak alone.
	s, _, _ = tr.Record(day("2025-06-01"), 2)
	if s.Streak != 1 {
		t.Errorf("same-day replay streak = %d, want 1", s.Streak)
	}

	// Next calendar day extends it.
	s, _, _ = tr.Record(day("2025-06-02"), 4)
	if s.Streak != 2 {
		t.Errorf("consecutive-day streak = %d, want 2", s.Streak)
	}

	// A gap resets to 1.
	s, _, _ = tr.Record(day("2025-06-05"), 1)
	if s.Streak != 1 {
		t.Errorf("post-gap streak = %d, want 1", s.Streak)
	}
}

func TestHighScoreOnlyMovesUp(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "progress.json"))

	s, best, _ := tr.Record(day("2025-06-01"), 5)
	if !best || s.HighScore != 5 {
		t.Fatalf("first score: best=%v snapshot=%+v", best, s)
	}
	s, best, _ = tr.Record(day("2025-06-02"), 3)
	if best || s.HighScore != 5 {
		t.Errorf("lower score moved the high score: best=%v snapshot=%+v", best, s)
	}
	s, best, _ = tr.Record(day("2025-06-03"), 7)
	if !best || s.HighScore != 7 {
		t.Errorf("higher score: best=%v snapshot=%+v", best, s)
	}
}

func TestRecordPersistsAcrossTrackers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if _, _, err := NewTracker(path).Record(day("2025-06-01"), 4); err != nil {
		t.Fatal(err)
	}
	s := NewTracker(path).Load()
	if s.Streak != 1 || s.HighScore != 4 || s.LastPlayed != "2025-06-01" {
		t.Errorf("reloaded snapshot = %+v", s)
	}
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	tr := NewTracker(path)
	if _, _, err := tr.Record(day("2025-06-01"), 4); err != nil {
		t.Fatal(err)
	}
	if err := tr.Reset(); err != nil {
		t.Fatal(err)
	}
	if s := tr.Load(); s != (Snapshot{}) {
		t.Errorf("post-reset load = %+v, want zeros", s)
	}
	// Resetting again is a no-op.
	if err := tr.Reset(); err != nil {
		t.Errorf("second reset: %v", err)
	}
}
