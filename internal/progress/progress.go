// Package progress keeps the best-effort local counters: daily streak, last
// played date and personal high score. It sits outside the session machine's
// authoritative data; losing this file loses nothing but bragging rights.
package progress

import (
	"encoding/json"
	"os"
	"time"
)

type Snapshot struct {
	Streak     int    `json:"streak"`
	LastPlayed string `json:"lastPlayed"` // YYYY-MM-DD
	HighScore  int    `json:"highScore"`
}

type Tracker struct {
	path string
}

func NewTracker(path string) *Tracker { return &Tracker{path: path} }

// Load reads the saved counters; a missing or unreadable file yields zeros.
func (t *Tracker) Load() Snapshot {
	buf, err := os.ReadFile(t.path)
	if err != nil {
		return Snapshot{}
	}
	var s Snapshot
	if err := json.Unmarshal(buf, &s); err != nil {
		return Snapshot{}
	}
	return s
}

// Record applies one finished quiz on the given day: playing on consecutive
// days extends the streak, a same-day replay leaves it alone, a gap resets
// it to 1. The high score only moves up. Returns the updated snapshot and
// whether a new high score was set.
func (t *Tracker) Record(day time.Time, score int) (Snapshot, bool, error) {
	s := t.Load()
	today := day.Format("2006-01-02")
	yesterday := day.AddDate(0, 0, -1).Format("2006-01-02")

	if s.LastPlayed != today {
		if s.LastPlayed == yesterday {
			s.Streak++
		} else {
			s.Streak = 1
		}
		s.LastPlayed = today
	}

	newBest := score > s.HighScore
	if newBest {
		s.HighScore = score
	}

	buf, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return s, newBest, err
	}
	if err := os.WriteFile(t.path, buf, 0o644); err != nil {
		return s, newBest, err
	}
	return s, newBest, nil
}

// Reset discards all counters.
func (t *Tracker) Reset() error {
	err := os.Remove(t.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
