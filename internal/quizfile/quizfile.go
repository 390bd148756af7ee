// Package quizfile reads the static one-file-per-date quiz layout: a data
// directory of YY-MM-DD.json files. It backs the importer and the CLI
// player's offline fallback.
package quizfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

var fileRE = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})\.json$`)

// Filename maps a YYYY-MM-DD date to its quiz file name (2-digit year).
func Filename(date string) (string, error) {
	if !quiz.ValidDate(date) {
		return "", quiz.ErrInvalidDate
	}
	return date[2:] + ".json", nil
}

// DateFromFilename recovers the ISO date from a quiz file name; ok is false
// for names outside the convention. Years map into the 2000s, as the
// original importer did.
func DateFromFilename(name string) (string, bool) {
	m := fileRE.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("20%s-%s-%s", m[1], m[2], m[3]), true
}

// Load reads the quiz document for one date from dir. A missing file maps to
// quiz.ErrNotFound so callers treat it like an absent store document.
func Load(dir, date string) (quiz.Document, error) {
	name, err := Filename(date)
	if err != nil {
		return quiz.Document{}, err
	}
	buf, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return quiz.Document{}, quiz.ErrNotFound
		}
		return quiz.Document{}, err
	}
	var doc quiz.Document
	if err := json.Unmarshal(buf, &doc); err != nil {
		return quiz.Document{}, fmt.Errorf("decode %s: %w", name, err)
	}
	doc.Date = date
	doc.SourceFile = name
	return doc, nil
}

// Found is one quiz file located by Recent.
type Found struct {
	Date string
	Path string
}

// Recent walks backward from the given day, one calendar day at a time, and
// returns up to limit existing quiz files within maxProbe day-steps. This is
// the bounded probe used to surface the most recent quizzes when the exact
// date is absent.
func Recent(dir string, from time.Time, limit, maxProbe int) []Found {
	if maxProbe <= 0 {
		maxProbe = 90
	}
	var out []Found
	day := from
	for step := 0; step <= maxProbe && len(out) < limit; step++ {
		date := day.Format("2006-01-02")
		name, err := Filename(date)
		if err == nil {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				out = append(out, Found{Date: date, Path: path})
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return out
}

// Scan lists every quiz file in dir in lexical (chronological) order.
func Scan(dir string) ([]Found, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Found
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if date, ok := DateFromFilename(e.Name()); ok {
			out = append(out, Found{Date: date, Path: filepath.Join(dir, e.Name())})
		}
	}
	return out, nil
}
