package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prepwise/dailyquiz/internal/eventlog"
)

// SQLStore persists quiz days in SQL (sqlite or postgres) with the question
// payload as a JSON column and categories denormalized into a side table so
// category-filtered listings never scan payloads.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *eventlog.Repo
}

func NewSQLStore(db *sql.DB, driver string, events *eventlog.Repo) *SQLStore {
	return &SQLStore{db: db, driver: driver, events: events}
}

func (s *SQLStore) Upsert(ctx context.Context, date string, payload Document, sourceFile string) (Document, error) {
	if !ValidDate(date) {
		return Document{}, ErrInvalidDate
	}
	if err := Normalize(&payload); err != nil {
		return Document{}, err
	}
	payload.Date = date
	payload.SourceFile = sourceFile

	buf, err := json.Marshal(payload)
	if err != nil {
		return Document{}, fmt.Errorf("marshal payload: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Document{}, err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO quiz_days (date, payload_json, source_file, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$4)
		 ON CONFLICT (date) DO UPDATE SET payload_json=EXCLUDED.payload_json,
		   source_file=EXCLUDED.source_file, updated_at=EXCLUDED.updated_at`,
		date, string(buf), sourceFile, now)
	if err != nil {
		return Document{}, err
	}

	// Full replace: the category index follows the new payload exactly.
	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_day_categories WHERE date=$1`, date); err != nil {
		return Document{}, err
	}
	for pos, cat := range payload.QuestionCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quiz_day_categories (date, category, position) VALUES ($1,$2,$3)`,
			date, cat, pos); err != nil {
			return Document{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Document{}, err
	}

	if s.events != nil {
		data, _ := json.Marshal(map[string]any{
			"date":       date,
			"questions":  len(payload.Questions),
			"categories": payload.QuestionCategories,
		})
		if err := s.events.Append(ctx, eventlog.Event{Type: "quiz.upserted", Key: date, DataJSON: string(data)}); err != nil {
			log.Printf("eventlog append failed for %s: %v", date, err)
		}
	}
	return payload, nil
}

func (s *SQLStore) GetByDate(ctx context.Context, date string) (Document, error) {
	if !ValidDate(date) {
		return Document{}, ErrInvalidDate
	}
	row := s.db.QueryRowContext(ctx, `SELECT payload_json FROM quiz_days WHERE date=$1`, date)
	var buf string
	if err := row.Scan(&buf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(buf), &doc); err != nil {
		return Document{}, fmt.Errorf("decode payload for %s: %w", date, err)
	}
	return doc, nil
}

func (s *SQLStore) ListDates(ctx context.Context, category string) ([]DateEntry, error) {
	category = NormalizeCategory(category)

	query := `SELECT d.date, c.category FROM quiz_days d
		 JOIN quiz_day_categories c ON c.date = d.date`
	args := []any{}
	if category != "" {
		query += ` WHERE d.date IN (SELECT date FROM quiz_day_categories WHERE category=$1)`
		args = append(args, category)
	}
	query += ` ORDER BY d.date, c.position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []DateEntry{}
	for rows.Next() {
		var date, cat string
		if err := rows.Scan(&date, &cat); err != nil {
			return nil, err
		}
		if n := len(entries); n > 0 && entries[n-1].Date == date {
			entries[n-1].QuestionCategories = append(entries[n-1].QuestionCategories, cat)
		} else {
			entries = append(entries, DateEntry{Date: date, QuestionCategories: []string{cat}})
		}
	}
	return entries, rows.Err()
}

func (s *SQLStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM quiz_day_categories WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
