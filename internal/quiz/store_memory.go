package quiz

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	days map[string]Document
}

// NewInMemoryStore returns a Store for tests and single-process dev setups.
func NewInMemoryStore() Store {
	return &memoryStore{days: map[string]Document{}}
}

func (m *memoryStore) Upsert(ctx context.Context, date string, payload Document, sourceFile string) (Document, error) {
	if !ValidDate(date) {
		return Document{}, ErrInvalidDate
	}
	if err := Normalize(&payload); err != nil {
		return Document{}, err
	}
	payload.Date = date
	payload.SourceFile = sourceFile

	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[date] = payload
	return payload, nil
}

func (m *memoryStore) GetByDate(ctx context.Context, date string) (Document, error) {
	if !ValidDate(date) {
		return Document{}, ErrInvalidDate
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.days[date]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (m *memoryStore) ListDates(ctx context.Context, category string) ([]DateEntry, error) {
	category = NormalizeCategory(category)
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]DateEntry, 0, len(m.days))
	for date, doc := range m.days {
		if category != "" && !contains(doc.QuestionCategories, category) {
			continue
		}
		entries = append(entries, DateEntry{Date: date, QuestionCategories: doc.QuestionCategories})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

func (m *memoryStore) ListCategories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := map[string]bool{}
	var out []string
	for _, doc := range m.days {
		for _, c := range doc.QuestionCategories {
			if c != "" && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
