package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

// upsertEnvelope is the POST/PUT body. The payload may sit under "payload"
// or be the body itself (top-level "questions"), matching the upload tools.
type upsertEnvelope struct {
	Date       string           `json:"date"`
	SourceFile string           `json:"sourceFile"`
	Payload    *json.RawMessage `json:"payload"`
}

func decodeUpsert(body []byte) (upsertEnvelope, quiz.Document, error) {
	var env upsertEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return env, quiz.Document{}, err
	}
	raw := body
	if env.Payload != nil {
		raw = *env.Payload
	}
	var doc quiz.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return env, quiz.Document{}, err
	}
	return env, doc, nil
}

// GetQuizHandler serves GET /api/quiz/{date}.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		doc, err := store.GetByDate(r.Context(), date)
		if err != nil {
			writeStoreError(w, err, "Failed to fetch quiz.")
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// UploadQuizHandler serves POST /api/quiz: upsert keyed by the body date.
func UploadQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad request body")
			return
		}
		env, doc, err := decodeUpsert(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if _, err := store.Upsert(r.Context(), env.Date, doc, env.SourceFile); err != nil {
			writeStoreError(w, err, "Failed to upload quiz.")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"ok":      true,
			"message": "Quiz uploaded for " + env.Date,
		})
	}
}

// PutQuizHandler serves PUT /api/quiz/{date}: same upsert, keyed by path.
func PutQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad request body")
			return
		}
		env, doc, err := decodeUpsert(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if _, err := store.Upsert(r.Context(), date, doc, env.SourceFile); err != nil {
			writeStoreError(w, err, "Failed to save quiz.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"message": "Quiz saved for " + date,
		})
	}
}

// ListQuizzesHandler serves GET /api/quiz?category=&details=1: a list of
// dates, or {date, questionCategories} rows when details=1.
func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.ListDates(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			writeStoreError(w, err, "Failed to list quiz dates.")
			return
		}
		if r.URL.Query().Get("details") == "1" {
			writeJSON(w, http.StatusOK, entries)
			return
		}
		dates := make([]string, len(entries))
		for i, e := range entries {
			dates[i] = e.Date
		}
		writeJSON(w, http.StatusOK, dates)
	}
}

// ListCategoriesHandler serves GET /api/quiz/categories.
func ListCategoriesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := store.ListCategories(r.Context())
		if err != nil {
			writeStoreError(w, err, "Failed to list categories.")
			return
		}
		if cats == nil {
			cats = []string{}
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

// HealthHandler serves GET /api/health.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "dailyquiz"})
	}
}
