package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps store sentinels onto the API's status codes. Anything
// unexpected logs server-side and surfaces as a generic 500.
func writeStoreError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, quiz.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
	case errors.Is(err, quiz.ErrNoQuestions):
		writeError(w, http.StatusBadRequest, "Payload must include questions array.")
	case errors.Is(err, quiz.ErrBadQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrNotFound):
		writeError(w, http.StatusNotFound, "Quiz not found for this date.")
	default:
		log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
