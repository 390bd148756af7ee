package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

// Mount attaches the quiz API under /api on the given router.
func Mount(r chi.Router, store quiz.Store) {
	r.Route("/api", func(ar chi.Router) {
		ar.Get("/health", HealthHandler())
		ar.Route("/quiz", func(qr chi.Router) {
			qr.Get("/", ListQuizzesHandler(store))
			qr.Post("/", UploadQuizHandler(store))
			qr.Get("/categories", ListCategoriesHandler(store))
			qr.Get("/{date}", GetQuizHandler(store))
			qr.Put("/{date}", PutQuizHandler(store))
		})
	})
}
