package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BuzzLyutic/reminders-api/pkg/respond"
)

func NewRouter(h *ReminderHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/enhance", h.Enhance)

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/stats", h.Stats)
			r.Get("/{id}", h.Get)
			r.Patch("/{id}", h.Update)
			r.Post("/{id}/toggle", h.Toggle)
			r.Delete("/{id}", h.Delete)
		})
	})

	return r
}
