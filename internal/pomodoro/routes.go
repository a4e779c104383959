package pomodoro

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/pomodoro", h.LogPomodoro)
	r.Get("/pomodoro", h.ListPomodoro)
	r.Post("/breathing", h.LogBreathing)
	r.Get("/breathing", h.ListBreathing)
	r.Get("/stats", h.Stats)

	return r
}
