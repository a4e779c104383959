package finance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/transactions", h.Create)
	r.Get("/transactions", h.List)
	r.Put("/transactions/{id}", h.Update)
	r.Delete("/transactions/{id}", h.Delete)
	r.Get("/summary", h.Summary)

	return r
}
