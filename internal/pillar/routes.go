package pillar

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Overview)
	r.Put("/{pillar}", h.Upsert)

	return r
}
