package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Get)
	r.Patch("/", h.UpdateReflection)
	r.Post("/xp", h.AddXP)
	r.Post("/coins/spend", h.SpendCoins)
	r.Post("/checklist/{item}/toggle", h.ToggleChecklist)
	r.Put("/equalizer", h.SetEqualizer)
	r.Put("/ai-key", h.SetAIKey)

	return r
}
