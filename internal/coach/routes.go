package coach

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/ascend-lambda/internal/middlewares"
)

func Routes(h *Handler, limiter *middlewares.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.With(limiter.Middleware).Post("/chat", h.Chat)
	r.Get("/history", h.History)
	r.Delete("/history", h.ClearHistory)

	return r
}
