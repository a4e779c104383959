package auth

import (
	"net/http"

	"github.com/saulo-duarte/ascend-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Logout is stateless: tokens stay valid until expiry, only the cookies go.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookies(w)
	config.WithContext(r.Context()).Info("Session cookies cleared")

	config.JSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}
