package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, session *SessionResponse) {
	auth.SetSessionCookies(w, session.AccessToken, session.RefreshToken)
	config.JSON(w, status, session)
}

func (h *Handler) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, auth.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidRefresh):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		config.WithContext(r.Context()).WithError(err).Error("Authentication failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignUp(r.Context(), dto)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusCreated, session)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var dto SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignIn(r.Context(), dto)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusOK, session)
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Code == "" {
		http.Error(w, "code required", http.StatusBadRequest)
		return
	}

	session, err := h.service.GoogleLogin(r.Context(), dto.Code)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusOK, session)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(auth.RefreshCookieName); err == nil {
		token = c.Value
	}
	if token == "" {
		var dto RefreshDTO
		_ = json.NewDecoder(r.Body).Decode(&dto)
		token = dto.RefreshToken
	}
	if token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusOK, session)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	me, err := h.service.Me(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to load current user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, me)
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAccount(r.Context()); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to delete account")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	auth.ClearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}
