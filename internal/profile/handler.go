package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
)

type Handler struct {
	service ProfileService
}

func NewHandler(service ProfileService) *Handler {
	return &Handler{service: service}
}

func userIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return uuid.MustParse(claims.UserID), true
}

func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var keyErr *InvalidKeyError
	switch {
	case errors.As(err, &keyErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, leveling.ErrNegativeXP), errors.Is(err, leveling.ErrXPTooLarge),
		errors.Is(err, leveling.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrProfileNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	default:
		config.WithContext(r.Context()).WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	resp, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "get profile")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateReflection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var dto UpdateReflectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.service.UpdateReflection(r.Context(), userID, dto)
	if err != nil {
		writeError(w, r, err, "update profile")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) AddXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var dto AddXPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.service.AddXP(r.Context(), userID, dto.Amount)
	if err != nil {
		writeError(w, r, err, "add xp")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) SpendCoins(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var dto SpendCoinsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.service.SpendCoins(r.Context(), userID, dto.Amount)
	if errors.Is(err, leveling.ErrInsufficientCoins) {
		config.JSON(w, http.StatusConflict, resp)
		return
	}
	if err != nil {
		writeError(w, r, err, "spend coins")
		return
	}
	config.WithContext(r.Context()).WithField("reason", dto.Reason).Infof("Spent %d coins", dto.Amount)
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ToggleChecklist(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	item := ChecklistItem(chi.URLParam(r, "item"))
	resp, err := h.service.ToggleChecklist(r.Context(), userID, item)
	if err != nil {
		writeError(w, r, err, "toggle checklist")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) SetEqualizer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var raw map[string]int
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	values, err := ParseEqualizer(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.service.SetEqualizer(r.Context(), userID, values)
	if err != nil {
		writeError(w, r, err, "set equalizer")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) SetAIKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var dto SetAIKeyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.service.SetAIKey(r.Context(), userID, dto.APIKey); err != nil {
		writeError(w, r, err, "set ai key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
