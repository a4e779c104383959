package journal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
)

type Handler struct {
	service JournalService
}

func NewHandler(service JournalService) *Handler {
	return &Handler{service: service}
}

// ids resolves the caller and, when withEntry is set, the {id} path param.
func ids(w http.ResponseWriter, r *http.Request, withEntry bool) (uuid.UUID, uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	userID := uuid.MustParse(claims.UserID)
	if !withEntry {
		return userID, uuid.Nil, true
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		http.Error(w, "journal entry not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, util.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		config.WithContext(r.Context()).WithError(err).Error("Journal request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := ids(w, r, false)
	if !ok {
		return
	}
	var dto CreateEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := ids(w, r, false)
	if !ok {
		return
	}
	q := r.URL.Query()
	resp, err := h.service.List(r.Context(), userID, q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := ids(w, r, true)
	if !ok {
		return
	}
	resp, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := ids(w, r, true)
	if !ok {
		return
	}
	var dto UpdateEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.service.Update(r.Context(), userID, id, dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := ids(w, r, true)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
