package finance

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
	service FinanceService
}

func NewHandler(service FinanceService) *Handler {
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

func transactionIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidMonth), errors.Is(err, util.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		config.WithContext(r.Context()).WithError(err).Error("Finance request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var dto CreateTransactionDTO
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
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := ListFilter{From: q.Get("from"), To: q.Get("to"), Kind: Kind(q.Get("kind"))}
	resp, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	id, ok := transactionIDFrom(w, r)
	if !ok {
		return
	}
	var dto UpdateTransactionDTO
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
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	id, ok := transactionIDFrom(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	resp, err := h.service.MonthlySummary(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
