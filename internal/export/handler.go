package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
)

type Handler struct {
	service ExportService
}

func NewHandler(service ExportService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	format := Format(r.URL.Query().Get("format"))
	body, err := h.service.Render(r.Context(), uuid.MustParse(claims.UserID), format)
	if err != nil {
		if errors.Is(err, ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to export user data")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	contentType, ext := "application/json", "json"
	if format == FormatYAML {
		contentType, ext = "application/yaml", "yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ascend-export.%s"`, ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
