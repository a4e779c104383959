package habit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(method, target, body string, userID uuid.UUID, id string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := req.Context()
	if userID != uuid.Nil {
		ctx = auth.ContextWithClaims(ctx, &auth.Claims{UserID: userID.String(), Role: "user"})
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestHandlerToggle(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	userID := uuid.New()
	id := seedHabit(t, svc, userID, "")

	t.Run("empty body toggles today", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, newRequest(http.MethodPost, "/", "", userID, id.String()))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ToggleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, today, resp.Date)
		assert.True(t, resp.Done)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, newRequest(http.MethodPost, "/", `{"date":"10/05/2024"}`, userID, id.String()))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown habit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, newRequest(http.MethodPost, "/", "", userID, uuid.NewString()))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, newRequest(http.MethodPost, "/", "", userID, "abc"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, newRequest(http.MethodPost, "/", "", uuid.Nil, id.String()))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
