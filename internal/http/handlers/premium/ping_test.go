package premium

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/middlewarectx"
)

func TestPingHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/premium/ping", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "u-1"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"message":"pong","user_id":"u-1"}}`, rec.Body.String())
}
