package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/nope", "404"))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/nope", "404"))
	assert.Equal(t, before+1, after)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/meetings", normalizePath("/api/meetings"))
	assert.Equal(t, "/api/meetings/:id", normalizePath("/api/meetings/0b2f8c1e-0000-0000-0000-000000000000"))
	assert.Equal(t, "/api/auth/login", normalizePath("/api/auth/login"))
}
