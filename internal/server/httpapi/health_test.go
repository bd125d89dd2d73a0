package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoot(t *testing.T) {
	router := newTestRouter(t, Deps{})

	w := doJSON(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello.", w.Body.String())
}

func TestHealth(t *testing.T) {
	w := doJSON(newTestRouter(t, Deps{}), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doJSON(newTestRouter(t, Deps{DB: mockPinger{err: errors.New("refused")}}), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetrics_CountsRequests(t *testing.T) {
	router := newTestRouter(t, Deps{})

	doJSON(router, http.MethodGet, "/", nil)
	w := doJSON(router, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `imagetags_http_requests_total{method="GET",route="/",status="200"} 1`)
}
