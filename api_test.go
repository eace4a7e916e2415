package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The server keeps running when Postgres is unreachable at startup; every
// DB-backed route must answer with an error payload instead of panicking.
func TestHandlersWithoutDatabase(t *testing.T) {
	s := &server{}
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/products/real-madrid-home-25-26"},
		{http.MethodGet, "/api/featured"},
		{http.MethodPost, "/api/cart"},
		{http.MethodPost, "/api/checkout"},
		{http.MethodPost, "/api/newsletter/subscribe"},
		{http.MethodGet, "/api/newsletter/unsubscribe?token=x"},
		{http.MethodPost, "/api/newsletter/send"},
		{http.MethodPatch, "/api/account/profile"},
		{http.MethodPatch, "/api/account/password"},
	}
	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		require.NotPanics(t, func() { mux.ServeHTTP(rec, req) }, "%s %s", rt.method, rt.path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", rt.method, rt.path)
		assert.Contains(t, rec.Body.String(), "database not connected", "%s %s", rt.method, rt.path)
	}

	// Health does not touch the database and stays up.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
