package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORSHeadersAndPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	h := CORS("https://padoca.example.app", next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ingredients", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "https://padoca.example.app", rec.Header().Get("Access-Control-Allow-Origin"))

	// preflight is answered without reaching the handler
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/ingredients", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSDefaultsToWildcard(t *testing.T) {
	h := CORS("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
