package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"allow all", CORSConfig{AllowAll: true}, "https://a.example", http.MethodGet, "*", http.StatusOK},
		{"listed origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://a.example", http.MethodGet, "https://a.example", http.StatusOK},
		{"unlisted origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://b.example", http.MethodGet, "", http.StatusOK},
		{"preflight", DefaultCORSConfig(), "https://b.example", http.MethodOptions, "https://b.example", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/search", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.config)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("https://a", []string{"https://a"}))
	assert.True(t, isOriginAllowed("https://a", []string{"*"}))
	assert.False(t, isOriginAllowed("https://a", []string{"https://b"}))
	assert.False(t, isOriginAllowed("https://a", nil))
}
